// Package ai provides the computer-controlled side of the label and target
// queries.
package ai

import (
	"math/rand"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
)

// Random picks a random affordable action and targets the weakest candidate.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates the policy. All of its choices are drawn from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// ChooseLabel implements game.Policy. Options are tried in random order and
// the first one the actor can pay for wins; if none is affordable the first
// option is returned and the resolver retries. Cancel is only returned when
// there is nothing to choose from.
func (r *Random) ChooseLabel(_ *game.Game, actor *entity.Character, options []game.Option) string {
	if len(options) == 0 {
		return game.Cancel
	}

	for _, idx := range r.rng.Perm(len(options)) {
		label := options[idx].Label
		if actor.CanAfford(label) {
			return label
		}
	}

	return options[0].Label
}

// ChooseTargets implements game.Policy. It picks the candidate with the
// lowest current HP, earliest first on ties.
func (r *Random) ChooseTargets(_ *game.Game, _ *entity.Character, candidates []*entity.Character) ([]*entity.Character, bool) {
	var lowest *entity.Character
	for _, c := range candidates {
		if lowest == nil || c.Get(entity.AttrHPCurrent) < lowest.Get(entity.AttrHPCurrent) {
			lowest = c
		}
	}
	if lowest == nil {
		return nil, false
	}
	return []*entity.Character{lowest}, true
}
