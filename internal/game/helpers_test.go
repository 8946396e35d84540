package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/rules"
)

// scripted answers queries from fixed scripts. When the label script runs
// out it sets the exit flag so a runaway loop terminates.
type scripted struct {
	game    *Game
	labels  []string
	targets []int // index into candidates; negative cancels

	labelQueries  [][]Option
	targetQueries [][]*entity.Character
	announced     []string
	displayed     []string
	logs          []string
	draws         int
	cleared       int
}

func (s *scripted) QueryLabel(_ *entity.Character, options []Option) string {
	s.labelQueries = append(s.labelQueries, options)
	if len(s.labels) == 0 {
		s.game.RequestExit()
		return Cancel
	}
	label := s.labels[0]
	s.labels = s.labels[1:]
	return label
}

func (s *scripted) QueryTargets(_ *entity.Character, candidates []*entity.Character) ([]*entity.Character, bool) {
	s.targetQueries = append(s.targetQueries, candidates)
	idx := 0
	if len(s.targets) > 0 {
		idx = s.targets[0]
		s.targets = s.targets[1:]
	}
	if idx < 0 || idx >= len(candidates) {
		return nil, false
	}
	return candidates[idx : idx+1], true
}

func (s *scripted) Announce(actor *entity.Character, action string, targets []*entity.Character) {
	s.announced = append(s.announced, fmt.Sprintf("%s:%s:%d", actor.Name, action, len(targets)))
}

func (s *scripted) Display(title, text string) bool {
	s.displayed = append(s.displayed, title+"\n"+text)
	return true
}

func (s *scripted) DrawUI(*Game) { s.draws++ }
func (s *scripted) Log(text string) { s.logs = append(s.logs, text) }
func (s *scripted) Clear()          { s.cleared++ }

// firstChoice is a policy that picks the first non game-level option and the
// first candidate.
type firstChoice struct {
	labels  int
	targets int
}

func (p *firstChoice) ChooseLabel(_ *Game, _ *entity.Character, options []Option) string {
	p.labels++
	if len(options) == 0 {
		return Cancel
	}
	return options[0].Label
}

func (p *firstChoice) ChooseTargets(_ *Game, _ *entity.Character, candidates []*entity.Character) ([]*entity.Character, bool) {
	p.targets++
	return candidates[:1], true
}

// testActions builds an action set with a deterministic damage action, a
// party heal that records its calls and a costly area attack.
func testActions(mended *int) *entity.ActionSet {
	set := entity.NewActionSet()
	_ = set.Register(&entity.Action{
		Name:    "Attack",
		Visible: true,
		Scope:   entity.ScopeEnemy,
		Filter:  entity.FilterOnlyUndefeated,
		Effect: func(sources, targets []*entity.Character) string {
			for _, t := range targets {
				t.Add(entity.AttrHPCurrent, -sources[0].Get("Attack"))
			}
			return sources[0].Name + " attacks " + targets[0].Name + "."
		},
	})
	_ = set.Register(&entity.Action{
		Name:    "Mend",
		Visible: true,
		Scope:   entity.ScopeParty,
		Filter:  entity.FilterOnlyUnhealthy,
		Effect: func(sources, targets []*entity.Character) string {
			*mended++
			return "mended"
		},
	})
	_ = set.Register(&entity.Action{
		Name:    "Magic/Zap",
		Visible: true,
		Scope:   entity.ScopeEnemies,
		Filter:  entity.FilterOnlyAlive,
		Costs:   []entity.Cost{{Attribute: entity.AttrMPCurrent, Amount: 5}},
		Effect: func(sources, targets []*entity.Character) string {
			return "zap"
		},
	})
	_ = set.Register(&entity.Action{
		Name:   "Ponder",
		Scope:  entity.ScopeSelf,
		Filter: entity.FilterNone,
	})
	return set
}

func fighter(set *entity.ActionSet, name string, hp, attack int) *entity.Character {
	c := entity.NewCharacter(name)
	c.Set(entity.AttrHPTotal, hp)
	c.Set(entity.AttrHPCurrent, hp)
	c.Set("Attack", attack)
	c.SetActions(set)
	return c
}

// newTestGame creates a game with no generated parties and the scripted
// interactor wired back to it.
func newTestGame(t *testing.T, ui *scripted, policy Policy, parties ...*entity.Party) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	g := New(rules.NewSimple(rng), rng, ui, policy, nil, Config{PartySize: 2, Points: 4})
	g.Parties = parties
	ui.game = g
	return g
}
