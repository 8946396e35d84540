// Package game provides the turn scheduler, candidate targeting, action
// resolution and the phase-driven main loop.
package game

import (
	"math/rand"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/rules"
)

// Game holds the entire game state.
type Game struct {
	// Parties in display order. Parties[0] is the player party.
	Parties []*entity.Party

	rules    rules.RuleSet
	rng      *rand.Rand
	interact Interactor
	policy   Policy
	logger   *zap.Logger
	cfg      Config
	actions  []*Action

	exit      atomic.Bool
	lastPhase Phase
}

// New creates a game and generates its starting parties through the rule set.
// All randomness is drawn from rng.
func New(rs rules.RuleSet, rng *rand.Rand, interact Interactor, policy Policy, logger *zap.Logger, cfg Config) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		rules:     rs,
		rng:       rng,
		interact:  interact,
		policy:    policy,
		logger:    logger,
		cfg:       cfg,
		lastPhase: -1,
	}
	g.actions = defaultActions()
	for len(g.Parties) < cfg.Parties {
		g.Parties = append(g.Parties, rs.GenerateParty(cfg.PartySize, cfg.Points))
	}
	return g
}

// Rules returns the rule set the game was created with.
func (g *Game) Rules() rules.RuleSet {
	return g.rules
}

// RequestExit sets the exit flag. It is safe to call from any goroutine.
func (g *Game) RequestExit() {
	g.exit.Store(true)
}

// Exiting reports whether the exit flag is set.
func (g *Game) Exiting() bool {
	return g.exit.Load()
}

// =============================================================================
// Turn Scheduler
// =============================================================================

// TurnOrder returns every able character of every party in random order.
func (g *Game) TurnOrder() []*entity.Character {
	var order []*entity.Character
	for _, p := range g.Parties {
		for _, m := range p.Members {
			if m.Able() {
				order = append(order, m)
			}
		}
	}
	g.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// NextCharacter returns the first character of a fresh turn order. The
// boolean is false when nobody is able to act.
func (g *Game) NextCharacter() (*entity.Character, bool) {
	order := g.TurnOrder()
	if len(order) == 0 {
		return nil, false
	}
	return order[0], true
}

// PartyOf returns the index of the party c belongs to, or -1.
func (g *Game) PartyOf(c *entity.Character) int {
	for i, p := range g.Parties {
		if p.IndexOf(c) >= 0 {
			return i
		}
	}
	return -1
}

// PositionOf returns the member index of c within its party, or -1.
func (g *Game) PositionOf(c *entity.Character) int {
	if pi := g.PartyOf(c); pi >= 0 {
		return g.Parties[pi].IndexOf(c)
	}
	return -1
}

// UseAI reports whether c is controlled by the AI policy rather than the
// player. Everyone outside the player party is.
func (g *Game) UseAI(c *entity.Character) bool {
	return g.PartyOf(c) > 0
}

// Characters returns every character of every party in party order.
func (g *Game) Characters() []*entity.Character {
	var all []*entity.Character
	for _, p := range g.Parties {
		all = append(all, p.Members...)
	}
	return all
}
