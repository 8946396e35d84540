package rules

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/samdwyer/skirmish/internal/entity"
)

// SimpleName is the configuration name of the simple rule set.
const SimpleName = "simple"

// Simple is a minimal rule set. Total HP grows with experience and the only
// action is Attack.
type Simple struct {
	rng     *rand.Rand
	names   *NameGenerator
	actions *entity.ActionSet
}

// NewSimple creates the simple rule set.
func NewSimple(rng *rand.Rand) *Simple {
	s := &Simple{
		rng:     rng,
		names:   NewNameGenerator(rng, MustLoadNames()),
		actions: entity.NewActionSet(),
	}
	// A fresh set cannot hold a duplicate.
	_ = s.actions.Register(&entity.Action{
		Name:    "Attack",
		Visible: true,
		Scope:   entity.ScopeEnemy,
		Filter:  entity.FilterOnlyAlive,
		Effect:  simpleAttack,
	})
	return s
}

// Name implements RuleSet.
func (s *Simple) Name() string { return SimpleName }

// Actions implements RuleSet.
func (s *Simple) Actions() *entity.ActionSet { return s.actions }

// Bind implements RuleSet.
func (s *Simple) Bind(c *entity.Character) {
	c.Derive(entity.AttrHPTotal, func(c *entity.Character) int {
		return c.Get("Experience")*2 + 5
	})
	c.Derive(entity.AttrAlive, func(c *entity.Character) int {
		if c.Get(entity.AttrHPCurrent) > 0 {
			return 1
		}
		return 0
	})
	c.SetActions(s.actions)
}

// GenerateCharacter implements RuleSet. Each point raises Attack or Defence.
func (s *Simple) GenerateCharacter(points int) *entity.Character {
	c := entity.NewCharacter(s.names.Character())
	c.Class = SimpleName
	c.Set("Attack", 1)
	c.Set("Defence", 1)
	c.Set("Experience", 0)
	for i := 0; i < points; i++ {
		if s.rng.Intn(2) == 0 {
			c.Add("Attack", 1)
		} else {
			c.Add("Defence", 1)
		}
	}
	s.Bind(c)
	c.Set(entity.AttrHPCurrent, c.Get(entity.AttrHPTotal))
	return c
}

// GenerateParty implements RuleSet.
func (s *Simple) GenerateParty(members, points int) *entity.Party {
	p := entity.NewParty(s.names.Party())
	for _, share := range SplitPoints(points, members) {
		p.Members = append(p.Members, s.GenerateCharacter(share))
	}
	return p
}

// simpleAttack subtracts the attacker's Attack from each target's HP and
// rewards experience for every character it drops.
func simpleAttack(sources, targets []*entity.Character) string {
	src := sources[0]
	var parts []string
	for _, t := range targets {
		wasAlive := t.Alive()
		dmg := src.Get("Attack")
		t.Add(entity.AttrHPCurrent, -dmg)
		parts = append(parts, fmt.Sprintf("%s attacks %s for %d damage.", src.Name, t.Name, dmg))
		if wasAlive && !t.Alive() {
			src.Add("Experience", t.Get("Experience")/2+1)
			parts = append(parts, t.Name+" falls!")
		}
	}
	return strings.Join(parts, " ")
}
