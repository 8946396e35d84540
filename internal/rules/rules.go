// Package rules provides the rule sets that generate characters and parties,
// compute derived attributes and bind the actions characters may use.
package rules

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/skirmish/internal/entity"
)

// ErrUnknownRules is returned by New for an unrecognised rule set name.
var ErrUnknownRules = errors.New("unknown rule set")

// RuleSet is the capability a game variant supplies. One implementation exists
// per rule set and is selected when the game is constructed.
type RuleSet interface {
	// Name identifies the rule set in configuration and save files.
	Name() string
	// GenerateCharacter creates a fresh character spending the given points.
	GenerateCharacter(points int) *entity.Character
	// GenerateParty creates a party of members sharing a point budget.
	GenerateParty(members, points int) *entity.Party
	// Actions returns every action binding the rule set defines.
	Actions() *entity.ActionSet
	// Bind installs derived functions and action bindings on c. It is used
	// both for fresh characters and for characters restored from a save.
	Bind(c *entity.Character)
}

// New returns the rule set registered under name, drawing all randomness from rng.
func New(name string, rng *rand.Rand) (RuleSet, error) {
	switch name {
	case SimpleName:
		return NewSimple(rng), nil
	case StandardName:
		return NewStandard(rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRules, name)
	}
}

// SplitPoints divides points evenly across members, handing any remainder to
// the earliest members.
func SplitPoints(points, members int) []int {
	if members <= 0 {
		return nil
	}
	if points < 0 {
		points = 0
	}
	shares := make([]int, members)
	for i := range shares {
		shares[i] = points / members
		if i < points%members {
			shares[i]++
		}
	}
	return shares
}
