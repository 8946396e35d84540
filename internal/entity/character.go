// Package entity provides the characters, parties and action bindings that
// rule sets populate and the game mutates.
package entity

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Well-known attribute names every rule set must provide.
const (
	AttrHPTotal   = "HP/Total"
	AttrHPCurrent = "HP/Current"
	AttrMPTotal   = "MP/Total"
	AttrMPCurrent = "MP/Current"
	AttrAlive     = "Alive"
	AttrAble      = "Able"
)

// DerivedFunc computes an attribute from the character's own attributes.
type DerivedFunc func(c *Character) int

// Character is a named entity with stored attributes and derived functions.
type Character struct {
	ID    string // Stable identity across save/load
	Name  string // Display name
	Class string // Rule-set specific class identifier

	attributes map[string]int
	derived    map[string]DerivedFunc
	actions    *ActionSet
}

// NewCharacter creates a character with no attributes and no actions.
func NewCharacter(name string) *Character {
	return &Character{
		ID:         uuid.New().String(),
		Name:       name,
		attributes: make(map[string]int),
		derived:    make(map[string]DerivedFunc),
		actions:    NewActionSet(),
	}
}

// Get reads an attribute. Derived functions win over stored values, except for
// explicitly stored "/Current" counters.
func (c *Character) Get(attr string) int {
	if strings.HasSuffix(attr, "/Current") {
		if v, ok := c.attributes[attr]; ok {
			return v
		}
	}
	if fn, ok := c.derived[attr]; ok {
		return fn(c)
	}
	return c.attributes[attr]
}

// Set stores an attribute value.
func (c *Character) Set(attr string, value int) {
	c.attributes[attr] = value
}

// Add adjusts a stored attribute by delta and returns the new value.
func (c *Character) Add(attr string, delta int) int {
	v := c.Get(attr) + delta
	c.attributes[attr] = v
	return v
}

// Derive installs a derived function under name.
func (c *Character) Derive(name string, fn DerivedFunc) {
	c.derived[name] = fn
}

// Stored returns a copy of the stored attribute values.
func (c *Character) Stored() map[string]int {
	out := make(map[string]int, len(c.attributes))
	for k, v := range c.attributes {
		out[k] = v
	}
	return out
}

// Attributes returns every stored and derived attribute name, sorted.
func (c *Character) Attributes() []string {
	seen := make(map[string]bool, len(c.attributes)+len(c.derived))
	for k := range c.attributes {
		seen[k] = true
	}
	for k := range c.derived {
		seen[k] = true
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Alive reports whether the character is alive. A rule set may override this
// with an "Alive" derived function; otherwise current HP must be positive.
func (c *Character) Alive() bool {
	if _, ok := c.derived[AttrAlive]; ok {
		return c.Get(AttrAlive) != 0
	}
	return c.Get(AttrHPCurrent) > 0
}

// Able reports whether the character may take a turn.
func (c *Character) Able() bool {
	if _, ok := c.derived[AttrAble]; ok {
		return c.Get(AttrAble) != 0
	}
	return c.Alive()
}

// Healthy reports whether current HP equals total HP.
func (c *Character) Healthy() bool {
	return c.Get(AttrHPCurrent) == c.Get(AttrHPTotal)
}

// =============================================================================
// Actions
// =============================================================================

// SetActions binds the shared action set this character may use.
func (c *Character) SetActions(actions *ActionSet) {
	c.actions = actions
}

// Actions returns the character's action set.
func (c *Character) Actions() *ActionSet {
	return c.actions
}

// Action looks up one of the character's actions by name.
func (c *Character) Action(name string) (*Action, bool) {
	return c.actions.Get(name)
}

// VisibleActions returns the names of actions offered directly to the character.
func (c *Character) VisibleActions() []string {
	var names []string
	for _, n := range c.actions.Names() {
		if a, _ := c.actions.Get(n); a.Visible {
			names = append(names, n)
		}
	}
	return names
}

// Shortfall returns the first cost of the named action the character cannot
// pay. The boolean is false when every cost is affordable.
func (c *Character) Shortfall(name string) (Cost, bool) {
	a, ok := c.actions.Get(name)
	if !ok {
		return Cost{}, false
	}
	for _, cost := range a.Costs {
		if c.Get(cost.Attribute) < cost.Amount {
			return cost, true
		}
	}
	return Cost{}, false
}

// CanAfford reports whether every cost of the named action can be paid.
func (c *Character) CanAfford(name string) bool {
	_, short := c.Shortfall(name)
	return !short
}

// Perform pays the action's costs and applies its effect to targets. An
// unaffordable action changes nothing and returns a narrative failure.
func (c *Character) Perform(name string, targets []*Character) string {
	a, ok := c.actions.Get(name)
	if !ok {
		return c.Name + " doesn't know how to " + name + "."
	}
	if cost, short := c.Shortfall(name); short {
		return InsufficientMessage(c, cost)
	}
	for _, cost := range a.Costs {
		c.Add(cost.Attribute, -cost.Amount)
	}
	if a.Effect == nil {
		return c.Name + " uses " + name + "."
	}
	return a.Effect([]*Character{c}, targets)
}

// InsufficientMessage is the narrative shown when a cost cannot be paid.
func InsufficientMessage(c *Character, cost Cost) string {
	name, _, _ := strings.Cut(cost.Attribute, "/")
	return c.Name + " doesn't have enough " + name + "!"
}
