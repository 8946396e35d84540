package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDuplicateAction is returned when an action name is registered twice.
var ErrDuplicateAction = errors.New("action already registered")

// Scope is the set of characters an action may legally target before filtering.
type Scope string

const (
	ScopeSelf     Scope = "self"
	ScopeAlly     Scope = "ally"
	ScopeParty    Scope = "party"
	ScopeEnemy    Scope = "enemy"
	ScopeEnemies  Scope = "enemies"
	ScopeEveryone Scope = "everyone"
)

// Singular reports whether the scope picks a single target out of several,
// which requires disambiguation by the acting side.
func (s Scope) Singular() bool {
	return s == ScopeAlly || s == ScopeEnemy
}

// Filter narrows scoped candidates by health or defeat status.
type Filter string

const (
	FilterNone           Filter = "none"
	FilterOnlyHealthy    Filter = "onlyHealthy"
	FilterOnlyAlive      Filter = "onlyAlive"
	FilterOnlyUnhealthy  Filter = "onlyUnhealthy"
	FilterOnlyDead       Filter = "onlyDead"
	FilterOnlyUndefeated Filter = "onlyUndefeated"
)

// Cost is an amount of an attribute consumed before an action executes.
type Cost struct {
	Attribute string `yaml:"attribute" json:"attribute"`
	Amount    int    `yaml:"amount" json:"amount"`
}

// Label renders the cost the way menus show it, e.g. "5 MP".
func (c Cost) Label() string {
	name, _, _ := strings.Cut(c.Attribute, "/")
	return strconv.Itoa(c.Amount) + " " + name
}

// Effect applies an action. It mutates attributes in place and returns a
// human-readable description of what happened.
type Effect func(sources, targets []*Character) string

// Action is a named, shared, read-only binding registered by a rule set.
type Action struct {
	Name    string
	Visible bool
	Scope   Scope
	Filter  Filter
	Costs   []Cost
	Effect  Effect
}

// CostLabel joins the labels of all costs, or returns "" for free actions.
func (a *Action) CostLabel() string {
	if len(a.Costs) == 0 {
		return ""
	}
	labels := make([]string, len(a.Costs))
	for i, c := range a.Costs {
		labels[i] = c.Label()
	}
	return strings.Join(labels, " ")
}

// ActionSet is an ordered registry mapping action names to bindings.
type ActionSet struct {
	names  []string
	byName map[string]*Action
}

// NewActionSet creates an empty action set.
func NewActionSet() *ActionSet {
	return &ActionSet{byName: make(map[string]*Action)}
}

// Register adds an action, keeping registration order.
func (s *ActionSet) Register(a *Action) error {
	if _, exists := s.byName[a.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAction, a.Name)
	}
	s.names = append(s.names, a.Name)
	s.byName[a.Name] = a
	return nil
}

// Get returns the action registered under name.
func (s *ActionSet) Get(name string) (*Action, bool) {
	if s == nil {
		return nil, false
	}
	a, ok := s.byName[name]
	return a, ok
}

// Names returns every registered name in registration order.
func (s *ActionSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Subset returns a new set holding only the named actions, in this set's order.
// Unknown names are skipped.
func (s *ActionSet) Subset(names []string) *ActionSet {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	sub := NewActionSet()
	for _, n := range s.names {
		if want[n] {
			sub.names = append(sub.names, n)
			sub.byName[n] = s.byName[n]
		}
	}
	return sub
}

// Len returns the number of registered actions.
func (s *ActionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// DisplayName returns the last segment of a "/"-separated action name, which
// is how the action reads in narrative text.
func DisplayName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
