package game

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/entity"
)

// CharacterState is the persisted form of a character: its identity and
// stored attributes. Derived functions are rebound by the rule set on load.
type CharacterState struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Class      string         `json:"class,omitempty"`
	Attributes map[string]int `json:"attributes"`
}

// PartyState is the persisted form of a party.
type PartyState struct {
	Name      string           `json:"name"`
	Members   []CharacterState `json:"members"`
	Inventory map[string]int   `json:"inventory,omitempty"`
}

// State is the "game" section of a save document.
type State struct {
	Rules   string       `json:"rules"`
	Parties []PartyState `json:"parties"`
}

// Snapshot captures the parties.
func (g *Game) Snapshot() State {
	s := State{Rules: g.rules.Name(), Parties: []PartyState{}}
	for _, p := range g.Parties {
		ps := PartyState{Name: p.Name, Inventory: make(map[string]int, len(p.Inventory))}
		for k, v := range p.Inventory {
			ps.Inventory[k] = v
		}
		for _, m := range p.Members {
			ps.Members = append(ps.Members, SnapshotCharacter(m))
		}
		s.Parties = append(s.Parties, ps)
	}
	return s
}

// SnapshotCharacter captures one character's identity and stored attributes.
func SnapshotCharacter(c *entity.Character) CharacterState {
	return CharacterState{
		ID:         c.ID,
		Name:       c.Name,
		Class:      c.Class,
		Attributes: c.Stored(),
	}
}

// Restore replaces the parties with those in s, rebinding every character
// through the game's rule set.
func (g *Game) Restore(s State) error {
	if s.Rules != g.rules.Name() {
		return fmt.Errorf("save uses rule set %q, game uses %q", s.Rules, g.rules.Name())
	}

	parties := make([]*entity.Party, 0, len(s.Parties))
	for _, ps := range s.Parties {
		p := entity.NewParty(ps.Name)
		for k, v := range ps.Inventory {
			p.AddItem(k, v)
		}
		for _, cs := range ps.Members {
			c := entity.NewCharacter(cs.Name)
			if cs.ID != "" {
				c.ID = cs.ID
			}
			c.Class = cs.Class
			for k, v := range cs.Attributes {
				c.Set(k, v)
			}
			g.rules.Bind(c)
			p.Members = append(p.Members, c)
		}
		parties = append(parties, p)
	}

	g.Parties = parties
	return nil
}
