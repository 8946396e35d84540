package entity

// Party is an ordered group of characters with a shared inventory.
// Member order is stable and drives row placement and tie-breaks.
type Party struct {
	Name      string
	Members   []*Character
	Inventory map[string]int
}

// NewParty creates a party from the given members.
func NewParty(name string, members ...*Character) *Party {
	return &Party{
		Name:      name,
		Members:   members,
		Inventory: make(map[string]int),
	}
}

// Len returns the number of members.
func (p *Party) Len() int {
	return len(p.Members)
}

// Defeated reports whether no member is alive. An empty party is defeated.
func (p *Party) Defeated() bool {
	for _, m := range p.Members {
		if m.Alive() {
			return false
		}
	}
	return true
}

// AliveCount returns the number of members still alive.
func (p *Party) AliveCount() int {
	count := 0
	for _, m := range p.Members {
		if m.Alive() {
			count++
		}
	}
	return count
}

// IndexOf returns the member position of c, or -1 if c is not a member.
func (p *Party) IndexOf(c *Character) int {
	for i, m := range p.Members {
		if m == c {
			return i
		}
	}
	return -1
}

// AddItem adjusts the inventory count for item, dropping it at zero.
func (p *Party) AddItem(item string, delta int) int {
	n := p.Inventory[item] + delta
	if n <= 0 {
		delete(p.Inventory, item)
		return 0
	}
	p.Inventory[item] = n
	return n
}
