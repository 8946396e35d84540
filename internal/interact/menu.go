package interact

import (
	"strings"

	"github.com/samdwyer/skirmish/internal/game"
)

// Menu is one level of a label query. Entries keep the order in which their
// first label appeared.
type Menu struct {
	Path    string // prefix shared by every entry, "" at the root
	Entries []*MenuEntry
}

// MenuEntry is either a leaf carrying the full label or a submenu.
type MenuEntry struct {
	Name     string
	Label    string // full label of a leaf
	Resource string
	Sub      *Menu
}

// Leaf reports whether choosing the entry answers the query.
func (e *MenuEntry) Leaf() bool {
	return e.Sub == nil
}

// BuildMenu groups "/"-delimited labels into a tree.
func BuildMenu(options []game.Option) *Menu {
	root := &Menu{}
	for _, o := range options {
		root.insert(o, o.Label)
	}
	return root
}

func (m *Menu) insert(o game.Option, rest string) {
	head, tail, nested := strings.Cut(rest, "/")

	entry := m.find(head)
	if entry == nil {
		entry = &MenuEntry{Name: head}
		m.Entries = append(m.Entries, entry)
	}

	if !nested {
		if entry.Sub == nil {
			entry.Label = o.Label
			entry.Resource = o.Resource
		}
		return
	}
	if entry.Sub == nil {
		entry.Sub = &Menu{Path: m.Path + head + "/"}
		entry.Label = ""
		entry.Resource = ""
	}
	entry.Sub.insert(o, tail)
}

func (m *Menu) find(name string) *MenuEntry {
	for _, e := range m.Entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Width returns the display width needed for the longest entry name.
func (m *Menu) Width() int {
	w := 0
	for _, e := range m.Entries {
		if n := textWidth(e.Name); n > w {
			w = n
		}
	}
	return w
}

// ResourceWidth returns the display width of the longest resource label.
func (m *Menu) ResourceWidth() int {
	w := 0
	for _, e := range m.Entries {
		if n := textWidth(e.Resource); n > w {
			w = n
		}
	}
	return w
}
