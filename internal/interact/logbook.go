package interact

import (
	"sync"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
)

// Entry is one log line. Plain messages only carry Text; announced actions
// carry the action and snapshots of everyone involved.
type Entry struct {
	Text    string                `json:"text,omitempty"`
	Action  string                `json:"action,omitempty"`
	Source  *game.CharacterState  `json:"source,omitempty"`
	Targets []game.CharacterState `json:"targets,omitempty"`
}

// Message renders the entry as a single line.
func (e Entry) Message() string {
	if e.Text != "" || e.Source == nil {
		return e.Text
	}
	return e.Source.Name + ": " + entity.DisplayName(e.Action)
}

// Logbook is the ordered message log.
type Logbook struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLogbook creates an empty log.
func NewLogbook() *Logbook {
	return &Logbook{}
}

// Append adds a plain message.
func (l *Logbook) Append(text string) {
	l.push(Entry{Text: text})
}

// Record adds an action record.
func (l *Logbook) Record(action string, source *entity.Character, targets []*entity.Character) Entry {
	src := game.SnapshotCharacter(source)
	e := Entry{Action: action, Source: &src}
	for _, t := range targets {
		e.Targets = append(e.Targets, game.SnapshotCharacter(t))
	}
	l.push(e)
	return e
}

func (l *Logbook) push(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the log in order.
func (l *Logbook) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Logbook) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Replace swaps the whole log, as done when a save is loaded.
func (l *Logbook) Replace(entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry(nil), entries...)
}
