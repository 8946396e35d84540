package game

import "github.com/samdwyer/skirmish/internal/entity"

// Cancel is the label a query returns when the actor backs out.
const Cancel = "Cancel"

// Option is one entry of a label query. Resource is the cost shown next to
// the label, e.g. "5 MP", and is empty for free actions.
type Option struct {
	Label    string
	Resource string
}

// Labels returns the label of each option.
func Labels(options []Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Label
	}
	return out
}

// Interactor is the human side of the game: it answers queries for the
// player party and presents what happens.
type Interactor interface {
	// QueryLabel blocks until one of the options or Cancel is chosen.
	// Labels may contain "/" to group entries into submenus.
	QueryLabel(actor *entity.Character, options []Option) string
	// QueryTargets blocks until a single target is chosen. The boolean is
	// false when the query was cancelled.
	QueryTargets(actor *entity.Character, candidates []*entity.Character) ([]*entity.Character, bool)
	// Announce presents an action that is about to be performed.
	Announce(actor *entity.Character, action string, targets []*entity.Character)
	// Display shows text in a box and reports whether it was accepted.
	Display(title, text string) bool
	// DrawUI renders the parties.
	DrawUI(g *Game)
	// Log appends a line to the message log.
	Log(text string)
	// Clear wipes the display.
	Clear()
}

// Policy answers the same two query shapes for computer-controlled actors.
// It must return promptly.
type Policy interface {
	ChooseLabel(g *Game, actor *entity.Character, options []Option) string
	ChooseTargets(g *Game, actor *entity.Character, candidates []*entity.Character) ([]*entity.Character, bool)
}
