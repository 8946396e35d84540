package game

import "errors"

// ErrUnknownPhase is returned by Run when the phase cannot be dispatched.
var ErrUnknownPhase = errors.New("unknown game phase")

// Phase is the coarse game-loop state. It is always derived, never stored.
type Phase int

const (
	// PhaseMenu - only the player party exists
	PhaseMenu Phase = iota
	// PhaseCombat - two or more parties are still in contention
	PhaseCombat
	// PhaseVictory - the first eliminated party is the last one
	PhaseVictory
	// PhaseDefeat - the first eliminated party is any other party
	PhaseDefeat
	// PhaseExit - the exit flag is set
	PhaseExit
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseCombat:
		return "combat"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Phase derives the current phase from the exit flag and party survival.
// Parties are scanned in order and the first eliminated one decides: the last
// party gives victory, any earlier one gives defeat. With the player party at
// Parties[0] its loss is always a defeat.
func (g *Game) Phase() Phase {
	if g.Exiting() {
		return PhaseExit
	}
	if len(g.Parties) <= 1 {
		return PhaseMenu
	}
	for pi, p := range g.Parties {
		if !p.Defeated() {
			continue
		}
		if pi == len(g.Parties)-1 {
			return PhaseVictory
		}
		return PhaseDefeat
	}
	return PhaseCombat
}
