package ui

import "github.com/gdamore/tcell/v2"

// Key is a discrete input code.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyConfirm
	KeyCancel
	KeyInterrupt
	KeyResize
)

// String returns the key name for logs.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyConfirm:
		return "confirm"
	case KeyCancel:
		return "cancel"
	case KeyInterrupt:
		return "interrupt"
	case KeyResize:
		return "resize"
	default:
		return "none"
	}
}

// Input is a blocking source of keys.
type Input interface {
	ReadKey() Key
}

// Translate maps a tcell event to a key. Arrows and hjkl navigate, Enter and
// Right confirm, Escape and Left cancel, Ctrl-C interrupts.
func Translate(ev tcell.Event) Key {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return KeyResize
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			return KeyUp
		case tcell.KeyDown:
			return KeyDown
		case tcell.KeyEnter, tcell.KeyRight:
			return KeyConfirm
		case tcell.KeyEscape, tcell.KeyLeft:
			return KeyCancel
		case tcell.KeyCtrlC:
			return KeyInterrupt
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'k':
				return KeyUp
			case 'j':
				return KeyDown
			case 'l', ' ':
				return KeyConfirm
			case 'h':
				return KeyCancel
			}
		}
	}
	return KeyNone
}
