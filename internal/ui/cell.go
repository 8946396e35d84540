package ui

import "github.com/gdamore/tcell/v2"

// Default colours for blank cells.
const (
	DefaultFg = tcell.ColorWhite
	DefaultBg = tcell.ColorBlack
)

// Cell is one character position of the render target.
// A zero Glyph marks the right half of a wide rune and is not drawn.
type Cell struct {
	Glyph rune
	Fg    tcell.Color
	Bg    tcell.Color
}

// Blank returns an empty cell in the default colours.
func Blank() Cell {
	return Cell{Glyph: ' ', Fg: DefaultFg, Bg: DefaultBg}
}

// Style converts the cell colours into a tcell style.
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
}

// Inverted returns the cell with foreground and background swapped.
func (c Cell) Inverted() Cell {
	c.Fg, c.Bg = c.Bg, c.Fg
	return c
}
