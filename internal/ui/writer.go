package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Writer draws text onto a canvas from a cursor position.
type Writer struct {
	canvas *Canvas
	line   int
	col    int
	fg     tcell.Color
	bg     tcell.Color
}

// NewWriter creates a writer at the top-left corner in the default colours.
func NewWriter(c *Canvas) *Writer {
	return &Writer{canvas: c, fg: DefaultFg, bg: DefaultBg}
}

// To moves the cursor.
func (w *Writer) To(line, col int) *Writer {
	w.line, w.col = line, col
	return w
}

// Colors sets the colours used by subsequent writes.
func (w *Writer) Colors(fg, bg tcell.Color) *Writer {
	w.fg, w.bg = fg, bg
	return w
}

// Position returns the cursor.
func (w *Writer) Position() (line, col int) {
	return w.line, w.col
}

// Write draws text at the cursor, clipped to the canvas width, and advances
// the cursor by the display width written.
func (w *Writer) Write(text string) int {
	_, cols := w.canvas.Size()
	avail := cols - w.col
	if avail <= 0 {
		return 0
	}
	text = runewidth.Truncate(text, avail, "")

	written := 0
	for _, r := range text {
		width := runewidth.RuneWidth(r)
		if width == 0 {
			continue
		}
		w.canvas.Set(w.line, w.col, Cell{Glyph: r, Fg: w.fg, Bg: w.bg})
		if width == 2 {
			w.canvas.Set(w.line, w.col+1, Cell{Glyph: 0, Fg: w.fg, Bg: w.bg})
		}
		w.col += width
		written += width
	}
	return written
}

// WriteRight draws text so that it ends just before column right.
func (w *Writer) WriteRight(text string, right int) int {
	w.col = right - runewidth.StringWidth(text)
	if w.col < 0 {
		text = runewidth.TruncateLeft(text, -w.col, "")
		w.col = 0
	}
	return w.Write(text)
}

// Pad fills from the cursor up to column end with blanks in the current colours.
func (w *Writer) Pad(end int) {
	for w.col < end {
		w.canvas.Set(w.line, w.col, Cell{Glyph: ' ', Fg: w.fg, Bg: w.bg})
		w.col++
	}
}

// Box draws a single-line border around the rectangle and blanks its interior.
func Box(c *Canvas, line, col, height, width int) {
	if height < 2 || width < 2 {
		return
	}
	c.ClearRect(line, col, height, width)
	set := func(l, x int, r rune) {
		c.Set(l, x, Cell{Glyph: r, Fg: DefaultFg, Bg: DefaultBg})
	}
	for x := col + 1; x < col+width-1; x++ {
		set(line, x, '─')
		set(line+height-1, x, '─')
	}
	for l := line + 1; l < line+height-1; l++ {
		set(l, col, '│')
		set(l, col+width-1, '│')
	}
	set(line, col, '┌')
	set(line, col+width-1, '┐')
	set(line+height-1, col, '└')
	set(line+height-1, col+width-1, '┘')
}

// Bar draws a two-channel bar of width cells using upper half blocks: the
// foreground shows the top fraction and the background the bottom fraction.
func Bar(c *Canvas, line, col, width int, top, bottom float64, topColor, bottomColor tcell.Color) {
	topCells := fill(width, top)
	bottomCells := fill(width, bottom)
	for i := 0; i < width; i++ {
		cell := Cell{Glyph: '▀', Fg: DefaultBg, Bg: DefaultBg}
		if i < topCells {
			cell.Fg = topColor
		}
		if i < bottomCells {
			cell.Bg = bottomColor
		}
		c.Set(line, col+i, cell)
	}
}

// fill converts a fraction into a cell count, rounding partial cells up so a
// living character never shows an empty bar.
func fill(width int, fraction float64) int {
	if fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return width
	}
	n := int(fraction * float64(width))
	if float64(n) < fraction*float64(width) {
		n++
	}
	return n
}
