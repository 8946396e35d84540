package anim

import (
	"sync/atomic"
	"time"

	"github.com/samdwyer/skirmish/internal/ui"
)

// Animator is a time-bounded overlay composited onto the canvas.
type Animator interface {
	// Interval is the minimum redraw interval the animator needs.
	Interval() time.Duration
	// Valid reports whether the animator should still be drawn.
	Valid() bool
	// Expire ends the animator; it is pruned on the next cycle.
	Expire()
	// Draw may write to the canvas directly. It reports whether it did.
	Draw(c *ui.Canvas) bool
	// PostProcess may rewrite a cell being flushed. It reports whether it did.
	PostProcess(line, col int, cell *ui.Cell) bool
}

// Redraw intervals and time-to-live per kind.
const (
	HighlightInterval = 50 * time.Millisecond
	GlowInterval      = 5 * time.Millisecond
	GlowTTL           = time.Second
	FlashInterval     = 15 * time.Millisecond
	FlashTTL          = 600 * time.Millisecond
	TextInterval      = 50 * time.Millisecond
	TextTTL           = 1500 * time.Millisecond
)

// SelectorGlyph marks the selected row of a menu.
const SelectorGlyph = '☞'

// Rect addresses a block of cells.
type Rect struct {
	Col    int
	Line   int
	Width  int
	Height int
}

// Contains reports whether line, col lies inside the rectangle.
func (r Rect) Contains(line, col int) bool {
	return line >= r.Line && line < r.Line+r.Height && col >= r.Col && col < r.Col+r.Width
}

// =============================================================================
// Highlight
// =============================================================================

// Highlight inverts a rectangle until expired.
type Highlight struct {
	*Lifetime
	Rect Rect
}

// NewHighlight creates an indefinite highlight.
func NewHighlight(clock Clock, r Rect) *Highlight {
	return &Highlight{Lifetime: NewLifetime(clock, HighlightInterval, 0), Rect: r}
}

// Draw implements Animator.
func (h *Highlight) Draw(*ui.Canvas) bool { return false }

// PostProcess implements Animator.
func (h *Highlight) PostProcess(line, col int, cell *ui.Cell) bool {
	if !h.Rect.Contains(line, col) {
		return false
	}
	*cell = cell.Inverted()
	return true
}

// =============================================================================
// Selector
// =============================================================================

// Selector is a one-line highlight with a pointer glyph in its first column.
// The foreground moves it with MoveTo while the worker composites it.
type Selector struct {
	*Lifetime
	col   int
	width int
	line  atomic.Int64
}

// NewSelector creates an indefinite selector on line.
func NewSelector(clock Clock, col, line, width int) *Selector {
	s := &Selector{Lifetime: NewLifetime(clock, HighlightInterval, 0), col: col, width: width}
	s.line.Store(int64(line))
	return s
}

// MoveTo moves the selector to line.
func (s *Selector) MoveTo(line int) {
	s.line.Store(int64(line))
}

// Line returns the selected line.
func (s *Selector) Line() int {
	return int(s.line.Load())
}

// Draw implements Animator.
func (s *Selector) Draw(*ui.Canvas) bool { return false }

// PostProcess implements Animator.
func (s *Selector) PostProcess(line, col int, cell *ui.Cell) bool {
	r := Rect{Col: s.col, Line: s.Line(), Width: s.width, Height: 1}
	if !r.Contains(line, col) {
		return false
	}
	if col == s.col {
		cell.Glyph = SelectorGlyph
	}
	*cell = cell.Inverted()
	return true
}

// =============================================================================
// Glow
// =============================================================================

// Glow inverts a rectangle and reveals it left to right over one second.
type Glow struct {
	*Lifetime
	Rect Rect
}

// NewGlow creates a glow over r.
func NewGlow(clock Clock, r Rect) *Glow {
	return &Glow{Lifetime: NewLifetime(clock, GlowInterval, GlowTTL), Rect: r}
}

// Draw implements Animator.
func (g *Glow) Draw(*ui.Canvas) bool { return false }

// PostProcess implements Animator.
func (g *Glow) PostProcess(line, col int, cell *ui.Cell) bool {
	if !g.Rect.Contains(line, col) {
		return false
	}
	revealed := g.Rect.Col + int(float64(g.Rect.Width)*g.Progress())
	if col < revealed {
		return false
	}
	*cell = cell.Inverted()
	return true
}

// =============================================================================
// Flash
// =============================================================================

// Flash blinks a rectangle three times over its lifetime.
type Flash struct {
	*Lifetime
	Rect Rect
}

// NewFlash creates a flash over r.
func NewFlash(clock Clock, r Rect) *Flash {
	return &Flash{Lifetime: NewLifetime(clock, FlashInterval, FlashTTL), Rect: r}
}

// Lit reports whether the flash is in an inverted phase at progress p.
func Lit(p float64) bool {
	return p < 0.2 || (p > 0.4 && p < 0.6) || p > 0.8
}

// Draw implements Animator.
func (f *Flash) Draw(*ui.Canvas) bool { return false }

// PostProcess implements Animator.
func (f *Flash) PostProcess(line, col int, cell *ui.Cell) bool {
	if !f.Rect.Contains(line, col) || !Lit(f.Progress()) {
		return false
	}
	*cell = cell.Inverted()
	return true
}

// =============================================================================
// Text
// =============================================================================

// TextIndent is the column a text overlay message starts at.
const TextIndent = 2

// Text replaces a whole line with an inverted message.
type Text struct {
	*Lifetime
	line    int
	message []rune
}

// NewText creates a text overlay on line.
func NewText(clock Clock, line int, message string) *Text {
	return &Text{
		Lifetime: NewLifetime(clock, TextInterval, TextTTL),
		line:     line,
		message:  []rune(message),
	}
}

// Draw implements Animator.
func (t *Text) Draw(*ui.Canvas) bool { return false }

// PostProcess implements Animator.
func (t *Text) PostProcess(line, col int, cell *ui.Cell) bool {
	if line != t.line {
		return false
	}
	*cell = cell.Inverted()
	if p := col - TextIndent; p >= 0 && p < len(t.message) {
		cell.Glyph = t.message[p]
	} else {
		cell.Glyph = ' '
	}
	return true
}
