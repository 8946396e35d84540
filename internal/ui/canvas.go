package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Output receives flushed cells. *Screen satisfies it.
type Output interface {
	SetContent(x, y int, r rune, style tcell.Style)
	Show()
}

// PostFunc may rewrite a cell on its way to the output.
type PostFunc func(line, col int, cell Cell) Cell

// Canvas is an in-memory grid of cells that is flushed to an Output.
// It is safe for concurrent use; the animation worker draws and flushes it
// while the foreground writes menus and party rows.
type Canvas struct {
	mu    sync.RWMutex
	out   Output
	lines int
	cols  int
	cells []Cell
}

// NewCanvas creates a canvas of the given size that flushes to out.
func NewCanvas(out Output, lines, cols int) *Canvas {
	c := &Canvas{out: out}
	c.resize(lines, cols)
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (lines, cols int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lines, c.cols
}

// Resize changes the canvas dimensions, keeping the overlapping content.
func (c *Canvas) Resize(lines, cols int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resize(lines, cols)
}

func (c *Canvas) resize(lines, cols int) {
	if lines < 0 {
		lines = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([]Cell, lines*cols)
	for i := range cells {
		cells[i] = Blank()
	}
	for l := 0; l < lines && l < c.lines; l++ {
		for col := 0; col < cols && col < c.cols; col++ {
			cells[l*cols+col] = c.cells[l*c.cols+col]
		}
	}
	c.lines, c.cols, c.cells = lines, cols, cells
}

// Contains reports whether line, col addresses a cell.
func (c *Canvas) Contains(line, col int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contains(line, col)
}

func (c *Canvas) contains(line, col int) bool {
	return line >= 0 && line < c.lines && col >= 0 && col < c.cols
}

// Get returns the cell at line, col, or a blank cell when out of range.
func (c *Canvas) Get(line, col int) Cell {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.contains(line, col) {
		return Blank()
	}
	return c.cells[line*c.cols+col]
}

// Set writes the cell at line, col. Out of range writes are ignored.
func (c *Canvas) Set(line, col int, cell Cell) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contains(line, col) {
		c.cells[line*c.cols+col] = cell
	}
}

// Update applies fn to every cell inside the rectangle.
func (c *Canvas) Update(line, col, height, width int, fn func(Cell) Cell) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for l := line; l < line+height; l++ {
		for x := col; x < col+width; x++ {
			if c.contains(l, x) {
				i := l*c.cols + x
				c.cells[i] = fn(c.cells[i])
			}
		}
	}
}

// ClearRect blanks the rectangle.
func (c *Canvas) ClearRect(line, col, height, width int) {
	c.Update(line, col, height, width, func(Cell) Cell { return Blank() })
}

// Clear blanks the whole canvas.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.cells {
		c.cells[i] = Blank()
	}
}

// Flush sends every cell to the output, passing each through post first when
// it is non-nil. The stored cells are not modified by post.
func (c *Canvas) Flush(post PostFunc) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.out == nil {
		return
	}
	for line := 0; line < c.lines; line++ {
		for col := 0; col < c.cols; col++ {
			cell := c.cells[line*c.cols+col]
			if post != nil {
				cell = post(line, col, cell)
			}
			if cell.Glyph == 0 {
				continue
			}
			c.out.SetContent(col, line, cell.Glyph, cell.Style())
		}
	}
	c.out.Show()
}
