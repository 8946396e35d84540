package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	cells map[[2]int]rune
	shows int
}

func newRecordingOutput() *recordingOutput {
	return &recordingOutput{cells: make(map[[2]int]rune)}
}

func (o *recordingOutput) SetContent(x, y int, r rune, _ tcell.Style) {
	o.cells[[2]int{y, x}] = r
}

func (o *recordingOutput) Show() { o.shows++ }

func (o *recordingOutput) line(y, width int) string {
	out := make([]rune, width)
	for x := 0; x < width; x++ {
		out[x] = o.cells[[2]int{y, x}]
	}
	return string(out)
}

func TestCanvasSetGetOutOfRange(t *testing.T) {
	c := NewCanvas(nil, 2, 3)

	c.Set(1, 2, Cell{Glyph: 'x'})
	assert.Equal(t, 'x', c.Get(1, 2).Glyph)

	c.Set(5, 5, Cell{Glyph: 'y'})
	assert.Equal(t, ' ', c.Get(5, 5).Glyph)
	assert.False(t, c.Contains(2, 0))
}

func TestCanvasResizeKeepsOverlap(t *testing.T) {
	c := NewCanvas(nil, 2, 2)
	c.Set(0, 0, Cell{Glyph: 'a'})
	c.Set(1, 1, Cell{Glyph: 'b'})

	c.Resize(3, 1)
	lines, cols := c.Size()
	assert.Equal(t, 3, lines)
	assert.Equal(t, 1, cols)
	assert.Equal(t, 'a', c.Get(0, 0).Glyph)
	assert.Equal(t, ' ', c.Get(1, 0).Glyph)
}

func TestFlushRoutesThroughPost(t *testing.T) {
	out := newRecordingOutput()
	c := NewCanvas(out, 1, 3)
	NewWriter(c).Write("abc")

	c.Flush(func(line, col int, cell Cell) Cell {
		if col == 1 {
			cell.Glyph = '*'
		}
		return cell
	})

	assert.Equal(t, "a*c", out.line(0, 3))
	assert.Equal(t, 1, out.shows)
	assert.Equal(t, 'b', c.Get(0, 1).Glyph, "post must not modify stored cells")
}

func TestWriterClipsAndAligns(t *testing.T) {
	c := NewCanvas(nil, 1, 6)
	w := NewWriter(c)

	n := w.To(0, 2).Write("abcdef")
	assert.Equal(t, 4, n)
	assert.Equal(t, 'd', c.Get(0, 5).Glyph)

	c.Clear()
	w.WriteRight("5 MP", 6)
	assert.Equal(t, '5', c.Get(0, 2).Glyph)
	assert.Equal(t, 'P', c.Get(0, 5).Glyph)
}

func TestWriterWideRunes(t *testing.T) {
	out := newRecordingOutput()
	c := NewCanvas(out, 1, 4)

	n := NewWriter(c).Write("日本")
	assert.Equal(t, 4, n)
	assert.Equal(t, rune(0), c.Get(0, 1).Glyph)

	c.Flush(nil)
	_, drawn := out.cells[[2]int{0, 1}]
	assert.False(t, drawn, "continuation cells are skipped")
}

func TestBox(t *testing.T) {
	out := newRecordingOutput()
	c := NewCanvas(out, 3, 4)
	Box(c, 0, 0, 3, 4)
	c.Flush(nil)

	assert.Equal(t, "┌──┐", out.line(0, 4))
	assert.Equal(t, "│  │", out.line(1, 4))
	assert.Equal(t, "└──┘", out.line(2, 4))
}

func TestBarChannels(t *testing.T) {
	c := NewCanvas(nil, 1, 4)
	Bar(c, 0, 0, 4, 0.5, 0.1, tcell.ColorRed, tcell.ColorBlue)

	assert.Equal(t, tcell.ColorRed, c.Get(0, 1).Fg)
	assert.Equal(t, DefaultBg, c.Get(0, 2).Fg)
	assert.Equal(t, tcell.ColorBlue, c.Get(0, 0).Bg, "partial cells round up")
	assert.Equal(t, DefaultBg, c.Get(0, 1).Bg)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00FF00", tcell.NewRGBColor(0, 255, 0), false},
		{"#12345", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Key
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyUp},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyConfirm},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), KeyConfirm},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyCancel},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), KeyInterrupt},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), KeyDown},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), KeyNone},
		{"resize", tcell.NewEventResize(80, 24), KeyResize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.ev))
		})
	}
}
