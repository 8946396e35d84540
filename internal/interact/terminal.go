// Package interact implements the human side of the game on a character-cell
// terminal: hierarchical label menus, target selection, announcements, the
// status box and the message log.
package interact

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/anim"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/ui"
)

// Screen regions.
const (
	queryTop      = 8
	queryHeight   = 10
	queryIndent   = 4
	nestIndent    = 4
	displayIndent = 8
	messageLine   = queryTop + queryHeight

	nameCol   = 2
	nameWidth = 28
	barWidth  = 50
	numWidth  = 4
)

// Config holds the interactor's pacing and colours.
type Config struct {
	AnnounceDelay time.Duration
	SettleDelay   time.Duration
	Palette       ui.Palette
}

// Terminal is a game.Interactor drawing onto a canvas and reading discrete
// keys. Overlays are registered with the animation engine.
type Terminal struct {
	canvas *ui.Canvas
	input  ui.Input
	engine *anim.Engine
	cfg    Config
	logger *zap.Logger
	book   *Logbook

	game        *game.Game
	onInterrupt func()
	onResize    func()
	interrupted atomic.Bool
	sleep       func(time.Duration)
}

// NewTerminal creates a terminal interactor.
func NewTerminal(canvas *ui.Canvas, input ui.Input, engine *anim.Engine, cfg Config, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{
		canvas: canvas,
		input:  input,
		engine: engine,
		cfg:    cfg,
		logger: logger,
		book:   NewLogbook(),
		sleep:  time.Sleep,
	}
}

// Bind attaches the game whose parties are drawn and whose exit flag an
// interrupt sets.
func (t *Terminal) Bind(g *game.Game) {
	t.game = g
	t.onInterrupt = g.RequestExit
}

// OnResize registers fn to run when the terminal reports new dimensions,
// before the interactor redraws.
func (t *Terminal) OnResize(fn func()) {
	t.onResize = fn
}

// Logbook returns the message log.
func (t *Terminal) Logbook() *Logbook {
	return t.book
}

// Interrupted reports whether an interrupt key was read.
func (t *Terminal) Interrupted() bool {
	return t.interrupted.Load()
}

// readKey returns the next navigation key. Resizes are handled here and
// followed by redraw; an interrupt is reported as a cancel.
func (t *Terminal) readKey(redraw func()) ui.Key {
	for {
		if t.interrupted.Load() {
			return ui.KeyCancel
		}
		key := t.input.ReadKey()
		switch key {
		case ui.KeyInterrupt:
			t.interrupted.Store(true)
			t.logger.Info("interrupt")
			if t.onInterrupt != nil {
				t.onInterrupt()
			}
			return ui.KeyCancel
		case ui.KeyResize:
			if t.onResize != nil {
				t.onResize()
			}
			t.drawParties()
			if redraw != nil {
				redraw()
			}
		case ui.KeyUp, ui.KeyDown, ui.KeyConfirm, ui.KeyCancel:
			return key
		}
	}
}

func (t *Terminal) add(a anim.Animator) {
	if t.engine == nil {
		return
	}
	if _, err := t.engine.Add(a); err != nil {
		t.logger.Debug("animator dropped", zap.Error(err))
	}
}

func (t *Terminal) clock() anim.Clock {
	if t.engine == nil {
		return anim.SystemClock{}
	}
	return t.engine.Clock()
}

func (t *Terminal) pause(d time.Duration) {
	if d > 0 {
		t.sleep(d)
	}
}

func (t *Terminal) rowRect(line int) anim.Rect {
	_, cols := t.canvas.Size()
	return anim.Rect{Col: 0, Line: line, Width: cols, Height: 1}
}

// =============================================================================
// Label Query
// =============================================================================

// QueryLabel presents options as a menu tree and returns the chosen full
// label or game.Cancel.
func (t *Terminal) QueryLabel(actor *entity.Character, options []game.Option) string {
	return t.queryMenu(actor, BuildMenu(options), queryIndent)
}

// queryMenu runs one menu level. A cancelled submenu presents this level
// again; cancelling this level propagates game.Cancel.
func (t *Terminal) queryMenu(actor *entity.Character, menu *Menu, indent int) string {
	for {
		entry, ok := t.chooseEntry(actor, menu, indent)
		if !ok {
			return game.Cancel
		}
		if entry.Leaf() {
			return entry.Label
		}
		sub := t.queryMenu(actor, entry.Sub, indent+nestIndent)
		if sub != game.Cancel || t.interrupted.Load() {
			return sub
		}
	}
}

func (t *Terminal) chooseEntry(actor *entity.Character, menu *Menu, indent int) (*MenuEntry, bool) {
	if len(menu.Entries) == 0 {
		return nil, false
	}

	title := actor.Name
	resWidth := menu.ResourceWidth()
	width := max(textWidth(title)+9, menu.Width()+5) + resWidth
	height := 2 + len(menu.Entries)
	left, top := indent, queryTop

	draw := func() {
		ui.Box(t.canvas, top, left, height, width)
		w := ui.NewWriter(t.canvas)
		w.To(top, left+2).Write(": " + title + " :")
		for i, e := range menu.Entries {
			w.To(top+1+i, left+1).Write("  " + e.Name)
			if e.Resource != "" {
				w.WriteRight(e.Resource, left+width-2)
			}
		}
	}
	draw()

	sel := anim.NewSelector(t.clock(), left+1, top+1, width-2)
	t.add(sel)
	defer sel.Expire()
	if row := t.rowOf(actor); row >= 0 {
		hl := anim.NewHighlight(t.clock(), t.rowRect(row))
		t.add(hl)
		defer hl.Expire()
	}
	defer t.canvas.ClearRect(top, left, height, width)

	selection := 0
	for {
		sel.MoveTo(top + 1 + selection)
		switch t.readKey(draw) {
		case ui.KeyUp:
			selection--
		case ui.KeyDown:
			selection++
		case ui.KeyConfirm:
			return menu.Entries[selection], true
		case ui.KeyCancel:
			return nil, false
		}
		selection = clamp(selection, 0, len(menu.Entries)-1)
	}
}

// =============================================================================
// Target Query
// =============================================================================

// QueryTargets lets the player pick one candidate by walking the party rows
// from top to bottom. A single candidate is returned without a prompt.
func (t *Terminal) QueryTargets(actor *entity.Character, candidates []*entity.Character) ([]*entity.Character, bool) {
	switch len(candidates) {
	case 0:
		return nil, false
	case 1:
		return candidates, true
	}

	sorted := append([]*entity.Character(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return t.rowOf(sorted[i]) < t.rowOf(sorted[j])
	})

	_, cols := t.canvas.Size()
	sel := anim.NewSelector(t.clock(), 0, t.rowOf(sorted[0]), cols)
	t.add(sel)
	defer sel.Expire()

	selection := 0
	for {
		t.drawParties()
		sel.MoveTo(t.rowOf(sorted[selection]))
		switch t.readKey(nil) {
		case ui.KeyUp:
			selection--
		case ui.KeyDown:
			selection++
		case ui.KeyConfirm:
			chosen := sorted[selection]
			t.logger.Debug("target chosen", zap.String("actor", actor.Name), zap.String("target", chosen.Name))
			return []*entity.Character{chosen}, true
		case ui.KeyCancel:
			return nil, false
		}
		selection = clamp(selection, 0, len(sorted)-1)
	}
}

// =============================================================================
// Presentation
// =============================================================================

// Announce flashes the actor's row, overlays "<name>: <action>", glows each
// target row and records the action in the log.
func (t *Terminal) Announce(actor *entity.Character, action string, targets []*entity.Character) {
	if row := t.rowOf(actor); row >= 0 {
		t.add(anim.NewFlash(t.clock(), t.rowRect(row)))
	}
	t.add(anim.NewText(t.clock(), queryTop, actor.Name+": "+entity.DisplayName(action)))

	t.pause(t.cfg.AnnounceDelay)

	for _, target := range targets {
		if row := t.rowOf(target); row >= 0 {
			t.add(anim.NewGlow(t.clock(), t.rowRect(row)))
		}
	}

	t.pause(t.cfg.SettleDelay)

	entry := t.book.Record(action, actor, targets)
	ids := make([]string, len(entry.Targets))
	for i, ts := range entry.Targets {
		ids[i] = ts.ID
	}
	t.logger.Info("action",
		zap.String("action", action),
		zap.String("source", actor.Name),
		zap.String("source_id", actor.ID),
		zap.Any("source_attributes", entry.Source.Attributes),
		zap.Strings("target_ids", ids),
	)
}

// Display shows text in a titled box with an OK entry. It reports whether
// the box was confirmed rather than cancelled.
func (t *Terminal) Display(title, text string) bool {
	lines := strings.Split(text, "\n")
	textW := 0
	for _, l := range lines {
		textW = max(textW, textWidth(l))
	}

	left, top := displayIndent, queryTop
	width := 5 + max(textWidth(title)+4, textW)
	height := 3 + len(lines)
	okLine := top + 1 + len(lines)

	draw := func() {
		ui.Box(t.canvas, top, left, height, width)
		w := ui.NewWriter(t.canvas)
		w.To(top, left+2).Write(": " + title + " :")
		for i, l := range lines {
			w.To(top+1+i, left+3).Write(l)
		}
		w.To(okLine, left+3).Write("OK")
	}
	draw()

	sel := anim.NewSelector(t.clock(), left+1, okLine, width-2)
	t.add(sel)
	defer sel.Expire()
	defer t.drawParties()
	defer t.canvas.ClearRect(top, left, height, width)

	for {
		switch t.readKey(draw) {
		case ui.KeyConfirm:
			return true
		case ui.KeyCancel:
			return false
		}
	}
}

// DrawUI clears the query area and draws every party.
func (t *Terminal) DrawUI(g *game.Game) {
	if t.game != g {
		t.Bind(g)
	}
	_, cols := t.canvas.Size()
	t.canvas.ClearRect(queryTop, 0, queryHeight, cols)
	t.drawParties()
}

// Log appends text to the message log and shows it on the message line.
func (t *Terminal) Log(text string) {
	t.book.Append(text)
	t.add(anim.NewText(t.clock(), messageLine, text))
	t.logger.Info("log", zap.String("text", text))
}

// Clear wipes the canvas.
func (t *Terminal) Clear() {
	t.canvas.Clear()
}

// =============================================================================
// Party Rows
// =============================================================================

// partyTop returns the first row of party pi. The player party sits at the
// bottom; the others stack from the top with a blank row between them.
func (t *Terminal) partyTop(pi int) int {
	parties := t.game.Parties
	if pi == 0 {
		lines, _ := t.canvas.Size()
		return lines - parties[0].Len()
	}
	top := 0
	for i := 1; i < pi; i++ {
		top += parties[i].Len() + 1
	}
	return top
}

// rowOf returns the canvas row of c, or -1 when c is not in a party.
func (t *Terminal) rowOf(c *entity.Character) int {
	if t.game == nil {
		return -1
	}
	pi := t.game.PartyOf(c)
	if pi < 0 {
		return -1
	}
	return t.partyTop(pi) + t.game.PositionOf(c)
}

func (t *Terminal) drawParties() {
	if t.game == nil {
		return
	}
	_, cols := t.canvas.Size()
	barCol := max(cols-barWidth, nameCol+nameWidth+2*(numWidth+1)+1)
	mpCol := barCol - numWidth - 1
	hpCol := mpCol - numWidth - 1

	for pi, p := range t.game.Parties {
		top := t.partyTop(pi)
		for i, m := range p.Members {
			line := top + i
			t.canvas.ClearRect(line, 0, 1, cols)

			w := ui.NewWriter(t.canvas)
			w.To(line, nameCol).Write(runewidth.Truncate(m.Name, nameWidth, ""))

			hp, mp := m.Get(entity.AttrHPCurrent), m.Get(entity.AttrMPCurrent)
			w.Colors(t.cfg.Palette.HP, ui.DefaultBg).WriteRight(fmt.Sprint(hp), hpCol+numWidth)
			w.Colors(t.cfg.Palette.MP, ui.DefaultBg).WriteRight(fmt.Sprint(mp), mpCol+numWidth)

			ui.Bar(t.canvas, line, barCol, cols-barCol,
				fraction(hp, m.Get(entity.AttrHPTotal)),
				fraction(mp, m.Get(entity.AttrMPTotal)),
				t.cfg.Palette.HP, t.cfg.Palette.MP)
		}
	}
}

// =============================================================================
// Save State
// =============================================================================

// State is the "interaction" section of a save document.
type State struct {
	Log []Entry `json:"log"`
}

// Snapshot captures the message log.
func (t *Terminal) Snapshot() State {
	return State{Log: t.book.Entries()}
}

// Restore replaces the message log.
func (t *Terminal) Restore(s State) {
	t.book.Replace(s.Log)
}

func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

func fraction(v, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(v) / float64(total)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
