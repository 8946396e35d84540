// Package anim runs time-bounded visual overlays on a background goroutine
// that prunes, draws and composites them onto a ui.Canvas.
package anim

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/ui"
)

// ErrClosed is returned by Add once the engine has been stopped.
var ErrClosed = errors.New("animation engine closed")

// DefaultFloor is the longest the worker sleeps between cycles.
const DefaultFloor = 50 * time.Millisecond

// Handle is a non-owning reference to a registered animator. A handle whose
// animator has been released resolves to nothing.
type Handle struct {
	index      uint32
	generation uint32
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Floor caps the worker sleep and is used when no animator is live.
	Floor time.Duration
	// Clock is shared with the animators created through the engine.
	Clock Clock
	// OnRelease, when set, is called for every animator as it is released.
	OnRelease func(Animator)
}

// Stats counts animator registrations and releases.
type Stats struct {
	Added    uint64
	Released uint64
}

type slot struct {
	anim       Animator
	generation uint32
	used       bool
}

// Engine owns the animator collection. Every access to the collection is
// guarded by one mutex; the canvas lock is only ever taken after it.
type Engine struct {
	target *ui.Canvas
	cfg    EngineConfig
	logger *zap.Logger

	mu     sync.Mutex
	slots  []slot
	free   []uint32
	order  []Handle
	closed bool

	added    atomic.Uint64
	released atomic.Uint64

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	wg        sync.WaitGroup
}

// NewEngine creates an engine drawing onto target.
func NewEngine(target *ui.Canvas, cfg EngineConfig, logger *zap.Logger) *Engine {
	if cfg.Floor <= 0 {
		cfg.Floor = DefaultFloor
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		target: target,
		cfg:    cfg,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Clock returns the clock animators should be created with.
func (e *Engine) Clock() Clock {
	return e.cfg.Clock
}

// Add registers an animator. The engine owns it from now on.
func (e *Engine) Add(a Animator) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return Handle{}, ErrClosed
	}

	var idx uint32
	if n := len(e.free); n > 0 {
		idx = e.free[n-1]
		e.free = e.free[:n-1]
	} else {
		idx = uint32(len(e.slots))
		e.slots = append(e.slots, slot{})
	}
	s := &e.slots[idx]
	s.anim = a
	s.used = true

	h := Handle{index: idx, generation: s.generation}
	e.order = append(e.order, h)
	e.added.Add(1)
	return h, nil
}

// Expire ends the animator behind h. Stale handles are ignored. It reports
// whether the handle still referred to a registered animator.
func (e *Engine) Expire(h Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	a := e.lookup(h)
	if a == nil {
		return false
	}
	a.Expire()
	return true
}

// registered reports whether h still refers to an unreleased animator.
func (e *Engine) registered(h Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lookup(h) != nil
}

// Len returns the number of registered animators.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

// Stats returns registration counters.
func (e *Engine) Stats() Stats {
	return Stats{Added: e.added.Load(), Released: e.released.Load()}
}

func (e *Engine) lookup(h Handle) Animator {
	if int(h.index) >= len(e.slots) {
		return nil
	}
	s := &e.slots[h.index]
	if !s.used || s.generation != h.generation {
		return nil
	}
	return s.anim
}

// release frees the slot behind h. Callers hold e.mu.
func (e *Engine) release(h Handle) {
	s := &e.slots[h.index]
	a := s.anim
	s.anim = nil
	s.used = false
	s.generation++
	e.free = append(e.free, h.index)
	e.released.Add(1)
	if e.cfg.OnRelease != nil {
		e.cfg.OnRelease(a)
	}
}

// Refresh releases every invalid animator and lets the remaining ones draw.
// It reports whether any animator drew.
func (e *Engine) Refresh() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.order[:0]
	for _, h := range e.order {
		if e.slots[h.index].anim.Valid() {
			kept = append(kept, h)
			continue
		}
		e.release(h)
	}
	for i := len(kept); i < len(e.order); i++ {
		e.order[i] = Handle{}
	}
	e.order = kept

	drew := false
	for _, h := range e.order {
		a := e.slots[h.index].anim
		if a.Valid() && a.Draw(e.target) {
			drew = true
		}
	}
	return drew
}

// Flush writes the canvas to its output, routing every cell through every
// valid animator's post-process hook in registration order.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.target.Flush(func(line, col int, cell ui.Cell) ui.Cell {
		for _, h := range e.order {
			a := e.slots[h.index].anim
			if a.Valid() {
				a.PostProcess(line, col, &cell)
			}
		}
		return cell
	})
}

// SleepTime returns the shortest redraw interval of the live animators,
// capped at the floor.
func (e *Engine) SleepTime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	sleep := e.cfg.Floor
	for _, h := range e.order {
		a := e.slots[h.index].anim
		if a.Valid() && a.Interval() < sleep {
			sleep = a.Interval()
		}
	}
	return sleep
}

// Start launches the worker goroutine. Subsequent calls do nothing.
func (e *Engine) Start() {
	e.startOnce.Do(func() {
		e.wg.Add(1)
		go e.run()
		e.logger.Debug("animation engine started", zap.Duration("floor", e.cfg.Floor))
	})
}

// run is the worker cycle: prune and draw, flush, sleep.
func (e *Engine) run() {
	defer e.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		select {
		case <-e.stop:
			return
		default:
		}

		e.Refresh()
		e.Flush()

		timer.Reset(e.SleepTime())
		select {
		case <-e.stop:
			return
		case <-timer.C:
		}
	}
}

// Stop rejects further registrations, signals and joins the worker, then
// releases every animator still registered. It is safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		close(e.stop)
		e.wg.Wait()

		e.mu.Lock()
		outstanding := len(e.order)
		for _, h := range e.order {
			e.release(h)
		}
		e.order = nil
		e.mu.Unlock()

		stats := e.Stats()
		e.logger.Debug("animation engine stopped",
			zap.Int("outstanding", outstanding),
			zap.Uint64("added", stats.Added),
			zap.Uint64("released", stats.Released),
		)
	})
}
