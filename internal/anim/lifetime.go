package anim

import (
	"sync/atomic"
	"time"
)

// Lifetime is the validity window shared by every animator kind. It is safe
// for concurrent use: the foreground may expire it while the worker reads it.
type Lifetime struct {
	clock    Clock
	interval time.Duration
	since    time.Time
	until    atomic.Pointer[time.Time] // nil while indefinite
}

// NewLifetime starts a lifetime now. A zero ttl means valid until expired.
func NewLifetime(clock Clock, interval, ttl time.Duration) *Lifetime {
	if clock == nil {
		clock = SystemClock{}
	}
	l := &Lifetime{
		clock:    clock,
		interval: interval,
		since:    clock.Now(),
	}
	if ttl > 0 {
		until := l.since.Add(ttl)
		l.until.Store(&until)
	}
	return l
}

// Interval returns the minimum redraw interval.
func (l *Lifetime) Interval() time.Duration {
	return l.interval
}

// Valid reports whether the deadline, if any, is still in the future.
func (l *Lifetime) Valid() bool {
	until := l.until.Load()
	return until == nil || l.clock.Now().Before(*until)
}

// Expire brings the deadline forward to now. Expiring an already expired
// lifetime keeps the original deadline.
func (l *Lifetime) Expire() {
	now := l.clock.Now()
	for {
		until := l.until.Load()
		if until != nil && !until.After(now) {
			return
		}
		if l.until.CompareAndSwap(until, &now) {
			return
		}
	}
}

// Progress returns the elapsed fraction of the window in [0, 1]. Indefinite
// lifetimes report 0 until expired.
func (l *Lifetime) Progress() float64 {
	until := l.until.Load()
	if until == nil {
		return 0
	}
	total := until.Sub(l.since)
	if total <= 0 {
		return 1
	}
	elapsed := l.clock.Now().Sub(l.since)
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}
