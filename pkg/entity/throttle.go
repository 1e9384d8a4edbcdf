package entity

import (
	"sync"
	"time"
)

// Throttle runs a function at most once per interval. The interval is
// measured from the end of the last successful run; a failed run does not
// start a new window. Calls inside the window, or while a run is in flight,
// are skipped rather than queued.
type Throttle struct {
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    time.Time
	running bool
}

// NewThrottle creates a throttle. A zero interval never skips.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval, now: time.Now}
}

// Interval returns the throttle window.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Do runs fn unless the throttle window is still open. It reports whether fn ran.
func (t *Throttle) Do(fn func() error) (bool, error) {
	t.mu.Lock()
	if t.running || (!t.last.IsZero() && t.now().Sub(t.last) < t.interval) {
		t.mu.Unlock()
		return false, nil
	}
	t.running = true
	t.mu.Unlock()

	err := fn()

	t.mu.Lock()
	t.running = false
	if err == nil {
		t.last = t.now()
	}
	t.mu.Unlock()

	return true, err
}
