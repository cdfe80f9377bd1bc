// Package debounce delays a handler until its input has been quiet for a
// fixed period. Every new input cancels the pending timer and starts over,
// so a burst of inputs results in one call with the last value.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used between keystrokes and a search.
const DefaultDelay = 150 * time.Millisecond

// Debouncer coalesces Trigger calls into a single delayed call of fn.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(string)
	timer   *time.Timer
	pending string
	armed   bool
	stopped bool
	// seq identifies the current timer; a timer that fires after being
	// replaced sees a newer seq and does nothing
	seq uint64
}

// New creates a Debouncer calling fn after delay. A non-positive delay
// uses DefaultDelay.
func New(delay time.Duration, fn func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger records value and (re)starts the timer.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopTimer()
	d.pending = value
	d.armed = true
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || !d.armed {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.armed = false
	d.timer = nil
	d.seq++
	d.mu.Unlock()

	d.fn(value)
}

// Flush runs the pending call now, if there is one. It reports whether
// fn was called.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return false
	}
	d.stopTimer()
	value := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fn(value)
	return true
}

// Cancel drops the pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimer()
	d.armed = false
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Stop cancels the pending call and ignores every later Trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimer()
	d.armed = false
	d.stopped = true
}

// stopTimer must be called with mu held.
func (d *Debouncer) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
