// Package search holds the asynchronous edges of the picker: debounced
// filter input and cancellable loading of calendar data.
package search

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when New is given zero.
const DefaultDelay = 300 * time.Millisecond

// Debouncer calls fn with the latest text once no Trigger has arrived for
// the delay. It is safe for concurrent use. fn must not call Stop.
type Debouncer struct {
	delay time.Duration
	fn    func(string)

	// calling is held for the duration of every fn call.
	calling sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// New returns a debouncer. A delay of zero or less means DefaultDelay.
func New(delay time.Duration, fn func(text string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger records text and restarts the quiet period. Earlier pending text
// is discarded.
func (d *Debouncer) Trigger(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, text) })
}

func (d *Debouncer) fire(seq uint64, text string) {
	d.calling.Lock()
	defer d.calling.Unlock()

	d.mu.Lock()
	// A timer that already fired cannot be stopped, so stale callbacks are
	// dropped by sequence number.
	current := seq == d.seq && !d.stopped
	d.mu.Unlock()
	if current {
		d.fn(text)
	}
}

// Flush cancels the pending timer and calls fn immediately with text.
func (d *Debouncer) Flush(text string) {
	d.calling.Lock()
	defer d.calling.Unlock()

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	d.mu.Unlock()
	d.fn(text)
}

// Stop cancels any pending call and waits for a call in progress. fn is
// never called after Stop returns. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.calling.Lock()
	defer d.calling.Unlock()
}
