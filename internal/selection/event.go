package selection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
)

// Input error kinds, matched with errors.Is.
var (
	ErrUnparsableInput = errors.New("unparsable input")
	ErrInvalidPreset   = errors.New("invalid preset")
)

var (
	// ErrNoDate is returned for intents carrying the zero date.
	ErrNoDate = errors.New("no date given")
	// ErrNoDrag is returned by DragEnd when no drag is in progress.
	ErrNoDrag = errors.New("no drag in progress")
	// ErrRangeInSingleMode is returned when a range is committed to a
	// single-date machine.
	ErrRangeInSingleMode = errors.New("range value in single-date mode")
	// ErrUnknownPreset is returned when a preset label is not configured.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrCompareDisabled is returned when targeting the comparison
	// selection of a picker without one.
	ErrCompareDisabled = errors.New("comparison mode is not enabled")
	// ErrUnknownIntent is returned by Dispatch for unrecognized intents.
	ErrUnknownIntent = errors.New("unknown intent")
)

// InputError reports typed text that could not be read, or a preset that
// could not be applied.
type InputError struct {
	Kind  error
	Input string
	Label string
	Cause error
}

func (e *InputError) Error() string {
	switch {
	case e.Label != "" && e.Cause != nil:
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Label, e.Cause)
	case e.Label != "":
		return fmt.Sprintf("%s %q", e.Kind, e.Label)
	case e.Cause != nil:
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Input, e.Cause)
	}
	return fmt.Sprintf("%s %q", e.Kind, e.Input)
}

// Unwrap exposes both the input error kind and its cause.
func (e *InputError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// EventKind distinguishes committed changes from rejected input.
type EventKind int

const (
	EventChange EventKind = iota
	EventInvalid
)

func (k EventKind) String() string {
	if k == EventInvalid {
		return "invalid"
	}
	return "change"
}

// Event is delivered synchronously to an Observer. Value/ISO carry the
// primary committed value and Compare/CompareISO the comparison one; a bare
// Machine fills only Value/ISO.
type Event struct {
	Kind       EventKind
	Target     Target
	Value      calendar.Value
	ISO        string
	Compare    calendar.Value
	CompareISO string
	// Result and Err are set for EventInvalid.
	Result constraint.Result
	Err    error
}

// Observer receives selection events.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) {
	f(e)
}

// MultiObserver fans events out to every observer in order.
type MultiObserver []Observer

// Notify forwards e to each observer.
func (m MultiObserver) Notify(e Event) {
	for _, o := range m {
		if o != nil {
			o.Notify(e)
		}
	}
}

// ChannelObserver writes events to a buffered channel. Notify blocks while
// the buffer is full, so size it for the consumer; events are never
// dropped. Notify after Close is a no-op.
type ChannelObserver struct {
	mu     sync.RWMutex
	ch     chan Event
	closed bool
}

// NewChannelObserver returns an observer with the given buffer size.
func NewChannelObserver(size int) *ChannelObserver {
	return &ChannelObserver{ch: make(chan Event, size)}
}

// Notify sends e on the channel.
func (o *ChannelObserver) Notify(e Event) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return
	}
	o.ch <- e
}

// Events returns the receive side of the channel.
func (o *ChannelObserver) Events() <-chan Event {
	return o.ch
}

// Close closes the channel. It must not race with a blocked Notify.
func (o *ChannelObserver) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.closed {
		o.closed = true
		close(o.ch)
	}
}
