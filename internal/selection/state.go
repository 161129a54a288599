// Package selection turns date-picking intents (clicks, drags, typed text,
// presets) into validated, normalized values. Machines are synchronous and
// never panic on bad input: every intent returns an Outcome and leaves the
// last committed value untouched when it is rejected.
package selection

import (
	"fmt"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
)

// Mode selects single-date or range selection.
type Mode int

const (
	ModeRange Mode = iota
	ModeSingle
)

func (m Mode) String() string {
	if m == ModeSingle {
		return "single"
	}
	return "range"
}

// ParseMode maps "single" or "range" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single":
		return ModeSingle, nil
	case "range", "":
		return ModeRange, nil
	}
	return ModeRange, fmt.Errorf("invalid mode %q (use single or range)", s)
}

// Phase is the position of a machine in its transition table.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseSelected
	PhaseStartSelected
	PhaseRangeComplete
)

var phaseNames = map[Phase]string{
	PhaseEmpty:         "empty",
	PhaseSelected:      "selected",
	PhaseStartSelected: "start-selected",
	PhaseRangeComplete: "range-complete",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// State is an immutable snapshot. Start is set in PhaseStartSelected; Value
// is set in PhaseSelected and PhaseRangeComplete.
type State struct {
	Phase Phase
	Start calendar.Date
	Value calendar.Value
}

func (s State) String() string {
	switch s.Phase {
	case PhaseStartSelected:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Start)
	case PhaseSelected, PhaseRangeComplete:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Value.ISO())
	}
	return s.Phase.String()
}

// Outcome reports what an intent did.
type Outcome struct {
	State State
	// Changed is true when a change event was emitted.
	Changed bool
	// Unparsed is true when typed text is not (yet) understood. The error is
	// reported by Blur, not while typing.
	Unparsed bool
	// Result holds the validation failure, if any.
	Result constraint.Result
	Err    error
}
