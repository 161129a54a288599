package selection

import (
	"strings"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/relative"
)

// TextParser reads a date or range in a display format. *locale.Locale
// implements it.
type TextParser interface {
	Parse(text string) (calendar.Value, error)
}

// Config configures a Machine or Picker.
type Config struct {
	Mode Mode
	// Compare enables the comparison selection of a Picker.
	Compare bool
	// Constraints is shared read-only by every machine. Nil means none.
	Constraints *constraint.Constraints
	// Parser reads typed text after the relative resolver. Nil accepts ISO
	// input only.
	Parser TextParser
}

type dragSession struct {
	origin  calendar.Date
	prior   State
	preview calendar.Range
}

type draft struct {
	text     string
	unparsed bool
}

// Machine tracks one selection. It is not safe for concurrent use; intents
// are applied one at a time and each completes before the next.
type Machine struct {
	mode        Mode
	constraints *constraint.Constraints
	parser      TextParser
	observer    Observer

	state     State
	committed calendar.Value
	drag      *dragSession
	draft     draft
}

// NewMachine returns an empty machine. obs may be nil.
func NewMachine(cfg Config, obs Observer) *Machine {
	m := &Machine{
		mode:        cfg.Mode,
		constraints: cfg.Constraints,
		parser:      cfg.Parser,
		observer:    obs,
	}
	if m.constraints == nil {
		m.constraints = constraint.None()
	}
	return m
}

// Mode returns the selection mode.
func (m *Machine) Mode() Mode { return m.mode }

// State returns the current snapshot.
func (m *Machine) State() State { return m.state }

// Committed returns the last value announced by a change event. It keeps
// the previous range while a new one is being picked.
func (m *Machine) Committed() calendar.Value { return m.committed }

// Constraints returns the constraints in effect.
func (m *Machine) Constraints() *constraint.Constraints { return m.constraints }

// SetConstraints replaces the constraints used for later intents. The
// current state is not revalidated.
func (m *Machine) SetConstraints(c *constraint.Constraints) {
	if c == nil {
		c = constraint.None()
	}
	m.constraints = c
}

// Preview returns the drag preview range while a drag is in progress.
func (m *Machine) Preview() (calendar.Range, bool) {
	if m.drag == nil {
		return calendar.Range{}, false
	}
	return m.drag.preview, true
}

// Draft returns the last typed text that has not been committed.
func (m *Machine) Draft() string { return m.draft.text }

// SelectDate applies a click or Enter on day d.
//
// Selecting the pending start date again keeps the machine in
// PhaseStartSelected without events; a one-day range is reached through
// Commit (presets, typed ranges) instead.
func (m *Machine) SelectDate(d calendar.Date) Outcome {
	m.drag = nil
	return m.selectDate(d)
}

func (m *Machine) selectDate(d calendar.Date) Outcome {
	if d.IsZero() {
		return m.outcome(false, ErrNoDate)
	}
	if m.mode == ModeSingle {
		return m.commit(calendar.SingleValue(d), nil)
	}
	if m.state.Phase == PhaseStartSelected {
		if d == m.state.Start {
			return m.outcome(false, nil)
		}
		return m.commit(calendar.RangeValue(calendar.NewRange(m.state.Start, d)), nil)
	}
	return m.start(d)
}

// start begins a new range at d without announcing a change.
func (m *Machine) start(d calendar.Date) Outcome {
	if d.IsZero() {
		return m.outcome(false, ErrNoDate)
	}
	if res := constraint.Validate(m.constraints, d); !res.Valid() {
		return m.reject(res, res.Err())
	}
	m.state = State{Phase: PhaseStartSelected, Start: d}
	return m.outcome(false, nil)
}

// DragStart begins a drag on d. In range mode it (re)starts the selection
// at d; in single mode it selects d.
func (m *Machine) DragStart(d calendar.Date) Outcome {
	prior := m.state
	m.drag = nil
	if m.mode == ModeSingle {
		return m.selectDate(d)
	}
	out := m.start(d)
	if out.Err == nil {
		m.drag = &dragSession{origin: d, prior: prior, preview: calendar.NewRange(d, d)}
	}
	return out
}

// DragMove updates the preview range. It never validates or emits events
// and returns the same preview for the same d.
func (m *Machine) DragMove(d calendar.Date) (calendar.Range, bool) {
	if m.drag == nil || d.IsZero() {
		return calendar.Range{}, false
	}
	m.drag.preview = calendar.NewRange(m.drag.origin, d)
	return m.drag.preview, true
}

// DragEnd releases the drag on d. Releasing on the origin keeps the start
// selected so a follow-up click can complete the range.
func (m *Machine) DragEnd(d calendar.Date) Outcome {
	if m.drag == nil {
		return m.outcome(false, ErrNoDrag)
	}
	origin := m.drag.origin
	m.drag = nil
	if d == origin {
		return m.outcome(false, nil)
	}
	return m.selectDate(d)
}

// DragCancel discards the preview and restores the state from before
// DragStart.
func (m *Machine) DragCancel() Outcome {
	if m.drag != nil {
		m.state = m.drag.prior
		m.drag = nil
	}
	return m.outcome(false, nil)
}

// TypeText interprets the full content of the text field. The relative
// resolver runs first, then the parser. Text that is not understood is kept
// as a draft and reported on Blur. In range mode a typed range is committed
// and a typed date restarts the selection at that date.
func (m *Machine) TypeText(text string, ref calendar.Date) Outcome {
	m.drag = nil
	text = strings.TrimSpace(text)
	m.draft = draft{text: text}
	if text == "" {
		return m.outcome(false, nil)
	}

	v, ok := m.interpret(text, ref)
	if !ok || (m.mode == ModeSingle && v.IsRange()) {
		m.draft.unparsed = true
		out := m.outcome(false, nil)
		out.Unparsed = true
		return out
	}
	if m.mode == ModeRange && !v.IsRange() {
		return m.start(v.Date())
	}
	return m.commit(v, nil)
}

// interpret tries the phrase grammar, then the display format, then the
// natural language fallback.
func (m *Machine) interpret(text string, ref calendar.Date) (calendar.Value, bool) {
	if d, ok := relative.ResolveStrict(text, ref); ok {
		return calendar.SingleValue(d), true
	}
	var (
		v   calendar.Value
		err error
	)
	if m.parser == nil {
		v, err = calendar.ParseValue(text)
	} else {
		v, err = m.parser.Parse(text)
	}
	if err == nil {
		return v, true
	}
	if d, ok := relative.Fallback(text, ref); ok {
		return calendar.SingleValue(d), true
	}
	return calendar.Value{}, false
}

// Blur reports an unparsed draft as ErrUnparsableInput.
func (m *Machine) Blur() Outcome {
	m.drag = nil
	if !m.draft.unparsed {
		return m.outcome(false, nil)
	}
	err := &InputError{Kind: ErrUnparsableInput, Input: m.draft.text}
	return m.reject(constraint.Result{}, err)
}

// Commit validates and commits a complete value. In range mode a single
// date commits a one-day range.
func (m *Machine) Commit(v calendar.Value) Outcome {
	m.drag = nil
	return m.commitWith(v, nil)
}

func (m *Machine) commitWith(v calendar.Value, wrap func(error) error) Outcome {
	if v.IsZero() {
		err := error(ErrNoDate)
		if wrap != nil {
			err = wrap(err)
		}
		return m.reject(constraint.Result{}, err)
	}
	if m.mode == ModeRange && !v.IsRange() {
		v = calendar.RangeValue(calendar.NewRange(v.Date(), v.Date()))
	}
	if m.mode == ModeSingle && v.IsRange() {
		err := error(ErrRangeInSingleMode)
		if wrap != nil {
			err = wrap(err)
		}
		return m.reject(constraint.Result{}, err)
	}
	return m.commit(v, wrap)
}

func (m *Machine) commit(v calendar.Value, wrap func(error) error) Outcome {
	if res := constraint.ValidateValue(m.constraints, v); !res.Valid() {
		err := res.Err()
		if wrap != nil {
			err = wrap(err)
		}
		return m.reject(res, err)
	}
	phase := PhaseSelected
	if v.IsRange() {
		phase = PhaseRangeComplete
	}
	m.state = State{Phase: phase, Value: v}
	m.committed = v
	m.draft = draft{}
	m.emit(Event{Kind: EventChange})
	return m.outcome(true, nil)
}

// Clear returns to PhaseEmpty. A change with an empty value is emitted if
// a value had been committed.
func (m *Machine) Clear() Outcome {
	m.drag = nil
	m.draft = draft{}
	m.state = State{}
	if m.committed.IsZero() {
		return m.outcome(false, nil)
	}
	m.committed = calendar.Value{}
	m.emit(Event{Kind: EventChange})
	return m.outcome(true, nil)
}

func (m *Machine) reject(res constraint.Result, err error) Outcome {
	m.emit(Event{Kind: EventInvalid, Result: res, Err: err})
	out := m.outcome(false, err)
	out.Result = res
	return out
}

func (m *Machine) emit(e Event) {
	if m.observer == nil {
		return
	}
	e.Value = m.committed
	e.ISO = m.committed.ISO()
	m.observer.Notify(e)
}

func (m *Machine) outcome(changed bool, err error) Outcome {
	return Outcome{State: m.state, Changed: changed, Err: err}
}
