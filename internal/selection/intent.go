package selection

import (
	"fmt"

	"github.com/xolan/datepick/internal/calendar"
)

// IntentKind enumerates the primitive intents callers derive from raw input.
type IntentKind int

const (
	IntentSelectDate IntentKind = iota
	IntentDragStart
	IntentDragMove
	IntentDragEnd
	IntentDragCancel
	IntentTypeText
	IntentBlur
	IntentApplyPreset
	IntentSetTarget
	IntentClear
)

var intentNames = []string{
	"selectDate",
	"dragStart",
	"dragMove",
	"dragEnd",
	"dragCancel",
	"typeText",
	"blur",
	"applyPreset",
	"setTarget",
	"clear",
}

func (k IntentKind) String() string {
	if k < 0 || int(k) >= len(intentNames) {
		return fmt.Sprintf("IntentKind(%d)", int(k))
	}
	return intentNames[k]
}

// ParseIntentKind maps a name such as "selectDate" to its kind.
func ParseIntentKind(s string) (IntentKind, error) {
	for i, name := range intentNames {
		if name == s {
			return IntentKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k IntentKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(intentNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIntent, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *IntentKind) UnmarshalText(b []byte) error {
	parsed, err := ParseIntentKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Intent is one normalized input event. Only the field its kind needs is
// read: Date for select/drag intents, Text for typeText, Preset for
// applyPreset and Target for setTarget.
type Intent struct {
	Kind   IntentKind    `json:"intent" yaml:"intent"`
	Date   calendar.Date `json:"date,omitzero" yaml:"date,omitempty"`
	Text   string        `json:"text,omitempty" yaml:"text,omitempty"`
	Preset string        `json:"preset,omitempty" yaml:"preset,omitempty"`
	Target Target        `json:"target,omitzero" yaml:"target,omitempty"`
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentSelectDate, IntentDragStart, IntentDragMove, IntentDragEnd:
		return fmt.Sprintf("%s(%s)", i.Kind, i.Date)
	case IntentTypeText:
		return fmt.Sprintf("%s(%q)", i.Kind, i.Text)
	case IntentApplyPreset:
		return fmt.Sprintf("%s(%q)", i.Kind, i.Preset)
	case IntentSetTarget:
		return fmt.Sprintf("%s(%s)", i.Kind, i.Target)
	}
	return i.Kind.String()
}

// Dispatch applies an intent to the picker. It never panics; unknown kinds
// return ErrUnknownIntent.
func (p *Picker) Dispatch(i Intent) Outcome {
	switch i.Kind {
	case IntentSelectDate:
		return p.SelectDate(i.Date)
	case IntentDragStart:
		return p.DragStart(i.Date)
	case IntentDragMove:
		p.DragMove(i.Date)
		return Outcome{State: p.Active().State()}
	case IntentDragEnd:
		return p.DragEnd(i.Date)
	case IntentDragCancel:
		return p.DragCancel()
	case IntentTypeText:
		return p.TypeText(i.Text)
	case IntentBlur:
		return p.Blur()
	case IntentApplyPreset:
		return p.ApplyPresetByLabel(i.Preset)
	case IntentSetTarget:
		err := p.SetTarget(i.Target)
		return Outcome{State: p.Active().State(), Err: err}
	case IntentClear:
		return p.Clear()
	}
	return Outcome{State: p.Active().State(), Err: fmt.Errorf("%w: %d", ErrUnknownIntent, int(i.Kind))}
}
