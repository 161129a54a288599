package selection

import (
	"fmt"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/preset"
)

// Target names the machine that receives intents.
type Target int

const (
	TargetPrimary Target = iota
	TargetCompare
)

func (t Target) String() string {
	if t == TargetCompare {
		return "compare"
	}
	return "primary"
}

// ParseTarget maps "primary" or "compare" to a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "primary", "":
		return TargetPrimary, nil
	case "compare", "comparison":
		return TargetCompare, nil
	}
	return TargetPrimary, fmt.Errorf("invalid target %q (use primary or compare)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(b []byte) error {
	parsed, err := ParseTarget(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Payload is the canonical value pair a picker reports.
type Payload struct {
	Value      calendar.Value `json:"value" yaml:"value"`
	ISO        string         `json:"iso" yaml:"iso"`
	Compare    calendar.Value `json:"compare,omitzero" yaml:"compare,omitempty"`
	CompareISO string         `json:"compare_iso,omitempty" yaml:"compare_iso,omitempty"`
}

// Picker hosts the primary machine and, when enabled, an independent
// comparison machine. The two share only the read-only constraints.
type Picker struct {
	primary  *Machine
	compare  *Machine
	target   Target
	presets  []preset.Preset
	resolver *preset.Resolver
	observer Observer
}

// NewPicker builds a picker. presets are the labels available to
// ApplyPreset by name; resolver supplies "today" and may be nil.
func NewPicker(cfg Config, presets []preset.Preset, resolver *preset.Resolver, obs Observer) *Picker {
	if resolver == nil {
		resolver = preset.NewResolver(nil, nil)
	}
	p := &Picker{presets: presets, resolver: resolver, observer: obs}
	p.primary = NewMachine(cfg, p.forward(TargetPrimary))
	if cfg.Compare {
		p.compare = NewMachine(cfg, p.forward(TargetCompare))
	}
	return p
}

func (p *Picker) forward(t Target) Observer {
	return ObserverFunc(func(e Event) {
		if p.observer == nil {
			return
		}
		e.Target = t
		pl := p.Payload()
		e.Value, e.ISO = pl.Value, pl.ISO
		e.Compare, e.CompareISO = pl.Compare, pl.CompareISO
		p.observer.Notify(e)
	})
}

// Primary returns the primary machine.
func (p *Picker) Primary() *Machine { return p.primary }

// Compare returns the comparison machine, or nil when disabled.
func (p *Picker) Compare() *Machine { return p.compare }

// Target returns the machine currently receiving intents.
func (p *Picker) Target() Target { return p.target }

// Presets returns the configured presets.
func (p *Picker) Presets() []preset.Preset { return p.presets }

// Today returns the reference date used for typed text and presets.
func (p *Picker) Today() calendar.Date { return p.resolver.Today() }

// SetTarget switches which machine receives intents. Neither machine's
// state changes.
func (p *Picker) SetTarget(t Target) error {
	if t == TargetCompare && p.compare == nil {
		return ErrCompareDisabled
	}
	p.target = t
	return nil
}

// Active returns the machine receiving intents.
func (p *Picker) Active() *Machine {
	if p.target == TargetCompare && p.compare != nil {
		return p.compare
	}
	return p.primary
}

// SetConstraints replaces the constraints of both machines.
func (p *Picker) SetConstraints(c *constraint.Constraints) {
	p.primary.SetConstraints(c)
	if p.compare != nil {
		p.compare.SetConstraints(c)
	}
}

// Payload returns the committed values of both machines.
func (p *Picker) Payload() Payload {
	pl := Payload{Value: p.primary.Committed(), ISO: p.primary.Committed().ISO()}
	if p.compare != nil {
		pl.Compare = p.compare.Committed()
		pl.CompareISO = p.compare.Committed().ISO()
	}
	return pl
}

// SelectDate forwards to the active machine.
func (p *Picker) SelectDate(d calendar.Date) Outcome { return p.Active().SelectDate(d) }

// DragStart forwards to the active machine.
func (p *Picker) DragStart(d calendar.Date) Outcome { return p.Active().DragStart(d) }

// DragMove forwards to the active machine.
func (p *Picker) DragMove(d calendar.Date) (calendar.Range, bool) { return p.Active().DragMove(d) }

// DragEnd forwards to the active machine.
func (p *Picker) DragEnd(d calendar.Date) Outcome { return p.Active().DragEnd(d) }

// DragCancel forwards to the active machine.
func (p *Picker) DragCancel() Outcome { return p.Active().DragCancel() }

// TypeText forwards to the active machine with today as reference.
func (p *Picker) TypeText(text string) Outcome { return p.Active().TypeText(text, p.Today()) }

// Blur forwards to the active machine.
func (p *Picker) Blur() Outcome { return p.Active().Blur() }

// Clear forwards to the active machine.
func (p *Picker) Clear() Outcome { return p.Active().Clear() }

// ApplyPreset resolves pr against today and commits it to the active
// machine. A rejected preset reports ErrInvalidPreset wrapping the
// validation error and keeps the previous value.
func (p *Picker) ApplyPreset(pr preset.Preset) Outcome {
	m := p.Active()
	m.drag = nil
	wrap := func(err error) error {
		return &InputError{Kind: ErrInvalidPreset, Label: pr.Label, Cause: err}
	}
	if pr.Resolve == nil {
		return m.reject(constraint.Result{}, wrap(ErrUnknownPreset))
	}
	return m.commitWith(p.resolver.Apply(pr), wrap)
}

// ApplyPresetByLabel looks up a configured preset and applies it.
func (p *Picker) ApplyPresetByLabel(label string) Outcome {
	pr, ok := preset.Find(p.presets, label)
	if !ok {
		return p.ApplyPreset(preset.Preset{Label: label})
	}
	return p.ApplyPreset(pr)
}
