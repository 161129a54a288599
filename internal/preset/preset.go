// Package preset resolves named shortcuts such as "Last 7 Days" into
// concrete dates or ranges. Presets are evaluated at activation time
// against a reference date taken from an injected Clock.
package preset

import (
	"strings"
	"time"

	"github.com/xolan/datepick/internal/calendar"
)

// Preset is a named shortcut. Resolve must be a pure function of ref.
type Preset struct {
	Label   string
	Resolve func(ref calendar.Date) calendar.Value
}

// Clock abstracts time.Now() so "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// ClockAt returns a FixedClock at noon UTC on d.
func ClockAt(d calendar.Date) FixedClock {
	return FixedClock(d.Time(time.UTC).Add(12 * time.Hour))
}

// Resolver evaluates presets against the clock's current date.
type Resolver struct {
	Clock Clock
	// Location decides which calendar day "now" falls on. Nil means the
	// clock's own location.
	Location *time.Location
}

// NewResolver returns a Resolver; a nil clock selects RealClock.
func NewResolver(clock Clock, loc *time.Location) *Resolver {
	if clock == nil {
		clock = RealClock{}
	}
	return &Resolver{Clock: clock, Location: loc}
}

// Today returns the reference date for activation.
func (r *Resolver) Today() calendar.Date {
	now := r.Clock.Now()
	if r.Location != nil {
		now = now.In(r.Location)
	}
	return calendar.FromTime(now)
}

// Apply resolves p against today.
func (r *Resolver) Apply(p Preset) calendar.Value {
	return p.Resolve(r.Today())
}

// Defaults returns the built-in presets in display order.
func Defaults(weekStart time.Weekday) []Preset {
	return []Preset{
		{Label: "Today", Resolve: func(ref calendar.Date) calendar.Value {
			return calendar.SingleValue(ref)
		}},
		{Label: "Yesterday", Resolve: func(ref calendar.Date) calendar.Value {
			return calendar.SingleValue(ref.AddDays(-1))
		}},
		{Label: "Last 7 Days", Resolve: lastDays(7)},
		{Label: "Last 30 Days", Resolve: lastDays(30)},
		{Label: "This Week", Resolve: func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Week(ref, weekStart))
		}},
		{Label: "Last Week", Resolve: func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Week(ref.AddDays(-7), weekStart))
		}},
		{Label: "This Month", Resolve: func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Month(ref))
		}},
		{Label: "Last Month", Resolve: func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Month(calendar.StartOfMonth(ref).AddDays(-1)))
		}},
	}
}

func lastDays(n int) func(calendar.Date) calendar.Value {
	return func(ref calendar.Date) calendar.Value {
		return calendar.RangeValue(calendar.LastDays(ref, n))
	}
}

// Find returns the preset whose label matches, ignoring case and
// surrounding whitespace.
func Find(presets []Preset, label string) (Preset, bool) {
	label = strings.TrimSpace(label)
	for _, p := range presets {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return Preset{}, false
}

// Filter returns the presets whose label contains query, ignoring case.
// An empty query returns all presets.
func Filter(presets []Preset, query string) []Preset {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return presets
	}
	var out []Preset
	for _, p := range presets {
		if strings.Contains(strings.ToLower(p.Label), query) {
			out = append(out, p)
		}
	}
	return out
}
