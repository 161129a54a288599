// Package constraint validates candidate dates, ranges and time ranges
// against configured bounds. Validation is pure: it never mutates its inputs
// and always reports a precise reason instead of a bare boolean.
package constraint

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"

	"github.com/xolan/datepick/internal/calendar"
)

// Config is the typed configuration surface for Constraints.
// Zero values mean "no bound".
type Config struct {
	MinDate         calendar.Date
	MaxDate         calendar.Date
	DisabledDates   []calendar.Date
	MinDurationDays int
	MaxDurationDays int
	AllowOvernight  bool
}

// Constraints is a validated, read-only set of bounds. It is safe to share
// between goroutines and between the primary and comparison selections.
type Constraints struct {
	minDate         calendar.Date
	maxDate         calendar.Date
	disabled        map[calendar.Date]struct{}
	minDurationDays int
	maxDurationDays int
	allowOvernight  bool
}

// New validates cfg and returns the corresponding Constraints.
func New(cfg Config) (*Constraints, error) {
	var err error
	if !cfg.MinDate.IsZero() && !cfg.MaxDate.IsZero() && cfg.MaxDate.Before(cfg.MinDate) {
		err = multierr.Append(err, fmt.Errorf("max date %s is before min date %s", cfg.MaxDate, cfg.MinDate))
	}
	if cfg.MinDurationDays < 0 {
		err = multierr.Append(err, fmt.Errorf("min duration must not be negative, got %d", cfg.MinDurationDays))
	}
	if cfg.MaxDurationDays < 0 {
		err = multierr.Append(err, fmt.Errorf("max duration must not be negative, got %d", cfg.MaxDurationDays))
	}
	if cfg.MaxDurationDays > 0 && cfg.MinDurationDays > cfg.MaxDurationDays {
		err = multierr.Append(err, fmt.Errorf("min duration %d exceeds max duration %d", cfg.MinDurationDays, cfg.MaxDurationDays))
	}
	if err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}

	c := &Constraints{
		minDate:         cfg.MinDate,
		maxDate:         cfg.MaxDate,
		disabled:        make(map[calendar.Date]struct{}, len(cfg.DisabledDates)),
		minDurationDays: cfg.MinDurationDays,
		maxDurationDays: cfg.MaxDurationDays,
		allowOvernight:  cfg.AllowOvernight,
	}
	for _, d := range cfg.DisabledDates {
		c.disabled[d] = struct{}{}
	}
	return c, nil
}

// None returns constraints that accept every date and range.
func None() *Constraints {
	c, _ := New(Config{})
	return c
}

// MinDate returns the inclusive lower bound, or the zero date.
func (c *Constraints) MinDate() calendar.Date { return c.minDate }

// MaxDate returns the inclusive upper bound, or the zero date.
func (c *Constraints) MaxDate() calendar.Date { return c.maxDate }

// MinDurationDays returns the minimum span of a range in days (0 = none).
func (c *Constraints) MinDurationDays() int { return c.minDurationDays }

// MaxDurationDays returns the maximum span of a range in days (0 = unlimited).
func (c *Constraints) MaxDurationDays() int { return c.maxDurationDays }

// AllowOvernight reports whether time ranges may cross midnight.
func (c *Constraints) AllowOvernight() bool { return c.allowOvernight }

// IsDisabled reports whether d is explicitly blocked.
func (c *Constraints) IsDisabled(d calendar.Date) bool {
	_, ok := c.disabled[d]
	return ok
}

// Disabled returns the blocked dates in ascending order.
func (c *Constraints) Disabled() []calendar.Date {
	dates := slices.Collect(maps.Keys(c.disabled))
	slices.SortFunc(dates, calendar.Date.Compare)
	return dates
}

// DisabledIn returns the blocked dates inside r in ascending order.
func (c *Constraints) DisabledIn(r calendar.Range) []calendar.Date {
	var out []calendar.Date
	for _, d := range c.Disabled() {
		if r.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

// WithDisabled returns a copy of c that additionally blocks dates.
// c itself is left untouched.
func (c *Constraints) WithDisabled(dates ...calendar.Date) *Constraints {
	next := *c
	next.disabled = maps.Clone(c.disabled)
	if next.disabled == nil {
		next.disabled = make(map[calendar.Date]struct{}, len(dates))
	}
	for _, d := range dates {
		next.disabled[d] = struct{}{}
	}
	return &next
}

// Config returns the configuration c was built from, with disabled dates
// sorted.
func (c *Constraints) Config() Config {
	return Config{
		MinDate:         c.minDate,
		MaxDate:         c.maxDate,
		DisabledDates:   c.Disabled(),
		MinDurationDays: c.minDurationDays,
		MaxDurationDays: c.maxDurationDays,
		AllowOvernight:  c.allowOvernight,
	}
}
