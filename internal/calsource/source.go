// Package calsource supplies disabled dates to the picker from external
// calendars: fixed lists, weekday rules and iCalendar files.
package calsource

import (
	"context"
	"slices"
	"time"

	"github.com/xolan/datepick/internal/calendar"
)

// Source lists the disabled dates inside a range. Implementations may block
// (file or network access) and must honor ctx.
type Source interface {
	Disabled(ctx context.Context, r calendar.Range) ([]calendar.Date, error)
}

// Static is a fixed list of disabled dates.
type Static []calendar.Date

// Disabled returns the dates of s inside r, sorted.
func (s Static) Disabled(ctx context.Context, r calendar.Range) ([]calendar.Date, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []calendar.Date
	for _, d := range s {
		if r.Contains(d) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, calendar.Date.Compare)
	return slices.Compact(out), nil
}

// Weekdays disables every date falling on one of its weekdays.
type Weekdays []time.Weekday

// Disabled returns the matching dates inside r.
func (w Weekdays) Disabled(ctx context.Context, r calendar.Range) ([]calendar.Date, error) {
	if len(w) == 0 {
		return nil, ctx.Err()
	}
	var out []calendar.Date
	for d := range r.Dates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if slices.Contains(w, d.Weekday()) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Multi merges several sources. The result is sorted and free of
// duplicates; the first error stops the merge.
type Multi []Source

// Disabled queries each source in order.
func (m Multi) Disabled(ctx context.Context, r calendar.Range) ([]calendar.Date, error) {
	var out []calendar.Date
	for _, s := range m {
		if s == nil {
			continue
		}
		dates, err := s.Disabled(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, dates...)
	}
	slices.SortFunc(out, calendar.Date.Compare)
	return slices.Compact(out), nil
}
