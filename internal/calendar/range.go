package calendar

import (
	"fmt"
	"iter"
	"strings"
)

// Range is an inclusive span of calendar dates with Start <= End.
// Use NewRange to build one from an unordered pair.
type Range struct {
	Start Date
	End   Date
}

// NewRange returns the range covering a and b, swapping them if b is before a.
func NewRange(a, b Date) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// ParseInterval parses the ISO interval form YYYY-MM-DD/YYYY-MM-DD. The pair
// is normalized, so a reversed interval is accepted.
func ParseInterval(s string) (Range, error) {
	start, end, ok := cutInterval(s)
	if !ok {
		return Range{}, fmt.Errorf("invalid interval %q (use YYYY-MM-DD/YYYY-MM-DD)", s)
	}
	sd, err := ParseISO(start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid interval start: %w", err)
	}
	ed, err := ParseISO(end)
	if err != nil {
		return Range{}, fmt.Errorf("invalid interval end: %w", err)
	}
	return NewRange(sd, ed), nil
}

func cutInterval(s string) (string, string, bool) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(start), strings.TrimSpace(end), true
}

// IsZero reports whether r is the zero range.
func (r Range) IsZero() bool {
	return r == Range{}
}

// Span returns End - Start in days. A single-day range has a span of zero.
func (r Range) Span() int {
	return r.Start.DaysUntil(r.End)
}

// Days returns the number of calendar days covered, including both ends.
func (r Range) Days() int {
	return r.Span() + 1
}

// Contains reports whether d falls within r, inclusive.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates yields every date in r in order.
func (r Range) Dates() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// String returns the ISO interval form, or the empty string for the zero range.
func (r Range) String() string {
	if r.IsZero() {
		return ""
	}
	return r.Start.String() + "/" + r.End.String()
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Range) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = Range{}
		return nil
	}
	parsed, err := ParseInterval(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
