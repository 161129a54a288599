package calendar

import (
	"fmt"
	"strings"
)

// Value is either a single date or a date range. The zero Value is empty.
type Value struct {
	date    Date
	rng     Range
	isRange bool
}

// SingleValue wraps a single date.
func SingleValue(d Date) Value {
	return Value{date: d}
}

// RangeValue wraps a range.
func RangeValue(r Range) Value {
	return Value{rng: r, isRange: true}
}

// ParseValue parses either an ISO date or an ISO interval.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		r, err := ParseInterval(s)
		if err != nil {
			return Value{}, err
		}
		return RangeValue(r), nil
	}
	d, err := ParseISO(s)
	if err != nil {
		return Value{}, err
	}
	return SingleValue(d), nil
}

// IsRange reports whether v holds a range.
func (v Value) IsRange() bool { return v.isRange }

// IsZero reports whether v holds neither a date nor a range.
func (v Value) IsZero() bool {
	return !v.isRange && v.date.IsZero()
}

// Date returns the single date. It is the zero date for range values.
func (v Value) Date() Date { return v.date }

// Range returns the range. A single date is returned as a one-day range.
func (v Value) Range() Range {
	if v.isRange {
		return v.rng
	}
	return Range{Start: v.date, End: v.date}
}

// ISO returns the canonical representation: YYYY-MM-DD for a date,
// YYYY-MM-DD/YYYY-MM-DD for a range and "" when empty.
func (v Value) ISO() string {
	if v.isRange {
		return v.rng.String()
	}
	return v.date.String()
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.ISO()
}

// Equal reports whether v and o hold the same canonical value.
func (v Value) Equal(o Value) bool {
	return v == o
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.ISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*v = Value{}
		return nil
	}
	parsed, err := ParseValue(string(b))
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	*v = parsed
	return nil
}
