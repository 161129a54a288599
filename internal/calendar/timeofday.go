package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeOfDay is a wall-clock time independent of any date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay validates and returns the time hour:minute:second.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour %d: must be between 0 and 23", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute %d: must be between 0 and 59", minute)
	}
	if second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid second %d: must be between 0 and 59", second)
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// TimeOfDayFromTime returns the wall-clock time of t.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

var isoTimeRe = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)

// ParseISOTime parses HH:mm:ss. The seconds field may be omitted.
func ParseISOTime(s string) (TimeOfDay, error) {
	m := isoTimeRe.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q (use HH:mm:ss, e.g. 08:30:00)", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}

// String returns the canonical HH:mm:ss form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Duration returns the offset of t from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Seconds()) * time.Second
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after o.
func (t TimeOfDay) Compare(o TimeOfDay) int {
	return cmpInt(t.Seconds(), o.Seconds())
}

// On returns t on date d in loc.
func (t TimeOfDay) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseISOTime(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange is a pair of times of day. Unlike Range it is not normalized:
// an End before Start denotes a range crossing midnight, which only the
// validator decides whether to accept.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseISOTimeRange parses "HH:mm:ss/HH:mm:ss".
func ParseISOTimeRange(s string) (TimeRange, error) {
	start, end, ok := cutInterval(s)
	if !ok {
		return TimeRange{}, fmt.Errorf("invalid time range %q (use HH:mm:ss/HH:mm:ss)", s)
	}
	st, err := ParseISOTime(start)
	if err != nil {
		return TimeRange{}, err
	}
	et, err := ParseISOTime(end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: st, End: et}, nil
}

// Overnight reports whether the range ends on the following day.
func (r TimeRange) Overnight() bool {
	return r.End.Compare(r.Start) < 0
}

// Duration returns the length of r, treating an overnight range as crossing
// midnight once.
func (r TimeRange) Duration() time.Duration {
	d := r.End.Duration() - r.Start.Duration()
	if d < 0 {
		d += 24 * time.Hour
	}
	return d
}

// String returns the ISO interval form.
func (r TimeRange) String() string {
	return r.Start.String() + "/" + r.End.String()
}
