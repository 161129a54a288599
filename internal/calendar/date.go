// Package calendar provides the immutable value types used by the selection
// engine: calendar dates, times of day, date ranges and their canonical ISO
// representations.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ISODateLayout is the canonical layout for a single date.
const ISODateLayout = "2006-01-02"

// Date is a Gregorian calendar date without a time of day.
// The zero value is "no date" and sorts before every real date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for year, month and day, or an error if the
// combination does not name a real calendar day.
func New(year int, month time.Month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, fmt.Errorf("invalid year %d: must be between 1 and 9999", year)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("invalid day %d for %s %d", day, month, year)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// package-level tables.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

var isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseISO parses a date in the canonical YYYY-MM-DD form.
func ParseISO(s string) (Date, error) {
	m := isoDateRe.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, e.g. 2026-02-10)", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d, err := New(year, time.Month(month), day)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the ISO form of d, or the empty string for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// AddDays returns the date n days after d (before d for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

// AddMonths returns the date n months after d. The day is clamped to the last
// day of the resulting month, so Jan 31 + 1 month is Feb 28 (or 29).
func (d Date) AddMonths(n int) Date {
	total := d.Year*12 + int(d.Month) - 1 + n
	year, month := total/12, time.Month(total%12+1)
	day := min(d.Day, DaysInMonth(year, month))
	return Date{Year: year, Month: month, Day: day}
}

// DaysUntil returns the number of days from d to o; negative when o is
// before d.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time(time.UTC).Sub(d.Time(time.UTC)).Hours() / 24)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// MarshalText implements encoding.TextMarshaler using the ISO form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input yields the
// zero date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseISO(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February && IsLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}
