package constraint

import (
	"errors"
	"fmt"

	"github.com/xolan/datepick/internal/calendar"
)

// Reason identifies why a candidate failed validation.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBeforeMin
	ReasonAfterMax
	ReasonDisabled
	ReasonTooShort
	ReasonTooLong
	ReasonEndBeforeStart
)

var reasonCodes = map[Reason]string{
	ReasonNone:           "",
	ReasonBeforeMin:      "before-min",
	ReasonAfterMax:       "after-max",
	ReasonDisabled:       "disabled",
	ReasonTooShort:       "too-short",
	ReasonTooLong:        "too-long",
	ReasonEndBeforeStart: "end-before-start",
}

// Code returns the stable reason code used by presentation layers.
func (r Reason) Code() string {
	return reasonCodes[r]
}

func (r Reason) String() string {
	if r == ReasonNone {
		return "valid"
	}
	return r.Code()
}

// ParseReason maps a reason code back to its Reason.
func ParseReason(code string) (Reason, bool) {
	for r, c := range reasonCodes {
		if c == code && r != ReasonNone {
			return r, true
		}
	}
	return ReasonNone, false
}

// Error kinds, usable with errors.Is against a *ValidationError.
var (
	ErrOutOfRange       = errors.New("date out of range")
	ErrDisabled         = errors.New("date disabled")
	ErrDurationTooShort = errors.New("duration too short")
	ErrDurationTooLong  = errors.New("duration too long")
	ErrInvertedTimes    = errors.New("end time before start time")
)

// Kind returns the error kind of r, or nil for ReasonNone.
func (r Reason) Kind() error {
	switch r {
	case ReasonBeforeMin, ReasonAfterMax:
		return ErrOutOfRange
	case ReasonDisabled:
		return ErrDisabled
	case ReasonTooShort:
		return ErrDurationTooShort
	case ReasonTooLong:
		return ErrDurationTooLong
	case ReasonEndBeforeStart:
		return ErrInvertedTimes
	}
	return nil
}

// Result is the outcome of a validation. The zero Result is valid.
type Result struct {
	Reason Reason
	// Boundary is the offending bound: the min/max date for out-of-range
	// failures and the blocked date for disabled ones.
	Boundary calendar.Date
	// Span and Limit are set for duration failures: the candidate span and
	// the violated min/max duration, both in days.
	Span  int
	Limit int
	// Candidate is the canonical form of the rejected value.
	Candidate string
}

// Valid reports whether the candidate passed.
func (r Result) Valid() bool {
	return r.Reason == ReasonNone
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Result: r}
}

// ValidationError carries a failed Result through error returns.
type ValidationError struct {
	Result Result
}

func (e *ValidationError) Error() string {
	r := e.Result
	switch r.Reason {
	case ReasonBeforeMin:
		return fmt.Sprintf("%s: %s is before the minimum date %s", r.Reason.Code(), r.Candidate, r.Boundary)
	case ReasonAfterMax:
		return fmt.Sprintf("%s: %s is after the maximum date %s", r.Reason.Code(), r.Candidate, r.Boundary)
	case ReasonDisabled:
		return fmt.Sprintf("%s: %s is not available", r.Reason.Code(), r.Boundary)
	case ReasonTooShort:
		return fmt.Sprintf("%s: %s spans %d days, minimum is %d", r.Reason.Code(), r.Candidate, r.Span, r.Limit)
	case ReasonTooLong:
		return fmt.Sprintf("%s: %s spans %d days, maximum is %d", r.Reason.Code(), r.Candidate, r.Span, r.Limit)
	case ReasonEndBeforeStart:
		return fmt.Sprintf("%s: %s ends before it starts", r.Reason.Code(), r.Candidate)
	}
	return "invalid: " + r.Candidate
}

// Unwrap exposes the error kind for errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Result.Reason.Kind()
}

// Validate checks a single date against the date bounds and the disabled set.
func Validate(c *Constraints, d calendar.Date) Result {
	if c == nil {
		return Result{}
	}
	res := Result{Candidate: d.String()}
	switch {
	case !c.minDate.IsZero() && d.Before(c.minDate):
		res.Reason, res.Boundary = ReasonBeforeMin, c.minDate
	case !c.maxDate.IsZero() && d.After(c.maxDate):
		res.Reason, res.Boundary = ReasonAfterMax, c.maxDate
	case c.IsDisabled(d):
		res.Reason, res.Boundary = ReasonDisabled, d
	default:
		return Result{}
	}
	return res
}

// ValidateRange checks both endpoints of r, start first, and then its span
// against the duration bounds.
func ValidateRange(c *Constraints, r calendar.Range) Result {
	if c == nil {
		return Result{}
	}
	for _, d := range []calendar.Date{r.Start, r.End} {
		if res := Validate(c, d); !res.Valid() {
			res.Candidate = r.String()
			return res
		}
	}
	span := r.Span()
	switch {
	case span < c.minDurationDays:
		return Result{Reason: ReasonTooShort, Span: span, Limit: c.minDurationDays, Candidate: r.String()}
	case c.maxDurationDays > 0 && span > c.maxDurationDays:
		return Result{Reason: ReasonTooLong, Span: span, Limit: c.maxDurationDays, Candidate: r.String()}
	}
	return Result{}
}

// ValidateValue dispatches to Validate or ValidateRange.
func ValidateValue(c *Constraints, v calendar.Value) Result {
	if v.IsRange() {
		return ValidateRange(c, v.Range())
	}
	return Validate(c, v.Date())
}

// ValidateTimeRange checks a time-of-day range. An end before the start is
// read as crossing midnight when overnight ranges are allowed and rejected
// otherwise.
func ValidateTimeRange(c *Constraints, tr calendar.TimeRange) Result {
	if !tr.Overnight() {
		return Result{}
	}
	if c != nil && c.allowOvernight {
		return Result{}
	}
	return Result{Reason: ReasonEndBeforeStart, Candidate: tr.String()}
}
