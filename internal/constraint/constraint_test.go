package constraint

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xolan/datepick/internal/calendar"
)

func date(y int, m time.Month, d int) calendar.Date {
	return calendar.MustNew(y, m, d)
}

func mustConstraints(t *testing.T, cfg Config) *Constraints {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%+v) unexpected error: %v", cfg, err)
	}
	return c
}

func TestNew_RejectsInconsistentConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		msgs []string
	}{
		{
			name: "max before min",
			cfg:  Config{MinDate: date(2026, 3, 1), MaxDate: date(2026, 2, 1)},
			msgs: []string{"max date 2026-02-01 is before min date 2026-03-01"},
		},
		{
			name: "negative durations",
			cfg:  Config{MinDurationDays: -1, MaxDurationDays: -2},
			msgs: []string{"min duration must not be negative", "max duration must not be negative"},
		},
		{
			name: "min exceeds max",
			cfg:  Config{MinDurationDays: 10, MaxDurationDays: 5},
			msgs: []string{"min duration 10 exceeds max duration 5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			for _, msg := range tt.msgs {
				if !strings.Contains(err.Error(), msg) {
					t.Errorf("error %q does not mention %q", err, msg)
				}
			}
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	c := mustConstraints(t, Config{
		MinDate:       date(2026, 2, 1),
		MaxDate:       date(2026, 2, 28),
		DisabledDates: []calendar.Date{date(2026, 2, 14)},
	})

	tests := []struct {
		name     string
		input    calendar.Date
		reason   Reason
		boundary calendar.Date
	}{
		{name: "exactly min", input: date(2026, 2, 1), reason: ReasonNone},
		{name: "exactly max", input: date(2026, 2, 28), reason: ReasonNone},
		{name: "one day before min", input: date(2026, 1, 31), reason: ReasonBeforeMin, boundary: date(2026, 2, 1)},
		{name: "one day after max", input: date(2026, 3, 1), reason: ReasonAfterMax, boundary: date(2026, 2, 28)},
		{name: "disabled", input: date(2026, 2, 14), reason: ReasonDisabled, boundary: date(2026, 2, 14)},
		{name: "ordinary", input: date(2026, 2, 13), reason: ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(c, tt.input)
			if res.Reason != tt.reason {
				t.Errorf("Validate(%v).Reason = %v, want %v", tt.input, res.Reason, tt.reason)
			}
			if res.Boundary != tt.boundary {
				t.Errorf("Validate(%v).Boundary = %v, want %v", tt.input, res.Boundary, tt.boundary)
			}
			if res.Valid() != (tt.reason == ReasonNone) {
				t.Errorf("Valid() = %v", res.Valid())
			}
		})
	}
}

func TestValidateRange_Durations(t *testing.T) {
	c := mustConstraints(t, Config{MinDurationDays: 3, MaxDurationDays: 14})

	tests := []struct {
		name   string
		start  calendar.Date
		end    calendar.Date
		reason Reason
		span   int
	}{
		{name: "two day span is too short", start: date(2026, 2, 1), end: date(2026, 2, 3), reason: ReasonTooShort, span: 2},
		{name: "exact minimum", start: date(2026, 2, 1), end: date(2026, 2, 4), reason: ReasonNone},
		{name: "nine days", start: date(2026, 2, 1), end: date(2026, 2, 10), reason: ReasonNone},
		{name: "exact maximum", start: date(2026, 2, 1), end: date(2026, 2, 15), reason: ReasonNone},
		{name: "one over maximum", start: date(2026, 2, 1), end: date(2026, 2, 16), reason: ReasonTooLong, span: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateRange(c, calendar.NewRange(tt.start, tt.end))
			if res.Reason != tt.reason {
				t.Fatalf("Reason = %v, want %v", res.Reason, tt.reason)
			}
			if res.Span != tt.span {
				t.Errorf("Span = %d, want %d", res.Span, tt.span)
			}
		})
	}
}

func TestValidateRange_EndpointChecksComeFirst(t *testing.T) {
	c := mustConstraints(t, Config{
		MinDate:         date(2026, 2, 5),
		DisabledDates:   []calendar.Date{date(2026, 2, 20)},
		MinDurationDays: 30,
	})

	res := ValidateRange(c, calendar.NewRange(date(2026, 2, 1), date(2026, 2, 2)))
	if res.Reason != ReasonBeforeMin {
		t.Errorf("Reason = %v, want before-min", res.Reason)
	}
	if res.Candidate != "2026-02-01/2026-02-02" {
		t.Errorf("Candidate = %q", res.Candidate)
	}

	res = ValidateRange(c, calendar.NewRange(date(2026, 2, 10), date(2026, 2, 20)))
	if res.Reason != ReasonDisabled || res.Boundary != date(2026, 2, 20) {
		t.Errorf("Result = %+v, want disabled end", res)
	}
}

func TestValidate_IsPure(t *testing.T) {
	disabled := []calendar.Date{date(2026, 2, 14)}
	c := mustConstraints(t, Config{MinDate: date(2026, 2, 1), DisabledDates: disabled})
	before := c.Config()

	r := calendar.NewRange(date(2026, 1, 1), date(2026, 2, 14))
	first := ValidateRange(c, r)
	second := ValidateRange(c, r)
	if first != second {
		t.Errorf("ValidateRange not deterministic: %+v vs %+v", first, second)
	}
	if r != calendar.NewRange(date(2026, 1, 1), date(2026, 2, 14)) {
		t.Error("candidate was mutated")
	}
	after := c.Config()
	if before.MinDate != after.MinDate || len(before.DisabledDates) != len(after.DisabledDates) {
		t.Error("constraints were mutated")
	}

	disabled[0] = date(2026, 2, 15)
	if !c.IsDisabled(date(2026, 2, 14)) {
		t.Error("constraints must not alias the caller's disabled slice")
	}
}

func TestValidateTimeRange(t *testing.T) {
	overnight := calendar.TimeRange{
		Start: calendar.TimeOfDay{Hour: 22},
		End:   calendar.TimeOfDay{Hour: 6},
	}
	daytime := calendar.TimeRange{
		Start: calendar.TimeOfDay{Hour: 9},
		End:   calendar.TimeOfDay{Hour: 17},
	}

	strict := None()
	if res := ValidateTimeRange(strict, overnight); res.Reason != ReasonEndBeforeStart {
		t.Errorf("overnight without permission = %v, want end-before-start", res.Reason)
	}
	if res := ValidateTimeRange(strict, daytime); !res.Valid() {
		t.Errorf("daytime = %v, want valid", res.Reason)
	}

	lenient := mustConstraints(t, Config{AllowOvernight: true})
	if res := ValidateTimeRange(lenient, overnight); !res.Valid() {
		t.Errorf("overnight with permission = %v, want valid", res.Reason)
	}
}

func TestResult_Err(t *testing.T) {
	c := mustConstraints(t, Config{MaxDate: date(2026, 2, 28), MaxDurationDays: 2})

	if err := Validate(c, date(2026, 2, 1)).Err(); err != nil {
		t.Errorf("valid result returned error %v", err)
	}

	err := Validate(c, date(2026, 3, 1)).Err()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("errors.Is(%v, ErrOutOfRange) = false", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Result.Boundary != date(2026, 2, 28) {
		t.Errorf("errors.As did not expose the boundary: %v", err)
	}

	err = ValidateRange(c, calendar.NewRange(date(2026, 2, 1), date(2026, 2, 10))).Err()
	if !errors.Is(err, ErrDurationTooLong) {
		t.Errorf("errors.Is(%v, ErrDurationTooLong) = false", err)
	}
	if !strings.Contains(err.Error(), "too-long") {
		t.Errorf("error message %q lacks reason code", err)
	}
}

func TestReason_Codes(t *testing.T) {
	for _, r := range []Reason{ReasonBeforeMin, ReasonAfterMax, ReasonDisabled, ReasonTooShort, ReasonTooLong, ReasonEndBeforeStart} {
		parsed, ok := ParseReason(r.Code())
		if !ok || parsed != r {
			t.Errorf("ParseReason(%q) = %v, %v", r.Code(), parsed, ok)
		}
	}
	if _, ok := ParseReason("nonsense"); ok {
		t.Error("ParseReason accepted an unknown code")
	}
}

func TestWithDisabled_Copies(t *testing.T) {
	base := None()
	extended := base.WithDisabled(date(2026, 12, 25))
	if base.IsDisabled(date(2026, 12, 25)) {
		t.Error("WithDisabled mutated the receiver")
	}
	if !extended.IsDisabled(date(2026, 12, 25)) {
		t.Error("WithDisabled did not add the date")
	}
	in := extended.DisabledIn(calendar.NewRange(date(2026, 12, 1), date(2026, 12, 31)))
	if len(in) != 1 {
		t.Errorf("DisabledIn = %v", in)
	}
}
