package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/calsource"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/selection"
)

// testToday is a Tuesday.
var testToday = calendar.MustNew(2026, time.February, 10)

func testConfig(mutate func(*config.Config)) config.Config {
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	if mutate != nil {
		mutate(&cfg)
	}
	return cfg
}

func newDates(t *testing.T, mutate func(*config.Config)) *DateService {
	t.Helper()
	s, err := NewDateService(testConfig(mutate), preset.ClockAt(testToday), nil)
	require.NoError(t, err)
	return s
}

func writeICS(t *testing.T, events ...string) string {
	t.Helper()
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//service//EN"}
	for _, e := range events {
		lines = append(lines, strings.Split(e, "\n")...)
	}
	lines = append(lines, "END:VCALENDAR", "")
	path := filepath.Join(t.TempDir(), "busy.ics")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\r\n")), 0644))
	return path
}

const holidayEvent = `BEGIN:VEVENT
UID:holiday@test
DTSTAMP:20260101T000000Z
SUMMARY:Holiday
DTSTART;VALUE=DATE:20260216
DTEND;VALUE=DATE:20260217
END:VEVENT`

func TestNewDateService_InvalidConfig(t *testing.T) {
	_, err := NewDateService(testConfig(func(c *config.Config) { c.Mode = "multi" }), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = NewDateService(testConfig(func(c *config.Config) {
		c.Constraints.Calendars = []string{filepath.Join(t.TempDir(), "missing.ics")}
	}), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load calendar")
}

func TestDateService_Today(t *testing.T) {
	s := newDates(t, nil)
	assert.Equal(t, testToday, s.Today())
	assert.Len(t, s.Presets(), 8)
	assert.Equal(t, "en-US", s.Locale().Tag())
}

func TestDateService_Resolve(t *testing.T) {
	s := newDates(t, nil)

	tests := []struct {
		name   string
		input  string
		iso    string
		source ResolveSource
	}{
		{"relative phrase", "tomorrow", "2026-02-11", SourceRelative},
		{"offset", "in 3 days", "2026-02-13", SourceRelative},
		{"iso date", "2026-03-01", "2026-03-01", SourceParsed},
		{"iso interval", "2026-03-05/2026-03-01", "2026-03-01/2026-03-05", SourceParsed},
		{"locale numeric", "03/15/2026", "2026-03-15", SourceParsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.iso, res.ISO)
			assert.Equal(t, tt.source, res.Source)
			assert.Equal(t, testToday, res.Ref)
			assert.Equal(t, s.Format(res.Value), res.Display)
		})
	}
}

func TestDateService_Resolve_DisplayFormatBeatsFallback(t *testing.T) {
	tests := []struct {
		locale string
		style  string
		input  string
		iso    string
	}{
		{"en-GB", "medium", "15 Mar 2026", "2026-03-15"},
		{"en-GB", "long", "Friday 25 December 2020", "2020-12-25"},
		{"fr-FR", "medium", "15 mars 2026", "2026-03-15"},
		{"es-ES", "medium", "25 dic 2020", "2020-12-25"},
	}
	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.input, func(t *testing.T) {
			s := newDates(t, nil)
			require.NoError(t, s.SetLocale(tt.locale))
			require.NoError(t, s.SetStyle(tt.style))

			res, err := s.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.iso, res.ISO)
			assert.Equal(t, SourceParsed, res.Source)
		})
	}
}

func TestDateService_Resolve_Unparsable(t *testing.T) {
	s := newDates(t, nil)
	_, err := s.Resolve("??")
	require.Error(t, err)
	assert.True(t, errors.Is(err, selection.ErrUnparsableInput))
}

func TestDateService_ParseIsStrict(t *testing.T) {
	s := newDates(t, nil)

	v, err := s.Parse("2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, calendar.SingleValue(testToday), v)

	_, err = s.Parse("tomorrow")
	assert.ErrorIs(t, err, selection.ErrUnparsableInput)
}

func TestDateService_FormatAndOverrides(t *testing.T) {
	s := newDates(t, nil)
	v := calendar.SingleValue(calendar.MustNew(2026, time.February, 11))

	assert.Equal(t, "Feb 11, 2026", s.Format(v))

	require.NoError(t, s.SetStyle("iso"))
	assert.Equal(t, "2026-02-11", s.Format(v))

	require.NoError(t, s.SetLocale("de-DE"))
	require.NoError(t, s.SetStyle("short"))
	assert.Equal(t, "11.02.2026", s.Format(v))

	assert.Error(t, s.SetLocale("xx-XX"))
	assert.Error(t, s.SetStyle("fancy"))
}

func TestDateService_Validate(t *testing.T) {
	s := newDates(t, func(c *config.Config) {
		c.Constraints.MinDate = "2026-02-01"
		c.Constraints.MaxDays = 7
		c.Constraints.DisabledWeekdays = []string{"saturday"}
		c.Constraints.Calendars = []string{writeICS(t, holidayEvent)}
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		value  string
		reason constraint.Reason
	}{
		{"valid date", "2026-02-10", constraint.ReasonNone},
		{"before min", "2026-01-15", constraint.ReasonBeforeMin},
		{"disabled weekday", "2026-02-14", constraint.ReasonDisabled},
		{"calendar event", "2026-02-16", constraint.ReasonDisabled},
		{"too long", "2026-02-02/2026-02-12", constraint.ReasonTooLong},
		{"valid range", "2026-02-09/2026-02-13", constraint.ReasonNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := calendar.ParseValue(tt.value)
			require.NoError(t, err)
			verdict, err := s.Validate(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, tt.reason, verdict.Result.Reason)
			assert.Equal(t, tt.reason == constraint.ReasonNone, verdict.Valid)
			assert.Equal(t, tt.reason.Code(), verdict.Reason)
			if verdict.Valid {
				assert.Empty(t, verdict.Message)
			} else {
				assert.NotEmpty(t, verdict.Message)
			}
		})
	}
}

func TestDateService_Validate_LocalizedMessage(t *testing.T) {
	s := newDates(t, func(c *config.Config) { c.Constraints.MinDate = "2026-02-01" })
	verdict, err := s.Validate(context.Background(), calendar.SingleValue(calendar.MustNew(2026, time.January, 15)))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15 is before the earliest allowed date, Feb 1, 2026.", verdict.Message)
}

func TestDateService_Validate_CanceledContext(t *testing.T) {
	s := newDates(t, func(c *config.Config) { c.Constraints.DisabledWeekdays = []string{"sunday"} })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Validate(ctx, calendar.SingleValue(testToday))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDateService_Window(t *testing.T) {
	s := newDates(t, nil)
	w := s.Window(testToday)
	assert.Equal(t, testToday.AddDays(-366), w.Start)
	assert.Equal(t, testToday.AddDays(366), w.End)

	bounded := newDates(t, func(c *config.Config) {
		c.Constraints.MinDate = "2026-01-01"
		c.Constraints.MaxDate = "2026-12-31"
	})
	w = bounded.Window(testToday)
	assert.Equal(t, calendar.MustNew(2026, time.January, 1), w.Start)
	assert.Equal(t, calendar.MustNew(2026, time.December, 31), w.End)
}

func TestDateService_PresetViews(t *testing.T) {
	s := newDates(t, func(c *config.Config) {
		c.Constraints.MinDate = "2026-02-01"
		c.Presets.Custom = []config.CustomPreset{{Label: "Next Week", Expr: "next 7 days"}}
	})
	views, err := s.PresetViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 9)

	byLabel := map[string]PresetView{}
	for _, v := range views {
		byLabel[v.Label] = v
	}
	assert.Equal(t, "2026-02-10", byLabel["Today"].ISO)
	assert.True(t, byLabel["Today"].Valid)
	assert.Equal(t, "2026-01-01/2026-01-31", byLabel["Last Month"].ISO)
	assert.False(t, byLabel["Last Month"].Valid)
	assert.Equal(t, "before-min", byLabel["Last Month"].Reason)
	assert.Equal(t, "2026-02-10/2026-02-16", byLabel["Next Week"].ISO)
}

func TestDateService_NewPicker(t *testing.T) {
	s := newDates(t, func(c *config.Config) {
		c.Compare = true
		c.Constraints.DisabledWeekdays = []string{"saturday", "sunday"}
	})
	var events []selection.Event
	p, err := s.NewPicker(context.Background(), selection.ObserverFunc(func(e selection.Event) {
		events = append(events, e)
	}))
	require.NoError(t, err)
	require.NotNil(t, p.Compare())

	out := p.TypeText("2026-02-14")
	assert.ErrorIs(t, out.Err, constraint.ErrDisabled)

	p.SelectDate(calendar.MustNew(2026, time.February, 9))
	out = p.SelectDate(calendar.MustNew(2026, time.February, 13))
	require.NoError(t, out.Err)
	assert.Equal(t, "2026-02-09/2026-02-13", p.Payload().ISO)

	out = p.ApplyPresetByLabel("This Week")
	assert.ErrorIs(t, out.Err, selection.ErrInvalidPreset, "this week ends on a Sunday")
	assert.Equal(t, "2026-02-09/2026-02-13", p.Payload().ISO)

	require.NotEmpty(t, events)
	assert.Equal(t, selection.EventInvalid, events[len(events)-1].Kind)
}

func TestDateService_Export(t *testing.T) {
	s := newDates(t, nil)
	values := []calendar.Value{
		calendar.SingleValue(testToday),
		{},
		calendar.RangeValue(calendar.NewRange(calendar.MustNew(2026, time.March, 1), calendar.MustNew(2026, time.March, 3))),
	}

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf, values))
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260210")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260304")
	assert.Contains(t, out, "DTSTAMP:20260210T120000Z")

	buf.Reset()
	assert.ErrorIs(t, s.Export(&buf, nil), calsource.ErrNothingToExport)
}
