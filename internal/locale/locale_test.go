package locale

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
)

var feb10 = calendar.MustNew(2026, time.February, 10)

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "en-US"},
		{"en-US", "en-US"},
		{"en", "en-US"},
		{"en-GB", "en-GB"},
		{"en_GB", "en-GB"},
		{"de", "de-DE"},
		{"de-AT", "de-DE"},
		{"fr-CA", "fr-FR"},
		{"es", "es-ES"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc, err := Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.Tag())
		})
	}

	_, err := Lookup("not a tag!")
	assert.ErrorIs(t, err, ErrUnsupportedLocale)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		tag   string
		style Style
		want  string
	}{
		{"en-US", StyleISO, "2026-02-10"},
		{"en-US", StyleShort, "02/10/2026"},
		{"en-US", StyleMedium, "Feb 10, 2026"},
		{"en-US", StyleLong, "Tuesday, February 10, 2026"},
		{"en-GB", StyleShort, "10/02/2026"},
		{"en-GB", StyleLong, "Tuesday 10 February 2026"},
		{"de-DE", StyleShort, "10.02.2026"},
		{"de-DE", StyleMedium, "10. Feb. 2026"},
		{"de-DE", StyleLong, "Dienstag, 10. Februar 2026"},
		{"fr-FR", StyleMedium, "10 févr. 2026"},
		{"fr-FR", StyleLong, "mardi 10 février 2026"},
		{"es-ES", StyleLong, "martes, 10 de febrero de 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.style.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MustLookup(tt.tag).FormatDate(feb10, tt.style))
		})
	}

	assert.Empty(t, MustLookup("en-US").FormatDate(calendar.Date{}, StyleLong))
}

func TestFormatRange(t *testing.T) {
	r := calendar.NewRange(calendar.MustNew(2026, time.February, 1), feb10)
	en := MustLookup("en-US")
	assert.Equal(t, "2026-02-01/2026-02-10", en.FormatRange(r, StyleISO))
	assert.Equal(t, "Feb 1, 2026 – Feb 10, 2026", en.FormatRange(r, StyleMedium))
	assert.Equal(t, "2026-02-01/2026-02-10", en.Format(calendar.RangeValue(r), StyleISO))
	assert.Empty(t, en.Format(calendar.Value{}, StyleShort))
}

func TestRoundTrip(t *testing.T) {
	dates := []calendar.Date{
		calendar.MustNew(2026, time.January, 1),
		feb10,
		calendar.MustNew(2024, time.February, 29),
		calendar.MustNew(2026, time.March, 3),
		calendar.MustNew(2026, time.May, 31),
		calendar.MustNew(2026, time.June, 15),
		calendar.MustNew(2026, time.July, 4),
		calendar.MustNew(2026, time.August, 9),
		calendar.MustNew(2026, time.September, 12),
		calendar.MustNew(2026, time.December, 31),
		calendar.MustNew(987, time.October, 5),
	}
	styles := []Style{StyleISO, StyleShort, StyleMedium, StyleLong}

	for _, tag := range Supported() {
		loc := MustLookup(tag)
		for _, style := range styles {
			t.Run(tag+"/"+style.String(), func(t *testing.T) {
				for _, d := range dates {
					single := calendar.SingleValue(d)
					text := loc.Format(single, style)
					got, err := loc.Parse(text)
					require.NoError(t, err, "parse %q", text)
					assert.True(t, got.Equal(single), "%q parsed as %v, want %v", text, got, single)

					rng := calendar.RangeValue(calendar.NewRange(d, d.AddDays(40)))
					text = loc.Format(rng, style)
					got, err = loc.Parse(text)
					require.NoError(t, err, "parse %q", text)
					assert.True(t, got.Equal(rng), "%q parsed as %v, want %v", text, got, rng)
				}
			})
		}
	}
}

func TestParseDate_Variants(t *testing.T) {
	tests := []struct {
		tag   string
		input string
		want  calendar.Date
	}{
		{"en-US", "2/10/2026", feb10},
		{"en-US", "february 10 2026", feb10},
		{"en-US", "10 Feb 2026", feb10},
		{"en-US", "Tue, Feb 10, 2026", feb10},
		{"en-GB", "10/2/2026", feb10},
		{"de-DE", "10.2.2026", feb10},
		{"de-DE", "10. februar 2026", feb10},
		{"fr-FR", "10 FÉVRIER 2026", feb10},
		{"es-ES", "10 mar 2026", calendar.MustNew(2026, time.March, 10)},
		{"es-ES", "mar, 10 mar 2026", calendar.MustNew(2026, time.March, 10)},
		{"es-ES", "10 de marzo de 2026", calendar.MustNew(2026, time.March, 10)},
		{"de-DE", "2026.02.10", feb10},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.input, func(t *testing.T) {
			got, err := MustLookup(tt.tag).ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Rejects(t *testing.T) {
	en := MustLookup("en-US")
	for _, input := range []string{"", "tomorrow", "13/01/2026", "02/30/2026", "Feb 2026", "10 Foo 2026", "1/2/26", "Feb 10 11 2026"} {
		t.Run(input, func(t *testing.T) {
			_, err := en.ParseDate(input)
			assert.True(t, errors.Is(err, ErrUnparsable), "ParseDate(%q) err = %v", input, err)
		})
	}
}

func TestParseRange_Separators(t *testing.T) {
	want := calendar.NewRange(calendar.MustNew(2026, time.February, 1), feb10)
	en := MustLookup("en-US")
	for _, input := range []string{
		"2026-02-01/2026-02-10",
		"2026-02-10/2026-02-01",
		"2026-02-01 - 2026-02-10",
		"02/01/2026 – 02/10/2026",
		"Feb 1, 2026 to Feb 10, 2026",
		"02/10/2026–02/01/2026",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := en.ParseRange(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestTimes(t *testing.T) {
	en := MustLookup("en-US")
	de := MustLookup("de-DE")
	tod := calendar.TimeOfDay{Hour: 15, Minute: 4, Second: 5}

	assert.Equal(t, "15:04:05", en.FormatTime(tod, StyleISO))
	assert.Equal(t, "3:04 PM", en.FormatTime(tod, StyleShort))
	assert.Equal(t, "3:04:05 PM", en.FormatTime(tod, StyleMedium))
	assert.Equal(t, "15:04", de.FormatTime(tod, StyleShort))
	assert.Equal(t, "12:00 AM", en.FormatTime(calendar.TimeOfDay{}, StyleShort))

	for _, loc := range []*Locale{en, de} {
		for _, style := range []Style{StyleISO, StyleMedium, StyleLong} {
			got, err := loc.ParseTime(loc.FormatTime(tod, style))
			require.NoError(t, err)
			assert.Equal(t, tod, got)
		}
	}

	got, err := en.ParseTime("12:30 am")
	require.NoError(t, err)
	assert.Equal(t, calendar.TimeOfDay{Minute: 30}, got)

	_, err = en.ParseTime("13:00 PM")
	assert.ErrorIs(t, err, ErrUnparsable)

	tr := calendar.TimeRange{Start: calendar.TimeOfDay{Hour: 22}, End: calendar.TimeOfDay{Hour: 6}}
	assert.Equal(t, "10:00 PM – 6:00 AM", en.FormatTimeRange(tr, StyleShort))
}

func TestFirstDayOfWeek(t *testing.T) {
	assert.Equal(t, time.Sunday, MustLookup("en-US").FirstDayOfWeek())
	assert.Equal(t, time.Monday, MustLookup("de-DE").FirstDayOfWeek())
}

func TestReasonMessage(t *testing.T) {
	c, err := constraint.New(constraint.Config{
		MinDate:         calendar.MustNew(2026, time.February, 5),
		MinDurationDays: 3,
	})
	require.NoError(t, err)

	res := constraint.Validate(c, calendar.MustNew(2026, time.February, 1))
	assert.Equal(t, "2026-02-01 is before the earliest allowed date, Feb 5, 2026.", MustLookup("en-US").ReasonMessage(res))
	assert.Contains(t, MustLookup("de-DE").ReasonMessage(res), "5. Feb. 2026")

	res = constraint.ValidateRange(c, calendar.NewRange(calendar.MustNew(2026, time.February, 6), calendar.MustNew(2026, time.February, 7)))
	assert.Equal(t, "Select at least 3 days (selected 1).", MustLookup("en-GB").ReasonMessage(res))

	assert.Empty(t, MustLookup("en-US").ReasonMessage(constraint.Result{}))
	assert.Equal(t, "no_such_message", MustLookup("fr").Message("no_such_message", nil))
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("Medium")
	require.NoError(t, err)
	assert.Equal(t, StyleMedium, s)

	_, err = ParseStyle("fancy")
	assert.Error(t, err)
}
