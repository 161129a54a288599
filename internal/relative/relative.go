// Package relative resolves free-text relative date phrases such as
// "tomorrow", "next friday" or "in 3 days" against an explicit reference
// date. Resolution never reads the wall clock.
package relative

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	naturaldate "github.com/tj/go-naturaldate"

	"github.com/xolan/datepick/internal/calendar"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	inNRe    = regexp.MustCompile(`^in (\d+) (day|days|week|weeks)$`)
	agoRe    = regexp.MustCompile(`^(\d+) (day|days|week|weeks) ago$`)
	signedRe = regexp.MustCompile(`^([+-])(\d+)([dw])$`)
	spacesRe = regexp.MustCompile(`\s+`)
)

// ParseWeekday matches a full weekday name or any prefix of at least three
// letters ("fri", "thur"), case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for name, wd := range weekdays {
		if strings.HasPrefix(name, s) {
			return wd, true
		}
	}
	return 0, false
}

// Resolve maps text to a date relative to ref using the phrase grammar and
// then the natural language fallback. Display-formatted dates must be tried
// with a format parser before Fallback, so callers reading typed text use
// ResolveStrict, the parser and Fallback in that order.
//
// "next <weekday>" is always strictly after ref, even when ref falls on that
// weekday; a bare "<weekday>" may resolve to ref itself.
func Resolve(text string, ref calendar.Date) (calendar.Date, bool) {
	if d, ok := ResolveStrict(text, ref); ok {
		return d, true
	}
	return Fallback(text, ref)
}

// ResolveStrict is Resolve without the open-ended natural language fallback.
func ResolveStrict(text string, ref calendar.Date) (calendar.Date, bool) {
	phrase := normalize(text)
	if phrase == "" || ref.IsZero() {
		return calendar.Date{}, false
	}
	return resolveGrammar(phrase, ref)
}

// Fallback hands text the grammar does not know to go-naturaldate. It reads
// many display formats loosely, so it runs last.
func Fallback(text string, ref calendar.Date) (calendar.Date, bool) {
	phrase := normalize(text)
	if phrase == "" || ref.IsZero() {
		return calendar.Date{}, false
	}
	return resolveFallback(phrase, ref)
}

func normalize(text string) string {
	return spacesRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

func resolveGrammar(phrase string, ref calendar.Date) (calendar.Date, bool) {
	switch phrase {
	case "today", "now":
		return ref, true
	case "tomorrow", "tmr":
		return ref.AddDays(1), true
	case "yesterday":
		return ref.AddDays(-1), true
	case "next week":
		return ref.AddDays(7), true
	case "last week":
		return ref.AddDays(-7), true
	case "next month":
		return ref.AddMonths(1), true
	case "last month":
		return ref.AddMonths(-1), true
	}

	if m := inNRe.FindStringSubmatch(phrase); m != nil {
		return offset(ref, m[1], m[2], 1)
	}
	if m := agoRe.FindStringSubmatch(phrase); m != nil {
		return offset(ref, m[1], m[2], -1)
	}
	if m := signedRe.FindStringSubmatch(phrase); m != nil {
		sign := 1
		if m[1] == "-" {
			sign = -1
		}
		return offset(ref, m[2], m[3], sign)
	}

	if rest, ok := strings.CutPrefix(phrase, "next "); ok {
		if wd, ok := ParseWeekday(rest); ok {
			return nextWeekday(ref, wd), true
		}
		return calendar.Date{}, false
	}
	if rest, ok := strings.CutPrefix(phrase, "last "); ok {
		if wd, ok := ParseWeekday(rest); ok {
			return previousWeekday(ref, wd), true
		}
		return calendar.Date{}, false
	}
	if rest, ok := strings.CutPrefix(phrase, "this "); ok {
		phrase = rest
	}
	if wd, ok := ParseWeekday(phrase); ok {
		return upcomingWeekday(ref, wd), true
	}
	return calendar.Date{}, false
}

func offset(ref calendar.Date, count, unit string, sign int) (calendar.Date, bool) {
	n, err := strconv.Atoi(count)
	if err != nil || n > 36500 {
		return calendar.Date{}, false
	}
	if strings.HasPrefix(unit, "w") {
		n *= 7
	}
	return ref.AddDays(sign * n), true
}

// nextWeekday returns the first wd strictly after ref (1 to 7 days ahead).
func nextWeekday(ref calendar.Date, wd time.Weekday) calendar.Date {
	delta := (int(wd) - int(ref.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDays(delta)
}

// previousWeekday returns the last wd strictly before ref.
func previousWeekday(ref calendar.Date, wd time.Weekday) calendar.Date {
	delta := (int(ref.Weekday()) - int(wd) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDays(-delta)
}

// upcomingWeekday returns ref if it falls on wd, otherwise the next wd.
func upcomingWeekday(ref calendar.Date, wd time.Weekday) calendar.Date {
	return ref.AddDays((int(wd) - int(ref.Weekday()) + 7) % 7)
}

// resolveFallback hands alphabetic phrases to go-naturaldate. The library
// returns the reference time unchanged for input it cannot read, so a result
// on ref is treated as no match ("today" is handled by the grammar).
func resolveFallback(phrase string, ref calendar.Date) (calendar.Date, bool) {
	if !strings.ContainsFunc(phrase, unicode.IsLetter) {
		return calendar.Date{}, false
	}
	anchor := ref.Time(time.UTC).Add(12 * time.Hour)
	t, err := naturaldate.Parse(phrase, anchor, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return calendar.Date{}, false
	}
	d := calendar.FromTime(t.In(time.UTC))
	if d == ref {
		return calendar.Date{}, false
	}
	return d, true
}
