package locale

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/xolan/datepick/internal/calendar"
)

// ErrUnparsable is returned when text matches no accepted format.
var ErrUnparsable = errors.New("unrecognized date format")

var rangeSeparators = []string{"–", "—", " - ", " to "}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenNumber
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(s string) []token {
	var tokens []token
	var b strings.Builder
	kind := tokenWord
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, token{kind: kind, text: b.String()})
			b.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			if kind != tokenWord {
				flush()
			}
			kind = tokenWord
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if kind != tokenNumber {
				flush()
			}
			kind = tokenNumber
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimRight(strings.TrimSpace(s), "."))
}

func (l *Locale) monthOf(word string) (time.Month, bool) {
	w := fold(word)
	for i := range 12 {
		if w == fold(l.months[i]) || w == fold(l.shortMonths[i]) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func (l *Locale) isWeekday(word string) bool {
	w := fold(word)
	for i := range 7 {
		if w == fold(l.weekdays[i]) || w == fold(l.shortWeekdays[i]) {
			return true
		}
	}
	return false
}

func (l *Locale) isFiller(word string) bool {
	w := fold(word)
	for _, f := range l.def.fillers {
		if w == f {
			return true
		}
	}
	return false
}

// ParseDate reads a date written as ISO, in the locale's numeric field order,
// or with a month name in any of the locale's styles. Weekday names and
// filler words are ignored.
func (l *Locale) ParseDate(text string) (calendar.Date, error) {
	text = strings.TrimSpace(text)
	if d, err := calendar.ParseISO(text); err == nil {
		return d, nil
	}

	var numbers, words []string
	for _, tok := range tokenize(text) {
		if tok.kind == tokenNumber {
			numbers = append(numbers, tok.text)
			continue
		}
		if !l.isFiller(tok.text) {
			words = append(words, tok.text)
		}
	}

	if len(numbers) == 3 && allWeekdays(l, words) {
		return l.numericDate(text, numbers)
	}
	if len(numbers) == 2 && len(words) > 0 {
		return l.namedDate(text, numbers, words)
	}
	return calendar.Date{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
}

func allWeekdays(l *Locale, words []string) bool {
	for _, w := range words {
		if !l.isWeekday(w) {
			return false
		}
	}
	return true
}

func (l *Locale) numericDate(text string, numbers []string) (calendar.Date, error) {
	var day, month, year string
	switch {
	case len(numbers[0]) == 4:
		year, month, day = numbers[0], numbers[1], numbers[2]
	case l.def.order == orderMDY:
		month, day, year = numbers[0], numbers[1], numbers[2]
	default:
		day, month, year = numbers[0], numbers[1], numbers[2]
	}
	if len(year) != 4 || len(month) > 2 || len(day) > 2 {
		return calendar.Date{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
	}
	return newDate(text, year, month, day)
}

func (l *Locale) namedDate(text string, numbers, words []string) (calendar.Date, error) {
	var monthWord string
	var candidates []string
	for _, w := range words {
		if _, ok := l.monthOf(w); ok {
			candidates = append(candidates, w)
		}
	}
	// Abbreviations such as Spanish "mar" name both a month and a weekday.
	switch len(candidates) {
	case 0:
		return calendar.Date{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
	case 1:
		monthWord = candidates[0]
	default:
		for _, c := range candidates {
			if !l.isWeekday(c) {
				monthWord = c
			}
		}
		if monthWord == "" {
			monthWord = candidates[len(candidates)-1]
		}
	}
	month, _ := l.monthOf(monthWord)

	skipped := false
	for _, w := range words {
		if w == monthWord && !skipped {
			skipped = true
			continue
		}
		if !l.isWeekday(w) {
			return calendar.Date{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
		}
	}

	day, year := numbers[0], numbers[1]
	if len(day) == 4 {
		day, year = year, day
	}
	if len(year) != 4 || len(day) > 2 {
		return calendar.Date{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
	}
	return newDate(text, year, strconv.Itoa(int(month)), day)
}

func newDate(text, year, month, day string) (calendar.Date, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	date, err := calendar.New(y, time.Month(m), d)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: %q: %w", ErrUnparsable, text, err)
	}
	return date, nil
}

// ParseRange reads an ISO interval or two dates joined by a dash, an en
// dash or "to".
func (l *Locale) ParseRange(text string) (calendar.Range, error) {
	text = strings.TrimSpace(text)
	if r, err := calendar.ParseInterval(text); err == nil {
		return r, nil
	}
	for _, sep := range rangeSeparators {
		left, right, ok := strings.Cut(text, sep)
		if !ok {
			continue
		}
		start, err := l.ParseDate(left)
		if err != nil {
			continue
		}
		end, err := l.ParseDate(right)
		if err != nil {
			continue
		}
		return calendar.NewRange(start, end), nil
	}
	return calendar.Range{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
}

// Parse reads either a range or a single date.
func (l *Locale) Parse(text string) (calendar.Value, error) {
	if r, err := l.ParseRange(text); err == nil {
		return calendar.RangeValue(r), nil
	}
	d, err := l.ParseDate(text)
	if err != nil {
		return calendar.Value{}, err
	}
	return calendar.SingleValue(d), nil
}

var clockRe = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([ap])?\.?\s*(?:m\.?)?$`)

// ParseTime reads HH:mm[:ss] with an optional AM/PM suffix.
func (l *Locale) ParseTime(text string) (calendar.TimeOfDay, error) {
	text = strings.TrimSpace(text)
	if t, err := calendar.ParseISOTime(text); err == nil {
		return t, nil
	}
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return calendar.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		if hour < 1 || hour > 12 {
			return calendar.TimeOfDay{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
		}
		hour %= 12
		if strings.EqualFold(m[4], "p") {
			hour += 12
		}
	}
	t, err := calendar.NewTimeOfDay(hour, minute, second)
	if err != nil {
		return calendar.TimeOfDay{}, fmt.Errorf("%w: %q: %w", ErrUnparsable, text, err)
	}
	return t, nil
}
