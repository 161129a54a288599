package locale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/datepick/internal/calendar"
)

// Style selects a display layout.
type Style int

const (
	StyleISO Style = iota
	StyleShort
	StyleMedium
	StyleLong
)

var styleNames = []string{"iso", "short", "medium", "long"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// ParseStyle maps "iso", "short", "medium" or "long" to a Style.
func ParseStyle(s string) (Style, error) {
	for i, name := range styleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Style(i), nil
		}
	}
	return StyleISO, fmt.Errorf("invalid style %q (use iso, short, medium or long)", s)
}

// RangeSeparator joins the endpoints of a formatted non-ISO range.
const RangeSeparator = " – "

func (l *Locale) layout(style Style) string {
	switch style {
	case StyleShort:
		return l.def.short
	case StyleMedium:
		return l.def.medium
	case StyleLong:
		return l.def.long
	}
	return ""
}

// FormatDate renders d in the given style. The zero date renders as "".
func (l *Locale) FormatDate(d calendar.Date, style Style) string {
	if d.IsZero() {
		return ""
	}
	layout := l.layout(style)
	if layout == "" {
		return d.String()
	}
	r := strings.NewReplacer(
		"{dd}", fmt.Sprintf("%02d", d.Day),
		"{d}", strconv.Itoa(d.Day),
		"{mm}", fmt.Sprintf("%02d", int(d.Month)),
		"{yyyy}", fmt.Sprintf("%04d", d.Year),
		"{month}", l.MonthName(d.Month),
		"{mon}", l.ShortMonthName(d.Month),
		"{weekday}", l.WeekdayName(d.Weekday()),
	)
	return r.Replace(layout)
}

// FormatRange renders r. The ISO style yields the interval form.
func (l *Locale) FormatRange(r calendar.Range, style Style) string {
	if r.IsZero() {
		return ""
	}
	if style == StyleISO {
		return r.String()
	}
	return l.FormatDate(r.Start, style) + RangeSeparator + l.FormatDate(r.End, style)
}

// Format renders a date or range value.
func (l *Locale) Format(v calendar.Value, style Style) string {
	if v.IsRange() {
		return l.FormatRange(v.Range(), style)
	}
	return l.FormatDate(v.Date(), style)
}

// FormatTime renders t. The short style omits seconds; 12-hour locales use
// an AM/PM suffix.
func (l *Locale) FormatTime(t calendar.TimeOfDay, style Style) string {
	if style == StyleISO {
		return t.String()
	}
	hour := t.Hour
	suffix := ""
	if l.def.clock12 {
		suffix = " AM"
		if hour >= 12 {
			suffix = " PM"
		}
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}
	hourFmt := "%02d"
	if l.def.clock12 {
		hourFmt = "%d"
	}
	out := fmt.Sprintf(hourFmt+":%02d", hour, t.Minute)
	if style != StyleShort {
		out += fmt.Sprintf(":%02d", t.Second)
	}
	return out + suffix
}

// FormatTimeRange renders a time range, start and end joined by the range
// separator.
func (l *Locale) FormatTimeRange(tr calendar.TimeRange, style Style) string {
	if style == StyleISO {
		return tr.String()
	}
	return l.FormatTime(tr.Start, style) + RangeSeparator + l.FormatTime(tr.End, style)
}
