// Package locale formats and parses dates, ranges and times for display.
// Month and weekday names come from embedded go-i18n message files; the
// canonical ISO value is never altered by formatting.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// ErrUnsupportedLocale is returned by Lookup for tags no locale matches.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// DefaultTag is used when no locale is configured.
const DefaultTag = "en-US"

type fieldOrder int

const (
	orderDMY fieldOrder = iota
	orderMDY
)

// definition holds the per-locale layout data. Layout tokens: {d} {dd} {mm}
// {yyyy} {mon} {month} {weekday}.
type definition struct {
	tag      string
	order    fieldOrder
	short    string
	medium   string
	long     string
	clock12  bool
	firstDay time.Weekday
	fillers  []string
}

var definitions = []definition{
	{
		tag:      "en-US",
		order:    orderMDY,
		short:    "{mm}/{dd}/{yyyy}",
		medium:   "{mon} {d}, {yyyy}",
		long:     "{weekday}, {month} {d}, {yyyy}",
		clock12:  true,
		firstDay: time.Sunday,
		fillers:  []string{"of"},
	},
	{
		tag:      "en-GB",
		order:    orderDMY,
		short:    "{dd}/{mm}/{yyyy}",
		medium:   "{d} {mon} {yyyy}",
		long:     "{weekday} {d} {month} {yyyy}",
		firstDay: time.Monday,
		fillers:  []string{"of"},
	},
	{
		tag:      "de-DE",
		order:    orderDMY,
		short:    "{dd}.{mm}.{yyyy}",
		medium:   "{d}. {mon} {yyyy}",
		long:     "{weekday}, {d}. {month} {yyyy}",
		firstDay: time.Monday,
	},
	{
		tag:      "fr-FR",
		order:    orderDMY,
		short:    "{dd}/{mm}/{yyyy}",
		medium:   "{d} {mon} {yyyy}",
		long:     "{weekday} {d} {month} {yyyy}",
		firstDay: time.Monday,
	},
	{
		tag:      "es-ES",
		order:    orderDMY,
		short:    "{dd}/{mm}/{yyyy}",
		medium:   "{d} {mon} {yyyy}",
		long:     "{weekday}, {d} de {month} de {yyyy}",
		firstDay: time.Monday,
		fillers:  []string{"de", "del"},
	},
}

// Locale is an immutable set of formatting rules and translated names.
// It is safe for concurrent use.
type Locale struct {
	def           definition
	localizer     *i18n.Localizer
	months        [12]string
	shortMonths   [12]string
	weekdays      [7]string
	shortWeekdays [7]string
}

type registry struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
	locales []*Locale
}

var loadRegistry = sync.OnceValues(func() (*registry, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locale files: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	reg := &registry{bundle: bundle}
	tags := make([]language.Tag, 0, len(definitions))
	for _, def := range definitions {
		loc, err := build(bundle, def)
		if err != nil {
			return nil, err
		}
		reg.locales = append(reg.locales, loc)
		tags = append(tags, language.MustParse(def.tag))
	}
	reg.matcher = language.NewMatcher(tags)
	return reg, nil
})

func build(bundle *i18n.Bundle, def definition) (*Locale, error) {
	loc := &Locale{
		def:       def,
		localizer: i18n.NewLocalizer(bundle, def.tag, language.English.String()),
	}
	for i := range 12 {
		var err error
		if loc.months[i], err = loc.lookup("month_" + strconv.Itoa(i+1)); err != nil {
			return nil, err
		}
		if loc.shortMonths[i], err = loc.lookup("month_short_" + strconv.Itoa(i+1)); err != nil {
			return nil, err
		}
	}
	for i := range 7 {
		var err error
		if loc.weekdays[i], err = loc.lookup("weekday_" + strconv.Itoa(i)); err != nil {
			return nil, err
		}
		if loc.shortWeekdays[i], err = loc.lookup("weekday_short_" + strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	return loc, nil
}

func (l *Locale) lookup(id string) (string, error) {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return "", fmt.Errorf("locale %s: missing message %q: %w", l.def.tag, id, err)
	}
	return msg, nil
}

// Lookup returns the supported locale closest to tag (a BCP 47 tag such as
// "de", "en-GB" or "fr-CA"). An empty tag selects DefaultTag.
func Lookup(tag string) (*Locale, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(tag) == "" {
		tag = DefaultTag
	}
	want, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, tag)
	}
	_, idx, conf := reg.matcher.Match(want)
	if conf == language.No {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, tag)
	}
	return reg.locales[idx], nil
}

// MustLookup is Lookup for tags known to be supported.
func MustLookup(tag string) *Locale {
	loc, err := Lookup(tag)
	if err != nil {
		panic(err)
	}
	return loc
}

// Supported lists the tags of every available locale.
func Supported() []string {
	tags := make([]string, len(definitions))
	for i, def := range definitions {
		tags[i] = def.tag
	}
	return tags
}

// Tag returns the locale's BCP 47 tag.
func (l *Locale) Tag() string { return l.def.tag }

// FirstDayOfWeek returns the weekday calendar grids start on by default.
func (l *Locale) FirstDayOfWeek() time.Weekday { return l.def.firstDay }

// MonthName returns the full name of m.
func (l *Locale) MonthName(m time.Month) string { return l.months[m-1] }

// ShortMonthName returns the abbreviated name of m.
func (l *Locale) ShortMonthName(m time.Month) string { return l.shortMonths[m-1] }

// WeekdayName returns the full name of wd.
func (l *Locale) WeekdayName(wd time.Weekday) string { return l.weekdays[wd] }

// ShortWeekdayName returns the abbreviated name of wd.
func (l *Locale) ShortWeekdayName(wd time.Weekday) string { return l.shortWeekdays[wd] }
