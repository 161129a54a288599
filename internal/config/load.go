package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/locale"
	"github.com/xolan/datepick/internal/logging"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/relative"
	"github.com/xolan/datepick/internal/selection"
)

// Load reads and validates the config file at path. Keys missing from the
// file keep their DefaultConfig values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("failed to parse config file: unknown keys %s", strings.Join(keys, ", "))
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns DefaultConfig when the file does not
// exist. Any other error is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Normalize trims and lower-cases enumerated values in place.
func (c *Config) Normalize() {
	lower := func(s *string) { *s = strings.ToLower(strings.TrimSpace(*s)) }
	lower(&c.WeekStartDay)
	lower(&c.Mode)
	lower(&c.Style)
	lower(&c.Logging.Level)
	lower(&c.Logging.Mode)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Theme = strings.TrimSpace(c.Theme)
	c.Locale = strings.ReplaceAll(strings.TrimSpace(c.Locale), "_", "-")
	for i := range c.Constraints.DisabledWeekdays {
		lower(&c.Constraints.DisabledWeekdays[i])
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var err error
	if _, e := locale.Lookup(c.Locale); e != nil {
		err = multierr.Append(err, fmt.Errorf("invalid locale %q: supported locales are %s", c.Locale, strings.Join(locale.Supported(), ", ")))
	}
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		err = multierr.Append(err, fmt.Errorf("invalid week_start_day %q: must be 'monday' or 'sunday'", c.WeekStartDay))
	}
	if _, e := c.Location(); e != nil {
		err = multierr.Append(err, fmt.Errorf("invalid timezone %q: %w", c.Timezone, e))
	}
	if _, e := selection.ParseMode(c.Mode); e != nil {
		err = multierr.Append(err, fmt.Errorf("invalid mode: %w", e))
	}
	if _, e := locale.ParseStyle(c.Style); e != nil {
		err = multierr.Append(err, fmt.Errorf("invalid style: %w", e))
	}
	if _, e := c.ConstraintConfig(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := c.Constraints.Weekdays(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := c.BuildPresets(); e != nil {
		err = multierr.Append(err, e)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		err = multierr.Append(err, fmt.Errorf("invalid logging level %q: must be 'none', 'normal' or 'debug'", c.Logging.Level))
	}
	if !logging.ValidMode(c.Logging.Mode) {
		err = multierr.Append(err, fmt.Errorf("invalid logging mode %q: must be 'append' or 'overwrite'", c.Logging.Mode))
	}
	if c.Journal.Keep < 0 {
		err = multierr.Append(err, fmt.Errorf("invalid journal keep %d: must be zero or more", c.Journal.Keep))
	}
	return err
}

// WeekStart returns the configured first day of the week.
func (c Config) WeekStart() time.Weekday {
	if c.WeekStartDay == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// Location resolves Timezone. "Local" and "" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// SelectionMode returns the parsed Mode, defaulting to range.
func (c Config) SelectionMode() selection.Mode {
	m, err := selection.ParseMode(c.Mode)
	if err != nil {
		return selection.ModeRange
	}
	return m
}

// DisplayStyle returns the parsed Style, defaulting to medium.
func (c Config) DisplayStyle() locale.Style {
	s, err := locale.ParseStyle(c.Style)
	if err != nil {
		return locale.StyleMedium
	}
	return s
}

// ConstraintConfig converts the [constraints] section and checks it with
// constraint.New. Weekday and calendar sources are resolved separately.
func (c Config) ConstraintConfig() (constraint.Config, error) {
	var (
		cc  constraint.Config
		err error
	)
	cs := c.Constraints
	if cs.MinDate != "" {
		d, e := parseISODate(cs.MinDate)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("invalid min_date: %w", e))
		}
		cc.MinDate = d
	}
	if cs.MaxDate != "" {
		d, e := parseISODate(cs.MaxDate)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("invalid max_date: %w", e))
		}
		cc.MaxDate = d
	}
	for _, s := range cs.Disabled {
		d, e := parseISODate(s)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("invalid disabled date: %w", e))
			continue
		}
		cc.DisabledDates = append(cc.DisabledDates, d)
	}
	cc.MinDurationDays = cs.MinDays
	cc.MaxDurationDays = cs.MaxDays
	cc.AllowOvernight = cs.AllowOvernight
	if err != nil {
		return cc, err
	}
	if _, e := constraint.New(cc); e != nil {
		return cc, e
	}
	return cc, nil
}

// Weekdays parses DisabledWeekdays. Three-letter abbreviations are accepted.
func (cs ConstraintsConfig) Weekdays() ([]time.Weekday, error) {
	var (
		out []time.Weekday
		err error
	)
	for _, s := range cs.DisabledWeekdays {
		wd, ok := relative.ParseWeekday(s)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("invalid disabled weekday %q", s))
			continue
		}
		out = append(out, wd)
	}
	return out, err
}

func parseISODate(s string) (calendar.Date, error) {
	return calendar.ParseISO(strings.TrimSpace(s))
}

// BuildPresets returns the builtin presets (when enabled) followed by the
// custom ones. Labels must be unique, case-insensitively.
func (c Config) BuildPresets() ([]preset.Preset, error) {
	var presets []preset.Preset
	if c.Presets.Builtin {
		presets = preset.Defaults(c.WeekStart())
	}
	var err error
	for _, cp := range c.Presets.Custom {
		p, e := preset.ParseExpr(cp.Label, cp.Expr, c.WeekStart())
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("invalid preset: %w", e))
			continue
		}
		if _, dup := preset.Find(presets, p.Label); dup {
			err = multierr.Append(err, fmt.Errorf("invalid preset: duplicate label %q", p.Label))
			continue
		}
		presets = append(presets, p)
	}
	return presets, err
}

// LoggingOptions converts the [logging] section.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:       c.Logging.Level,
		Destination: c.Logging.Destination,
		Mode:        c.Logging.Mode,
	}
}
