package config

import (
	"github.com/xolan/datepick/internal/logging"
	"github.com/xolan/datepick/internal/osutil"
)

// ConfigFile is the name of the TOML configuration file
const ConfigFile = "config.toml"

// Config represents the application configuration
type Config struct {
	// Locale is the BCP 47 tag used to format and parse dates (e.g. "en-GB")
	Locale string `toml:"locale" yaml:"locale"`
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day" yaml:"week_start_day"`
	// Timezone defines which calendar day "today" is (IANA name or "Local")
	Timezone string `toml:"timezone" yaml:"timezone"`
	// Mode is the selection mode: range or single
	Mode string `toml:"mode" yaml:"mode"`
	// Compare enables the comparison range
	Compare bool `toml:"compare" yaml:"compare"`
	// Style is the display style: iso, short, medium or long
	Style string `toml:"style" yaml:"style"`
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme" yaml:"theme"`

	Constraints ConstraintsConfig `toml:"constraints" yaml:"constraints"`
	Presets     PresetsConfig     `toml:"presets" yaml:"presets"`
	Logging     LoggingConfig     `toml:"logging" yaml:"logging"`
	Journal     JournalConfig     `toml:"journal" yaml:"journal"`
}

// ConstraintsConfig is the [constraints] section.
type ConstraintsConfig struct {
	MinDate string `toml:"min_date" yaml:"min_date,omitempty"`
	MaxDate string `toml:"max_date" yaml:"max_date,omitempty"`
	// Disabled lists ISO dates that cannot be selected.
	Disabled []string `toml:"disabled" yaml:"disabled,omitempty"`
	// DisabledWeekdays lists weekday names that cannot be selected.
	DisabledWeekdays []string `toml:"disabled_weekdays" yaml:"disabled_weekdays,omitempty"`
	// Calendars lists iCalendar files whose events disable days.
	Calendars []string `toml:"calendars" yaml:"calendars,omitempty"`
	// MinDays and MaxDays bound a range's span (end - start) in days.
	MinDays        int  `toml:"min_days" yaml:"min_days,omitempty"`
	MaxDays        int  `toml:"max_days" yaml:"max_days,omitempty"`
	AllowOvernight bool `toml:"allow_overnight" yaml:"allow_overnight"`
}

// PresetsConfig is the [presets] section.
type PresetsConfig struct {
	// Builtin enables Today, Yesterday, Last 7 Days and the other defaults.
	Builtin bool           `toml:"builtin" yaml:"builtin"`
	Custom  []CustomPreset `toml:"custom" yaml:"custom,omitempty"`
}

// CustomPreset is one [[presets.custom]] entry.
type CustomPreset struct {
	Label string `toml:"label" yaml:"label"`
	Expr  string `toml:"expr" yaml:"expr"`
}

// LoggingConfig is the [logging] section.
type LoggingConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Destination string `toml:"destination" yaml:"destination,omitempty"`
	Mode        string `toml:"mode" yaml:"mode,omitempty"`
}

// JournalConfig is the [journal] section.
type JournalConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Path overrides the default journal location.
	Path string `toml:"path" yaml:"path,omitempty"`
	// Keep is the number of records kept by "journal prune"; 0 keeps all.
	Keep int `toml:"keep" yaml:"keep"`
}

// DefaultConfig returns a Config with sensible defaults.
// - locale: "en-US"
// - week_start_day: "monday" (ISO 8601)
// - timezone: "Local"
// - mode: "range", style: "medium"
// - builtin presets enabled, logging off, journal on
func DefaultConfig() Config {
	return Config{
		Locale:       "en-US",
		WeekStartDay: "monday",
		Timezone:     "Local",
		Mode:         "range",
		Style:        "medium",
		Theme:        "dracula",
		Presets:      PresetsConfig{Builtin: true},
		Logging:      LoggingConfig{Level: logging.LevelNone, Mode: logging.ModeAppend},
		Journal:      JournalConfig{Enabled: true, Keep: 500},
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}
