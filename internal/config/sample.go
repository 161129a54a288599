package config

// GenerateSampleConfig returns a commented config file showing every key
// with its default value.
func GenerateSampleConfig() string {
	return `# datepick configuration file
# Every key is optional; uncomment a line to change its default.

# Locale for formatting and parsing: en-US, en-GB, de-DE, fr-FR or es-ES
# locale = "en-US"

# Week start day: "monday" or "sunday"
# week_start_day = "monday"

# Timezone that decides which calendar day is "today":
# "Local" or an IANA name such as "America/New_York", "Europe/London", "Asia/Tokyo"
# timezone = "Local"

# Selection mode: "range" or "single"
# mode = "range"

# Enable the comparison range
# compare = false

# Display style: "iso", "short", "medium" or "long"
# style = "medium"

# TUI theme (any bubbletint theme ID)
# theme = "dracula"

[constraints]
# min_date = "2026-01-01"
# max_date = "2026-12-31"
# disabled = ["2026-12-25", "2026-12-26"]
# disabled_weekdays = ["saturday", "sunday"]
# calendars = ["/path/to/holidays.ics"]
# min_days = 0
# max_days = 0
# allow_overnight = false

[presets]
# builtin = true
#
# [[presets.custom]]
# label = "Next 14 Days"
# expr = "next 14 days"
#
# [[presets.custom]]
# label = "Quarter"
# expr = "2026-01-01/2026-03-31"

[logging]
# level: "none", "normal" or "debug"
# level = "none"
# destination = "/tmp/datepick.log"
# mode: "append" or "overwrite"
# mode = "append"

[journal]
# enabled = true
# path = ""
# keep = 500
`
}
