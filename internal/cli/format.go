// Package cli provides the CLI presentation layer for datepick.
// It renders service results as plain text, JSON or YAML.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/selection"
	"github.com/xolan/datepick/internal/service"
)

// Format is an output format selected with --output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format '%s' (valid: text, json, yaml)", s)
}

// Encode writes v as JSON or YAML. Text output is rendered by the caller,
// so FormatText is an error here.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("cannot encode as %s", f)
}

// FormatResolution renders a resolved input, e.g.
// "2026-02-11  Feb 11, 2026  (relative)".
func FormatResolution(r service.Resolution) string {
	return fmt.Sprintf("%s  %s  (%s)", r.ISO, r.Display, r.Source)
}

// FormatVerdict renders a validation result on one line.
func FormatVerdict(v service.Verdict) string {
	if v.Valid {
		return fmt.Sprintf("✓ %s is allowed", v.Display)
	}
	return fmt.Sprintf("✗ %s: %s", v.Reason, v.Message)
}

// FormatPayload renders the primary value and, when set, the comparison
// value. display formats one value for humans.
func FormatPayload(p selection.Payload, display func(calendar.Value) string) string {
	primary := "(none)"
	if !p.Value.IsZero() {
		primary = display(p.Value)
	}
	if p.Compare.IsZero() {
		return primary
	}
	return fmt.Sprintf("%s  vs  %s", primary, display(p.Compare))
}

// FormatPresets renders presets as an aligned table. Presets that the
// constraints reject are marked with their reason code.
func FormatPresets(views []service.PresetView) string {
	if len(views) == 0 {
		return "No presets match\n"
	}
	labelWidth, isoWidth := 0, 0
	for _, v := range views {
		labelWidth = max(labelWidth, len(v.Label))
		isoWidth = max(isoWidth, len(v.ISO))
	}

	var b strings.Builder
	for _, v := range views {
		mark := "✓"
		if !v.Valid {
			mark = "✗"
		}
		line := fmt.Sprintf("%s %-*s  %-*s  %s", mark, labelWidth, v.Label, isoWidth, v.ISO, v.Display)
		if !v.Valid {
			line += fmt.Sprintf("  [%s]", v.Reason)
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatRecord renders one journal record, e.g.
// "2026-02-10 09:30  primary  2026-02-01/2026-02-07  (preset:Last 7 Days)".
func FormatRecord(r journal.Record) string {
	iso := r.ISO
	if iso == "" {
		iso = "(cleared)"
	}
	if r.CompareISO != "" {
		iso += " vs " + r.CompareISO
	}
	line := fmt.Sprintf("%s  %-7s  %s", r.Time.Format("2006-01-02 15:04"), r.Target, iso)
	if r.Source != "" {
		line += fmt.Sprintf("  (%s)", r.Source)
	}
	return line
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning journal.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
