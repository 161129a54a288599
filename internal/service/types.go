// Package service provides the application layer of datepick. It wires the
// configuration, locale, constraints, calendar sources, presets and journal
// together, providing one API for both the CLI and TUI frontends.
package service

import (
	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/journal"
)

// ResolveSource tells how typed text was understood.
type ResolveSource string

const (
	// SourceRelative means the relative-phrase resolver matched.
	SourceRelative ResolveSource = "relative"
	// SourceParsed means the locale parser matched.
	SourceParsed ResolveSource = "parsed"
)

// Resolution is the result of resolving typed text.
type Resolution struct {
	Input   string         `json:"input" yaml:"input"`
	Ref     calendar.Date  `json:"ref" yaml:"ref"`
	Value   calendar.Value `json:"value" yaml:"value"`
	ISO     string         `json:"iso" yaml:"iso"`
	Display string         `json:"display" yaml:"display"`
	Source  ResolveSource  `json:"source" yaml:"source"`
}

// Verdict is the result of validating a value against the configured
// constraints.
type Verdict struct {
	Value   calendar.Value `json:"value" yaml:"value"`
	ISO     string         `json:"iso" yaml:"iso"`
	Display string         `json:"display" yaml:"display"`
	Valid   bool           `json:"valid" yaml:"valid"`
	// Reason is the stable reason code, empty when valid.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Message is Reason explained in the configured locale.
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
	Result  constraint.Result `json:"-" yaml:"-"`
}

// PresetView is a preset resolved against today.
type PresetView struct {
	Label   string         `json:"label" yaml:"label"`
	Value   calendar.Value `json:"value" yaml:"value"`
	ISO     string         `json:"iso" yaml:"iso"`
	Display string         `json:"display" yaml:"display"`
	Valid   bool           `json:"valid" yaml:"valid"`
	Reason  string         `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// JournalList contains the most recent journal records, oldest first.
type JournalList struct {
	Records  []journal.Record
	Warnings []journal.ParseWarning
	// Total is the number of records in the journal before the limit.
	Total int
}
