package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Month grid
	MonthTitle  lipgloss.Style
	WeekdayHead lipgloss.Style
	Day         lipgloss.Style
	DayOutside  lipgloss.Style
	DayToday    lipgloss.Style
	DayDisabled lipgloss.Style
	DayCursor   lipgloss.Style
	DaySelected lipgloss.Style
	DayInRange  lipgloss.Style
	DayPreview  lipgloss.Style
	DayCompare  lipgloss.Style

	// Lists (presets, journal, themes)
	ListSelected lipgloss.Style
	ListNormal   lipgloss.Style
	ListMuted    lipgloss.Style

	// Label/value pairs
	Label lipgloss.Style
	Value lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary   lipgloss.TerminalColor // tabs, titles, selection
	secondary lipgloss.TerminalColor // keys, today
	accent    lipgloss.TerminalColor // comparison selection
	muted     lipgloss.TerminalColor // inactive and disabled
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	errColor  lipgloss.TerminalColor
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
	highlight lipgloss.TerminalColor // cursor background
}

// DefaultStyles returns styles on the 256-color palette, for terminals
// where no theme is loaded.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),
		secondary: lipgloss.Color("39"),
		accent:    lipgloss.Color("212"),
		muted:     lipgloss.Color("240"),
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		errColor:  lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		highlight: lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Purple marks the primary selection, Cyan today and keys, BrightPurple the
// comparison selection and BrightBlack disabled or inactive elements.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		errColor:  r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		highlight: r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	day := lipgloss.NewStyle().Width(4).Align(lipgloss.Right)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		MonthTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		WeekdayHead: day.
			Foreground(p.muted),
		Day: day.
			Foreground(p.fg),
		DayOutside: day.
			Foreground(p.muted).
			Faint(true),
		DayToday: day.
			Foreground(p.secondary).
			Underline(true),
		DayDisabled: day.
			Foreground(p.muted).
			Strikethrough(true),
		DayCursor: day.
			Background(p.highlight).
			Bold(true),
		DaySelected: day.
			Foreground(p.primary).
			Bold(true),
		DayInRange: day.
			Foreground(p.primary),
		DayPreview: day.
			Foreground(p.warning),
		DayCompare: day.
			Foreground(p.accent),

		ListSelected: lipgloss.NewStyle().
			Background(p.highlight).
			Bold(true),
		ListNormal: lipgloss.NewStyle(),
		ListMuted: lipgloss.NewStyle().
			Foreground(p.muted),

		Label: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(16),
		Value: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(56),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
