package ui

import (
	"slices"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the theme used when none is configured or the configured
// one is unknown.
const DefaultTheme = "dracula"

// ThemeProvider owns the bubbletint registry and derives Styles from the
// current tint.
type ThemeProvider struct {
	registry *tint.Registry
	themes   []string
}

// NewThemeProvider returns a provider set to initialTheme, falling back to
// DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	fallback := all[0]
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}

	registry := tint.NewRegistry(fallback, all...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}

	themes := registry.TintIDs()
	slices.Sort(themes)
	return &ThemeProvider{registry: registry, themes: themes}
}

// SetTheme switches to the named theme. It reports false and keeps the
// current theme when the name is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the ID of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns the sorted theme IDs.
func (tp *ThemeProvider) AvailableThemes() []string {
	return slices.Clone(tp.themes)
}

// Index returns the position of name in AvailableThemes, or -1.
func (tp *ThemeProvider) Index(name string) int {
	return slices.Index(tp.themes, name)
}

// Styles returns styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
