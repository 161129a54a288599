package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/tui/ui"
)

// ConfigModel is the model for the config view
type ConfigModel struct {
	session       *Session
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int // For scrolling
}

// NewConfigModel creates a new config view model
func NewConfigModel(session *Session, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	return ConfigModel{
		session:       session,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeCursor:   max(0, themeProvider.Index(themeProvider.CurrentName())),
		themeName:     themeProvider.CurrentName(),
	}
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// configLoadedMsg is sent when config is loaded
type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// IsInputMode reports whether the theme selector is open.
func (m ConfigModel) IsInputMode() bool {
	return m.selectingTheme
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		if key.Matches(msg, m.keys.Select) || msg.String() == "t" {
			m.selectingTheme = true
			m.updateThemeOffset()
			return m, nil
		}
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadConfig()
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.themeCursor = max(0, m.themeProvider.Index(msg.ThemeName))
	}
	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}

	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}

	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		name := m.themes[m.themeCursor]
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }

	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.themeCursor = max(0, m.themeProvider.Index(m.themeName))
	}
	return m, nil
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(m.renderConfigLine("config file", m.path))
	b.WriteString(m.styles.Label.Render("status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 10))))
	b.WriteString("\n\n")

	c := m.config
	b.WriteString(m.renderConfigLine("locale", c.Locale))
	b.WriteString(m.renderConfigLine("style", c.Style))
	b.WriteString(m.renderConfigLine("week_start_day", c.WeekStartDay))
	b.WriteString(m.renderConfigLine("timezone", c.Timezone))
	b.WriteString(m.renderConfigLine("mode", c.Mode))
	b.WriteString(m.renderConfigLine("compare", fmt.Sprint(c.Compare)))
	b.WriteString(m.renderConfigLine("constraints", describeConstraints(c.Constraints)))
	b.WriteString(m.renderConfigLine("presets", fmt.Sprintf("%d", len(m.session.Services.Dates.Presets()))))
	b.WriteString(m.renderConfigLine("journal", fmt.Sprint(c.Journal.Enabled)))

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
	} else {
		b.WriteString(m.renderConfigLine("theme", m.themeName))
		b.WriteString("\n")
		b.WriteString(m.styles.ListMuted.Render("Press Enter or 't' to change theme"))
	}
	return b.String()
}

// describeConstraints summarizes the [constraints] section on one line.
func describeConstraints(cs config.ConstraintsConfig) string {
	var parts []string
	if cs.MinDate != "" {
		parts = append(parts, "from "+cs.MinDate)
	}
	if cs.MaxDate != "" {
		parts = append(parts, "until "+cs.MaxDate)
	}
	if cs.MinDays > 0 {
		parts = append(parts, fmt.Sprintf("min %d %s", cs.MinDays, pluralize("day", cs.MinDays)))
	}
	if cs.MaxDays > 0 {
		parts = append(parts, fmt.Sprintf("max %d %s", cs.MaxDays, pluralize("day", cs.MaxDays)))
	}
	if n := len(cs.Disabled); n > 0 {
		parts = append(parts, fmt.Sprintf("%d disabled %s", n, pluralize("date", n)))
	}
	if len(cs.DisabledWeekdays) > 0 {
		parts = append(parts, "no "+strings.Join(cs.DisabledWeekdays, "/"))
	}
	if n := len(cs.Calendars); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, pluralize("calendar", n)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.Label.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.Value.Render("Select a theme"))
	b.WriteString("\n\n")

	endIdx := min(m.themeOffset+maxVisibleThemes, len(m.themes))
	if m.themeOffset > 0 {
		b.WriteString(m.styles.ListMuted.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		current := ""
		if theme == m.themeName {
			current = " (current)"
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.ListSelected.Render("▸ " + theme))
			b.WriteString(m.styles.Success.Render(current))
		} else {
			b.WriteString("  ")
			b.WriteString(m.styles.ListNormal.Render(theme))
			b.WriteString(m.styles.Success.Render(current))
		}
		b.WriteString("\n")
	}

	if endIdx < len(m.themes) {
		b.WriteString(m.styles.ListMuted.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ListMuted.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadConfig creates a command to load config
func (m ConfigModel) loadConfig() tea.Cmd {
	svc := m.session.Services.Config
	return func() tea.Msg {
		return configLoadedMsg{
			config: svc.Get(),
			path:   svc.GetPath(),
			exists: svc.Exists(),
		}
	}
}

func (m ConfigModel) renderConfigLine(key, value string) string {
	return m.styles.Label.Render(key+":") + " " + m.styles.Value.Render(value) + "\n"
}
