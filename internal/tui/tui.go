// Package tui provides the Terminal User Interface for datepick.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/service"
	"github.com/xolan/datepick/internal/tui/ui"
	"github.com/xolan/datepick/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabCalendar Tab = iota
	TabPresets
	TabJournal
	TabConfig
)

var tabNames = []string{"Calendar", "Presets", "Journal", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services
	session  *views.Session

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	calendarView views.CalendarModel
	presetsView  views.PresetsModel
	journalView  views.JournalModel
	configView   views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates the root model and the picker it drives.
func New(ctx context.Context, services *service.Services) (Model, error) {
	session, err := views.NewSession(ctx, services, ui.NewInbox())
	if err != nil {
		return Model{}, err
	}

	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		session:       session,
		activeTab:     TabCalendar,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		calendarView:  views.NewCalendarModel(session, styles, keys),
		presetsView:   views.NewPresetsModel(session, styles, keys),
		journalView:   views.NewJournalModel(session, styles, keys),
		configView:    views.NewConfigModel(session, themeProvider, styles, keys),
	}, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.session.Inbox.Wait(),
		m.calendarView.Init(),
		m.presetsView.Init(),
		m.journalView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A focused text field or selector receives every key.
		if m.isInputMode() {
			return m.updateActive(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, nil

		case key.Matches(msg, m.keys.Tab1):
			m.activeTab = TabCalendar
			return m, nil

		case key.Matches(msg, m.keys.Tab2):
			m.activeTab = TabPresets
			return m, nil

		case key.Matches(msg, m.keys.Tab3):
			m.activeTab = TabJournal
			return m, nil

		case key.Matches(msg, m.keys.Tab4):
			m.activeTab = TabConfig
			return m, nil
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.calendarView.SetSize(m.width, contentHeight)
		m.presetsView.SetSize(m.width, contentHeight)
		m.journalView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.InboxMsg:
		var cmd tea.Cmd
		m, cmd = m.broadcast(msg.Msg)
		return m, tea.Batch(cmd, m.session.Inbox.Wait())

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		var cmd tea.Cmd
		m, cmd = m.broadcast(ui.ThemeChangedMsg{ThemeName: newTheme, Styles: m.styles})
		return m, tea.Batch(cmd, m.saveThemeConfig(newTheme))
	}

	// Load results and change notifications go to every view.
	return m.broadcast(msg)
}

// updateActive passes a key to the active view.
func (m Model) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
	case TabPresets:
		m.presetsView, cmd = m.presetsView.Update(msg)
	case TabJournal:
		m.journalView, cmd = m.journalView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 4)
	m.calendarView, cmds[0] = m.calendarView.Update(msg)
	m.presetsView, cmds[1] = m.presetsView.Update(msg)
	m.journalView, cmds[2] = m.journalView.Update(msg)
	m.configView, cmds[3] = m.configView.Update(msg)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabCalendar:
		b.WriteString(m.calendarView.View())
	case TabPresets:
		b.WriteString(m.presetsView.View())
	case TabJournal:
		b.WriteString(m.journalView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.isInputMode() && m.activeTab == TabConfig:
		parts = append(parts, m.renderKeyHelp("↑/↓", "navigate"))
		parts = append(parts, m.renderKeyHelp("Enter", "select"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	case m.isInputMode():
		parts = append(parts, m.renderKeyHelp("Enter", "done"))
		parts = append(parts, m.renderKeyHelp("Esc", "close"))
	case m.activeTab == TabCalendar && m.calendarView.IsDragging():
		parts = append(parts, m.renderKeyHelp("←↑↓→", "extend"))
		parts = append(parts, m.renderKeyHelp("Enter/v", "finish"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	default:
		switch m.activeTab {
		case TabCalendar:
			parts = append(parts, m.renderKeyHelp("Enter", "select"))
			parts = append(parts, m.renderKeyHelp("v", "drag"))
			parts = append(parts, m.renderKeyHelp("/", "type"))
			parts = append(parts, m.renderKeyHelp("[ ]", "month"))
			if m.session.Picker.Compare() != nil {
				parts = append(parts, m.renderKeyHelp("c", "compare"))
			}
		case TabPresets:
			parts = append(parts, m.renderKeyHelp("Enter", "apply"))
			parts = append(parts, m.renderKeyHelp("/", "filter"))
		case TabJournal:
			parts = append(parts, m.renderKeyHelp("Enter", "select again"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	// Fill to width
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isInputMode reports whether the active view has a focused text field or
// selector that must receive every key.
func (m Model) isInputMode() bool {
	switch m.activeTab {
	case TabCalendar:
		return m.calendarView.IsInputMode()
	case TabPresets:
		return m.presetsView.IsInputMode()
	case TabConfig:
		return m.configView.IsInputMode()
	}
	return false
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	svc, log := m.services.Config, m.services.Log
	return func() tea.Msg {
		cfg := svc.Get()
		cfg.Theme = themeName
		if err := svc.Update(cfg); err != nil {
			log.Warn("Unable to save theme", zap.String("theme", themeName), zap.Error(err))
		}
		return nil
	}
}

// renderHelpOverlay renders the key reference for the active view.
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n")

	help.WriteString(m.styles.Label.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabCalendar:
		help.WriteString(m.styles.Label.Render("Calendar:"))
		help.WriteString("\n")
		help.WriteString("  ←↑↓→/hjkl  Move the cursor\n")
		help.WriteString("  [ ]        Previous/next month\n")
		help.WriteString("  t          Jump to today\n")
		help.WriteString("  Enter      Select the day\n")
		help.WriteString("  v          Start or finish a drag\n")
		help.WriteString("  Esc        Cancel the drag\n")
		help.WriteString("  /          Type a date or range\n")
		help.WriteString("  c          Switch primary/compare\n")
		help.WriteString("  x          Clear the selection\n")
		help.WriteString("  r          Reload disabled dates\n")
	case TabPresets:
		help.WriteString(m.styles.Label.Render("Presets:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate\n")
		help.WriteString("  Enter      Apply the preset\n")
		help.WriteString("  /          Filter by label\n")
		help.WriteString("  Esc        Clear the filter\n")
		help.WriteString("  r          Refresh\n")
	case TabJournal:
		help.WriteString(m.styles.Label.Render("Journal:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate\n")
		help.WriteString("  Enter      Select the value again\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.Label.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.ListMuted.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// close stops background work owned by the views.
func (m Model) close() {
	m.calendarView.Close()
	m.presetsView.Close()
}

// Run starts the TUI application
func Run(services *service.Services) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model, err := New(ctx, services)
	if err != nil {
		return err
	}
	defer model.close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
