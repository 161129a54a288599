package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/search"
	"github.com/xolan/datepick/internal/selection"
	"github.com/xolan/datepick/internal/service"
	"github.com/xolan/datepick/internal/tui/ui"
)

// presetsLoadedMsg carries presets resolved against today.
type presetsLoadedMsg struct {
	views []service.PresetView
	err   error
}

// presetFilterMsg is the debounced filter text.
type presetFilterMsg struct {
	query string
}

// PresetsModel lists the configured presets with their resolved values.
// Rejected presets stay visible with the reason they cannot be applied.
type PresetsModel struct {
	session *Session
	styles  ui.Styles
	keys    ui.KeyMap

	width  int
	height int

	all      []service.PresetView
	filtered []service.PresetView
	query    string
	cursor   int

	filtering bool
	input     textinput.Model
	debouncer *search.Debouncer

	status status
}

// NewPresetsModel creates the preset list. Filter edits are debounced and
// arrive through the session inbox.
func NewPresetsModel(session *Session, styles ui.Styles, keys ui.KeyMap) PresetsModel {
	ti := textinput.New()
	ti.Placeholder = "filter presets"
	ti.CharLimit = 40

	inbox := session.Inbox
	return PresetsModel{
		session: session,
		styles:  styles,
		keys:    keys,
		input:   ti,
		debouncer: search.New(search.DefaultDelay, func(text string) {
			inbox.Send(presetFilterMsg{query: text})
		}),
	}
}

// Init implements tea.Model
func (m PresetsModel) Init() tea.Cmd {
	return m.loadPresets()
}

// IsInputMode reports whether the filter field has focus.
func (m PresetsModel) IsInputMode() bool {
	return m.filtering
}

// Update implements tea.Model
func (m PresetsModel) Update(msg tea.Msg) (PresetsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilter(msg)
		}
		return m.handleKey(msg)

	case presetsLoadedMsg:
		if msg.err != nil {
			m.status = status{text: msg.err.Error(), err: true}
			return m, nil
		}
		m.all = msg.views
		m.applyFilter(m.query)

	case presetFilterMsg:
		m.applyFilter(msg.query)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

func (m PresetsModel) handleKey(msg tea.KeyMsg) (PresetsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		return m.applySelected()
	case key.Matches(msg, m.keys.Type):
		m.filtering = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.input.SetValue("")
			m.debouncer.Flush("")
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadPresets()
	}
	return m, nil
}

// handleFilter edits the filter. Enter applies it at once; Esc leaves the
// field keeping the text.
func (m PresetsModel) handleFilter(msg tea.KeyMsg) (PresetsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.input.Blur()
		m.debouncer.Flush(m.input.Value())
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.debouncer.Trigger(m.input.Value())
	}
	return m, cmd
}

// applyFilter narrows the list with preset.Filter, keeping the cursor on
// the same label when it is still shown.
func (m *PresetsModel) applyFilter(query string) {
	var current string
	if m.cursor < len(m.filtered) {
		current = m.filtered[m.cursor].Label
	}
	m.query = query

	byLabel := make(map[string]service.PresetView, len(m.all))
	presets := make([]preset.Preset, 0, len(m.all))
	for _, v := range m.all {
		byLabel[v.Label] = v
		presets = append(presets, preset.Preset{Label: v.Label})
	}
	m.filtered = nil
	m.cursor = 0
	for i, p := range preset.Filter(presets, query) {
		m.filtered = append(m.filtered, byLabel[p.Label])
		if p.Label == current {
			m.cursor = i
		}
	}
}

func (m PresetsModel) applySelected() (PresetsModel, tea.Cmd) {
	if m.cursor >= len(m.filtered) {
		return m, nil
	}
	label := m.filtered[m.cursor].Label
	out := m.session.Dispatch("preset:"+label, selection.Intent{Kind: selection.IntentApplyPreset, Preset: label})
	if out.Err != nil {
		m.status = status{text: m.session.Describe(out), err: true}
		return m, nil
	}
	m.status = status{text: fmt.Sprintf("Applied %s: %s", label, m.session.Display(m.session.Picker.Active().Committed()))}
	return m, changed(out)
}

// Selected returns the label under the cursor.
func (m PresetsModel) Selected() string {
	if m.cursor >= len(m.filtered) {
		return ""
	}
	return m.filtered[m.cursor].Label
}

// Close stops the debouncer.
func (m PresetsModel) Close() {
	m.debouncer.Stop()
}

// View implements tea.Model
func (m PresetsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Presets"))
	b.WriteString("\n")

	switch {
	case m.filtering:
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
		b.WriteString("\n")
	case m.query != "":
		b.WriteString(m.styles.ListMuted.Render(fmt.Sprintf("filter: %q (Esc clears)", m.query)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(m.styles.ListMuted.Render("No presets match"))
		b.WriteString("\n")
	}

	labelWidth, isoWidth := 0, 0
	for _, v := range m.filtered {
		labelWidth = max(labelWidth, len(v.Label))
		isoWidth = max(isoWidth, len(v.ISO))
	}
	for i, v := range m.filtered {
		mark := "✓"
		if !v.Valid {
			mark = "✗"
		}
		line := fmt.Sprintf("%s %-*s  %-*s  %s", mark, labelWidth, v.Label, isoWidth, v.ISO, v.Display)
		style := m.styles.ListNormal
		switch {
		case i == m.cursor:
			style = m.styles.ListSelected
		case !v.Valid:
			style = m.styles.ListMuted
		}
		b.WriteString(style.Render(line))
		if !v.Valid {
			b.WriteString(m.styles.Warning.Render("  [" + v.Reason + "]"))
		}
		b.WriteString("\n")
	}

	if line := m.status.render(m.styles); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *PresetsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, min(40, width-8))
}

// loadPresets resolves every preset against today and validates it.
func (m PresetsModel) loadPresets() tea.Cmd {
	dates, ctx := m.session.Services.Dates, m.session.Ctx
	return func() tea.Msg {
		views, err := dates.PresetViews(ctx)
		return presetsLoadedMsg{views: views, err: err}
	}
}
