package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/service"
	"github.com/xolan/datepick/internal/tui/ui"
)

// journalLimit is how many records the view loads.
const journalLimit = 50

// journalLoadedMsg carries the newest journal records.
type journalLoadedMsg struct {
	list *service.JournalList
	err  error
}

// JournalModel shows recent selections, newest first. Enter selects a
// record's value again.
type JournalModel struct {
	session *Session
	styles  ui.Styles
	keys    ui.KeyMap

	width  int
	height int

	records  []journal.Record
	total    int
	warnings int
	cursor   int
	offset   int

	status status
}

// NewJournalModel creates the journal view.
func NewJournalModel(session *Session, styles ui.Styles, keys ui.KeyMap) JournalModel {
	return JournalModel{session: session, styles: styles, keys: keys}
}

// Init implements tea.Model
func (m JournalModel) Init() tea.Cmd {
	return m.loadJournal()
}

// Update implements tea.Model
func (m JournalModel) Update(msg tea.Msg) (JournalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.updateOffset()
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
			m.updateOffset()
		case key.Matches(msg, m.keys.Select):
			return m.reselect()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadJournal()
		}

	case journalLoadedMsg:
		if msg.err != nil {
			m.status = status{text: msg.err.Error(), err: true}
			return m, nil
		}
		// Newest first.
		n := len(msg.list.Records)
		m.records = make([]journal.Record, n)
		for i, r := range msg.list.Records {
			m.records[n-1-i] = r
		}
		m.total = msg.list.Total
		m.warnings = len(msg.list.Warnings)
		m.cursor = min(m.cursor, max(0, n-1))
		m.updateOffset()

	case ui.SelectionChangedMsg:
		return m, m.loadJournal()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

// reselect commits the record under the cursor to the active selection.
func (m JournalModel) reselect() (JournalModel, tea.Cmd) {
	if m.cursor >= len(m.records) {
		return m, nil
	}
	rec := m.records[m.cursor]
	v, err := rec.Value()
	if err != nil {
		m.status = status{text: fmt.Sprintf("Record has an invalid value: %v", err), err: true}
		return m, nil
	}
	if v.IsZero() {
		m.status = status{text: "Record is a cleared selection", err: true}
		return m, nil
	}

	if r := m.session.Recorder; r != nil {
		r.SetSource("journal")
	}
	out := m.session.Picker.Active().Commit(v)
	if out.Err != nil {
		m.status = status{text: m.session.Describe(out), err: true}
		return m, nil
	}
	m.status = status{text: "Selected " + m.session.Display(v) + " again"}
	return m, changed(out)
}

// visibleRows is how many records fit below the title.
func (m JournalModel) visibleRows() int {
	if m.height <= 6 {
		return 10
	}
	return m.height - 6
}

func (m *JournalModel) updateOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model
func (m JournalModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Journal"))
	b.WriteString("\n")

	if !m.session.Services.Journal.Enabled() {
		b.WriteString(m.styles.Warning.Render("Journaling is disabled (set [journal] enabled = true)"))
		b.WriteString("\n\n")
	}

	if len(m.records) == 0 {
		b.WriteString(m.styles.ListMuted.Render("No selections recorded yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.ListMuted.Render(fmt.Sprintf("%d of %d %s", len(m.records), m.total, pluralize("record", m.total))))
		b.WriteString("\n\n")
	}

	end := min(len(m.records), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		style := m.styles.ListNormal
		if i == m.cursor {
			style = m.styles.ListSelected
		}
		b.WriteString(style.Render(renderRecord(m.records[i])))
		b.WriteString("\n")
	}

	if m.warnings > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("⚠ %d corrupted %s skipped (run 'datepick journal validate')", m.warnings, pluralize("line", m.warnings))))
		b.WriteString("\n")
	}
	if line := m.status.render(m.styles); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func renderRecord(r journal.Record) string {
	iso := r.ISO
	if iso == "" {
		iso = "(cleared)"
	}
	if r.CompareISO != "" {
		iso += " vs " + r.CompareISO
	}
	line := fmt.Sprintf("%s  %-7s  %s", r.Time.Format("Jan 02 15:04"), r.Target, iso)
	if r.Source != "" {
		line += "  (" + r.Source + ")"
	}
	return line
}

// SetSize sets the view dimensions
func (m *JournalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m JournalModel) loadJournal() tea.Cmd {
	svc := m.session.Services.Journal
	return func() tea.Msg {
		list, err := svc.List(journalLimit)
		return journalLoadedMsg{list: list, err: err}
	}
}
