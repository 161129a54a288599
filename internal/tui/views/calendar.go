package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/search"
	"github.com/xolan/datepick/internal/selection"
	"github.com/xolan/datepick/internal/tui/ui"
)

// constraintsLoadedMsg carries the constraints for a new window.
type constraintsLoadedMsg struct {
	window      calendar.Range
	constraints *constraint.Constraints
	err         error
}

// CalendarModel is the month grid. The cursor drives select and drag
// intents; "/" opens a text field that resolves typed dates as you type.
type CalendarModel struct {
	session *Session
	styles  ui.Styles
	keys    ui.KeyMap

	width  int
	height int

	cursor    calendar.Date
	weekStart time.Weekday

	// window is the range the picker's constraints were expanded over.
	window  calendar.Range
	loader  *search.Loader[*constraint.Constraints]
	loading bool

	dragging bool
	preview  calendar.Range

	typing bool
	input  textinput.Model

	status status
}

// NewCalendarModel opens the grid on today.
func NewCalendarModel(session *Session, styles ui.Styles, keys ui.KeyMap) CalendarModel {
	ti := textinput.New()
	ti.Placeholder = "next friday, 2026-03-01/2026-03-07, in 3 days"
	ti.CharLimit = 64
	ti.Width = 40

	dates := session.Services.Dates
	today := session.Picker.Today()
	return CalendarModel{
		session:   session,
		styles:    styles,
		keys:      keys,
		cursor:    today,
		weekStart: dates.Config().WeekStart(),
		window:    dates.Window(today),
		loader:    &search.Loader[*constraint.Constraints]{},
		input:     ti,
	}
}

// Init implements tea.Model
func (m CalendarModel) Init() tea.Cmd {
	return nil
}

// IsInputMode reports whether the text field has focus.
func (m CalendarModel) IsInputMode() bool {
	return m.typing
}

// IsDragging reports whether a drag is in progress.
func (m CalendarModel) IsDragging() bool {
	return m.dragging
}

// Cursor returns the date under the cursor.
func (m CalendarModel) Cursor() calendar.Date {
	return m.cursor
}

// Update implements tea.Model
func (m CalendarModel) Update(msg tea.Msg) (CalendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.handleTyping(msg)
		}
		return m.handleKey(msg)

	case constraintsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = status{text: msg.err.Error(), err: true}
			return m, nil
		}
		m.window = msg.window
		m.session.Picker.SetConstraints(msg.constraints)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

func (m CalendarModel) handleKey(msg tea.KeyMsg) (CalendarModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(m.cursor.AddDays(-1))
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(m.cursor.AddDays(1))
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(m.cursor.AddDays(-7))
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(m.cursor.AddDays(7))
	case key.Matches(msg, m.keys.PrevMonth):
		return m.moveCursor(m.cursor.AddMonths(-1))
	case key.Matches(msg, m.keys.NextMonth):
		return m.moveCursor(m.cursor.AddMonths(1))
	case key.Matches(msg, m.keys.Today):
		return m.moveCursor(m.session.Picker.Today())

	case key.Matches(msg, m.keys.Select):
		if m.dragging {
			m.dragging = false
			return m.apply(selection.Intent{Kind: selection.IntentDragEnd, Date: m.cursor}, "Selected")
		}
		return m.apply(selection.Intent{Kind: selection.IntentSelectDate, Date: m.cursor}, "Selected")

	case key.Matches(msg, m.keys.Drag):
		if m.dragging {
			m.dragging = false
			return m.apply(selection.Intent{Kind: selection.IntentDragEnd, Date: m.cursor}, "Selected")
		}
		if m.session.Picker.Active().Mode() == selection.ModeSingle {
			return m.apply(selection.Intent{Kind: selection.IntentSelectDate, Date: m.cursor}, "Selected")
		}
		out := m.session.Dispatch("tui:dragStart", selection.Intent{Kind: selection.IntentDragStart, Date: m.cursor})
		if out.Err != nil {
			m.status = status{text: m.session.Describe(out), err: true}
			return m, nil
		}
		m.dragging = true
		m.preview = calendar.NewRange(m.cursor, m.cursor)
		m.status = status{text: "Dragging from " + m.cursor.String()}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.dragging {
			m.dragging = false
			m.session.Dispatch("tui:dragCancel", selection.Intent{Kind: selection.IntentDragCancel})
			m.status = status{text: "Drag cancelled"}
		}
		return m, nil

	case key.Matches(msg, m.keys.Compare):
		return m.toggleTarget()

	case key.Matches(msg, m.keys.Clear):
		return m.apply(selection.Intent{Kind: selection.IntentClear}, "Cleared")

	case key.Matches(msg, m.keys.Type):
		m.typing = true
		m.input.SetValue(m.session.Picker.Active().Draft())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.reload(true)
		return m, nil
	}
	return m, nil
}

// handleTyping feeds every edit to the picker. Text that is not understood
// yet stays a draft; Enter or Esc blurs the field and reports it.
func (m CalendarModel) handleTyping(msg tea.KeyMsg) (CalendarModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.typing = false
		m.input.Blur()
		out := m.session.Dispatch("tui:blur", selection.Intent{Kind: selection.IntentBlur})
		if out.Err != nil {
			m.status = status{text: m.session.Describe(out), err: true}
		}
		return m.follow(), nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	out := m.session.Dispatch("tui:typeText", selection.Intent{Kind: selection.IntentTypeText, Text: m.input.Value()})
	switch {
	case out.Err != nil:
		m.status = status{text: m.session.Describe(out), err: true}
	case out.Unparsed:
		m.status = status{}
	case out.Changed:
		m.status = status{text: "Selected " + m.session.Display(m.session.Picker.Active().Committed())}
	}
	return m, tea.Batch(cmd, changed(out))
}

// apply dispatches a cursor intent and reports the result.
func (m CalendarModel) apply(in selection.Intent, verb string) (CalendarModel, tea.Cmd) {
	out := m.session.Dispatch("tui:"+in.Kind.String(), in)
	switch {
	case out.Err != nil:
		m.status = status{text: m.session.Describe(out), err: true}
	case out.State.Phase == selection.PhaseStartSelected:
		m.status = status{text: "Range starts " + m.session.Display(calendar.SingleValue(out.State.Start)) + ", pick the end"}
	case out.Changed:
		m.status = status{text: verb + " " + m.session.Display(m.session.Picker.Active().Committed())}
	}
	return m, changed(out)
}

func (m CalendarModel) toggleTarget() (CalendarModel, tea.Cmd) {
	next := selection.TargetCompare
	if m.session.Picker.Target() == selection.TargetCompare {
		next = selection.TargetPrimary
	}
	out := m.session.Dispatch("tui:setTarget", selection.Intent{Kind: selection.IntentSetTarget, Target: next})
	if out.Err != nil {
		m.status = status{text: "Comparison is disabled (set compare = true in the config)", err: true}
		return m, nil
	}
	m.dragging = false
	m.status = status{text: "Now editing the " + next.String() + " selection"}
	return m.follow(), nil
}

// follow moves the cursor onto the active selection.
func (m CalendarModel) follow() CalendarModel {
	if v := m.session.Picker.Active().Committed(); !v.IsZero() {
		m.cursor = v.Range().Start
	}
	return m
}

func (m CalendarModel) moveCursor(d calendar.Date) (CalendarModel, tea.Cmd) {
	if d.Year < 1 || d.Year > 9999 {
		return m, nil
	}
	m.cursor = d
	if m.dragging {
		m.preview, _ = m.session.Picker.DragMove(d)
	}
	m.reload(false)
	return m, nil
}

// reload expands the constraints around the displayed month when it falls
// outside the loaded window, or always when force is set. The result
// arrives through the inbox; only the newest load is delivered.
func (m *CalendarModel) reload(force bool) {
	month := calendar.Month(m.cursor)
	if !force && m.window.Contains(month.Start) && m.window.Contains(month.End) {
		return
	}
	dates := m.session.Services.Dates
	window := dates.Window(m.cursor)
	if !force && window == m.window {
		return
	}
	m.loading = true
	inbox := m.session.Inbox
	m.loader.Load(m.session.Ctx,
		func(ctx context.Context) (*constraint.Constraints, error) {
			return dates.Constraints(ctx, window)
		},
		func(c *constraint.Constraints, err error) {
			inbox.Send(constraintsLoadedMsg{window: window, constraints: c, err: err})
		})
}

// Close cancels a pending load.
func (m CalendarModel) Close() {
	m.loader.Cancel()
}

// View implements tea.Model
func (m CalendarModel) View() string {
	var b strings.Builder

	loc := m.session.Services.Dates.Locale()
	title := fmt.Sprintf("%s %d", loc.MonthName(m.cursor.Month), m.cursor.Year)
	b.WriteString(m.styles.MonthTitle.Render(title))
	if m.loading {
		b.WriteString(m.styles.ListMuted.Render("  loading…"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderPayload())

	if m.typing {
		b.WriteString("\n")
		b.WriteString(m.styles.InputFocused.Render(m.input.View()))
	}
	if line := m.status.render(m.styles); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func (m CalendarModel) renderGrid() string {
	loc := m.session.Services.Dates.Locale()

	var head []string
	for i := range 7 {
		wd := time.Weekday((int(m.weekStart) + i) % 7)
		head = append(head, m.styles.WeekdayHead.Render(loc.ShortWeekdayName(wd)))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, head...)}
	for _, week := range calendar.MonthGrid(m.cursor, m.weekStart) {
		var cells []string
		for _, d := range week {
			cells = append(cells, m.dayStyle(d).Render(fmt.Sprint(d.Day)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// dayStyle picks one style per cell; earlier checks win.
func (m CalendarModel) dayStyle(d calendar.Date) lipgloss.Style {
	picker := m.session.Picker
	primary := picker.Primary()
	c := primary.Constraints()

	switch {
	case d == m.cursor:
		return m.styles.DayCursor
	case c != nil && constraint.Validate(c, d).Reason != constraint.ReasonNone:
		return m.styles.DayDisabled
	case m.dragging && m.preview.Contains(d):
		return m.styles.DayPreview
	}

	if start := primary.State(); start.Phase == selection.PhaseStartSelected && start.Start == d {
		return m.styles.DaySelected
	}
	if v := primary.Committed(); !v.IsZero() {
		r := v.Range()
		if d == r.Start || d == r.End {
			return m.styles.DaySelected
		}
		if r.Contains(d) {
			return m.styles.DayInRange
		}
	}
	if cmp := picker.Compare(); cmp != nil {
		if v := cmp.Committed(); !v.IsZero() && v.Range().Contains(d) {
			return m.styles.DayCompare
		}
	}

	switch {
	case d == picker.Today():
		return m.styles.DayToday
	case d.Month != m.cursor.Month:
		return m.styles.DayOutside
	}
	return m.styles.Day
}

func (m CalendarModel) renderPayload() string {
	picker := m.session.Picker
	line := func(target selection.Target, v calendar.Value) string {
		marker := "  "
		if picker.Target() == target {
			marker = "▸ "
		}
		return marker + m.styles.Label.Render(target.String()+":") + " " + m.styles.Value.Render(m.session.Display(v))
	}

	var b strings.Builder
	b.WriteString(line(selection.TargetPrimary, picker.Primary().Committed()))
	b.WriteString("\n")
	if cmp := picker.Compare(); cmp != nil {
		b.WriteString(line(selection.TargetCompare, cmp.Committed()))
		b.WriteString("\n")
	}
	if draft := picker.Active().Draft(); draft != "" && !m.typing {
		b.WriteString(m.styles.ListMuted.Render("  draft: " + draft))
		b.WriteString("\n")
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *CalendarModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, min(60, width-8))
}
