// Package views holds the tab views of the datepick TUI. The calendar and
// preset views drive one shared picker through a Session.
package views

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/selection"
	"github.com/xolan/datepick/internal/service"
	"github.com/xolan/datepick/internal/tui/ui"
)

// Session is the picker state shared by the views. It is created once per
// TUI run and passed by pointer, so every view sees the same selection.
type Session struct {
	Ctx      context.Context
	Services *service.Services
	Picker   *selection.Picker
	Recorder *journal.Recorder
	Inbox    ui.Inbox
}

// NewSession builds the picker. Committed changes are journaled when the
// journal is enabled.
func NewSession(ctx context.Context, services *service.Services, inbox ui.Inbox) (*Session, error) {
	s := &Session{Ctx: ctx, Services: services, Inbox: inbox}

	var obs selection.Observer
	if rec := services.Journal.Recorder("tui"); rec != nil {
		s.Recorder = rec
		obs = rec
	}
	picker, err := services.Dates.NewPicker(ctx, obs)
	if err != nil {
		return nil, err
	}
	s.Picker = picker
	return s, nil
}

// Dispatch applies in to the picker, journaling changes under source.
func (s *Session) Dispatch(source string, in selection.Intent) selection.Outcome {
	if s.Recorder != nil {
		s.Recorder.SetSource(source)
	}
	return s.Picker.Dispatch(in)
}

// Display formats v with the configured locale and style.
func (s *Session) Display(v calendar.Value) string {
	if v.IsZero() {
		return "(none)"
	}
	return s.Services.Dates.Format(v)
}

// Describe explains a rejected outcome in the configured locale. It
// returns "" for accepted outcomes.
func (s *Session) Describe(out selection.Outcome) string {
	if out.Err == nil {
		return ""
	}
	loc := s.Services.Dates.Locale()
	if msg := loc.ReasonMessage(out.Result); msg != "" {
		return msg
	}
	var inputErr *selection.InputError
	if errors.As(out.Err, &inputErr) && errors.Is(out.Err, selection.ErrUnparsableInput) {
		return loc.Message("unparsable_input", map[string]any{"Input": inputErr.Input})
	}
	return out.Err.Error()
}

// changed returns a command announcing a committed change.
func changed(out selection.Outcome) tea.Cmd {
	if !out.Changed {
		return nil
	}
	return func() tea.Msg { return ui.SelectionChangedMsg{} }
}

// status is a one-line message under a view.
type status struct {
	text string
	err  bool
}

func (st status) render(styles ui.Styles) string {
	if st.text == "" {
		return ""
	}
	if st.err {
		return styles.Error.Render("✗ " + st.text)
	}
	return styles.Success.Render("✓ " + st.text)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
