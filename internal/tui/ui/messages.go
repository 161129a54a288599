package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// SelectionChangedMsg is broadcast after the picker committed a new value,
// so views showing the payload or the journal can refresh.
type SelectionChangedMsg struct{}

// InboxMsg wraps a message that arrived through an Inbox.
type InboxMsg struct {
	Msg tea.Msg
}

// inboxSize bounds the backlog of background results.
const inboxSize = 32

// Inbox carries messages produced outside the event loop, such as
// debounced input and background loads, back into Update.
type Inbox chan tea.Msg

// NewInbox returns an empty inbox.
func NewInbox() Inbox {
	return make(Inbox, inboxSize)
}

// Send queues msg without blocking. Messages are dropped when the inbox is
// full.
func (in Inbox) Send(msg tea.Msg) {
	select {
	case in <- msg:
	default:
	}
}

// Wait returns a command that delivers the next queued message as an
// InboxMsg. The receiver must call Wait again after handling it.
func (in Inbox) Wait() tea.Cmd {
	return func() tea.Msg {
		return InboxMsg{Msg: <-in}
	}
}
