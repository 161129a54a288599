package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func dayStyles(s Styles) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"WeekdayHead": s.WeekdayHead,
		"Day":         s.Day,
		"DayOutside":  s.DayOutside,
		"DayToday":    s.DayToday,
		"DayDisabled": s.DayDisabled,
		"DayCursor":   s.DayCursor,
		"DaySelected": s.DaySelected,
		"DayInRange":  s.DayInRange,
		"DayPreview":  s.DayPreview,
		"DayCompare":  s.DayCompare,
	}
}

func TestDefaultStyles_DayCellsAlign(t *testing.T) {
	for name, style := range dayStyles(DefaultStyles()) {
		t.Run(name, func(t *testing.T) {
			if w := lipgloss.Width(style.Render("7")); w != 4 {
				t.Errorf("expected a 4-column cell, got width %d", w)
			}
			if w := lipgloss.Width(style.Render("28")); w != 4 {
				t.Errorf("expected a 4-column cell for two digits, got width %d", w)
			}
		})
	}
}

func TestDefaultStyles_Emphasis(t *testing.T) {
	styles := DefaultStyles()

	if !styles.DayCursor.GetBold() {
		t.Error("expected the cursor cell to be bold")
	}
	if !styles.DaySelected.GetBold() {
		t.Error("expected selected days to be bold")
	}
	if !styles.DayDisabled.GetStrikethrough() {
		t.Error("expected disabled days to be struck through")
	}
	if !styles.DayToday.GetUnderline() {
		t.Error("expected today to be underlined")
	}
	if !styles.TabActive.GetBold() || styles.TabInactive.GetBold() {
		t.Error("expected only the active tab to be bold")
	}
}

func TestStylesRenderText(t *testing.T) {
	styles := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"App":     styles.App,
		"Dialog":  styles.Dialog,
		"Error":   styles.Error,
		"Success": styles.Success,
		"Label":   styles.Label,
	} {
		if !strings.Contains(style.Render("Feb 2026"), "Feb 2026") {
			t.Errorf("%s style lost its content", name)
		}
	}
}
