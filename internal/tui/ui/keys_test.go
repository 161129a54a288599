package ui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func allBindings(keys KeyMap) map[string]key.Binding {
	return map[string]key.Binding{
		"Up": keys.Up, "Down": keys.Down, "Left": keys.Left, "Right": keys.Right,
		"PrevMonth": keys.PrevMonth, "NextMonth": keys.NextMonth, "Today": keys.Today,
		"NextTab": keys.NextTab, "PrevTab": keys.PrevTab,
		"Tab1": keys.Tab1, "Tab2": keys.Tab2, "Tab3": keys.Tab3, "Tab4": keys.Tab4,
		"Select": keys.Select, "Drag": keys.Drag, "Back": keys.Back, "Compare": keys.Compare,
		"Type": keys.Type, "Clear": keys.Clear, "Quit": keys.Quit, "Help": keys.Help,
		"Refresh": keys.Refresh,
	}
}

func TestDefaultKeyMap(t *testing.T) {
	for name, binding := range allBindings(DefaultKeyMap()) {
		t.Run(name, func(t *testing.T) {
			if len(binding.Keys()) == 0 {
				t.Errorf("expected keys for binding %s", name)
			}
			help := binding.Help()
			if help.Key == "" || help.Desc == "" {
				t.Errorf("expected help for binding %s, got %+v", name, help)
			}
		})
	}
}

func TestKeyBindingsMatch(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"Quit q", keys.Quit, "q"},
		{"Quit ctrl+c", keys.Quit, "ctrl+c"},
		{"Up k", keys.Up, "k"},
		{"Up arrow", keys.Up, "up"},
		{"Down j", keys.Down, "j"},
		{"Left h", keys.Left, "h"},
		{"Right l", keys.Right, "l"},
		{"Select enter", keys.Select, "enter"},
		{"Select space", keys.Select, " "},
		{"Drag v", keys.Drag, "v"},
		{"Back esc", keys.Back, "esc"},
		{"Compare c", keys.Compare, "c"},
		{"Type /", keys.Type, "/"},
		{"Help ?", keys.Help, "?"},
		{"Tab4 4", keys.Tab4, "4"},
		{"NextTab tab", keys.NextTab, "tab"},
		{"PrevMonth [", keys.PrevMonth, "["},
		{"NextMonth ]", keys.NextMonth, "]"},
		{"Today t", keys.Today, "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Contains(tt.binding.Keys(), tt.key) {
				t.Errorf("expected binding %s to include key %q, got keys %v", tt.name, tt.key, tt.binding.Keys())
			}
		})
	}
}

func TestKeyMap_NoSharedKeys(t *testing.T) {
	owner := map[string]string{}
	for name, binding := range allBindings(DefaultKeyMap()) {
		for _, k := range binding.Keys() {
			if other, ok := owner[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, name)
			}
			owner[k] = name
		}
	}
}
