package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func TestDialogActions(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want DialogAction
	}{
		{"y confirms", []tea.KeyMsg{runeKey("y")}, DialogConfirm},
		{"n cancels", []tea.KeyMsg{runeKey("n")}, DialogCancel},
		{"esc cancels", []tea.KeyMsg{typeKey(tea.KeyEsc)}, DialogCancel},
		{"enter presses confirm by default", []tea.KeyMsg{typeKey(tea.KeyEnter)}, DialogConfirm},
		{"tab then enter presses cancel", []tea.KeyMsg{typeKey(tea.KeyTab), typeKey(tea.KeyEnter)}, DialogCancel},
		{"unrelated key does nothing", []tea.KeyMsg{runeKey("z")}, DialogNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DeleteDialog()
			var action DialogAction
			for _, k := range tt.keys {
				d, action = d.Update(k)
			}
			if action != tt.want {
				t.Errorf("action = %v, want %v", action, tt.want)
			}
		})
	}
}

func TestDialogResetRefocusesConfirm(t *testing.T) {
	d := ClearAllDialog()
	d, _ = d.Update(typeKey(tea.KeyTab))
	d = d.Reset()
	if _, action := d.Update(typeKey(tea.KeyEnter)); action != DialogConfirm {
		t.Errorf("after Reset enter should confirm, got %v", action)
	}
}

func TestDialogView(t *testing.T) {
	tests := []struct {
		dialog  Dialog
		title   string
		confirm string
	}{
		{DeleteDialog(), "Delete Task", "Delete"},
		{ClearAllDialog(), "Clear All Tasks", "Clear All"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			view := tt.dialog.View(0)
			for _, want := range []string{tt.title, "Cancel", tt.confirm, "Are you sure"} {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q:\n%s", want, view)
				}
			}
		})
	}
}
