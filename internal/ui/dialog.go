package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogAction is the outcome of a key press inside a dialog.
type DialogAction int

const (
	DialogNone DialogAction = iota
	DialogCancel
	DialogConfirm
)

// Dialog is a confirmation overlay. It holds no task data: whether it is
// open, and what confirming does, is up to the caller.
type Dialog struct {
	Title        string
	Message      string
	ConfirmLabel string

	cancelFocused bool
	keys          dialogKeys
}

// DeleteDialog asks before removing a single task.
func DeleteDialog() Dialog {
	return Dialog{
		Title:        "Delete Task",
		Message:      "Are you sure you want to delete this task? This action cannot be undone.",
		ConfirmLabel: "Delete",
		keys:         newDialogKeys(),
	}
}

// ClearAllDialog asks before removing every task.
func ClearAllDialog() Dialog {
	return Dialog{
		Title:        "Clear All Tasks",
		Message:      "Are you sure you want to clear all tasks? This action cannot be undone.",
		ConfirmLabel: "Clear All",
		keys:         newDialogKeys(),
	}
}

// Reset moves focus back to the confirm button. Callers reset a dialog
// each time they open it.
func (d Dialog) Reset() Dialog {
	d.cancelFocused = false
	return d
}

// Update handles one key press.
func (d Dialog) Update(msg tea.KeyMsg) (Dialog, DialogAction) {
	switch {
	case key.Matches(msg, d.keys.Confirm):
		return d, DialogConfirm
	case key.Matches(msg, d.keys.Cancel):
		return d, DialogCancel
	case key.Matches(msg, d.keys.Switch):
		d.cancelFocused = !d.cancelFocused
	case key.Matches(msg, d.keys.Press):
		if d.cancelFocused {
			return d, DialogCancel
		}
		return d, DialogConfirm
	}
	return d, DialogNone
}

// View renders the dialog box at the given width (0 for natural width).
func (d Dialog) View(width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	cancel := buttonStyle.Render("Cancel")
	confirm := buttonStyle.Render(d.ConfirmLabel)
	if d.cancelFocused {
		cancel = activeButtonStyle.Render("Cancel")
	} else {
		confirm = dangerButtonStyle.Render(d.ConfirmLabel)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", confirm))

	style := dialogStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(b.String())
}
