package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/daily/internal/todo"
)

const (
	msgTaskNotFound = "Task not found"
	msgTaskUpdated  = "Task successfully updated!"
)

// editView edits one task. It is bound to the id it was opened with.
type editView struct {
	store todo.Store
	id    int64
	delay time.Duration
	seq   int

	keys     formKeys
	lostKeys notFoundKeys
	help     help.Model

	title       textinput.Model
	description textarea.Model
	focus       focus
	errs        todo.FieldErrors
	notFound    bool
	success     string
}

// newEditView looks the task up once. A miss leaves the view in its
// terminal not-found state.
func newEditView(store todo.Store, id int64, delay time.Duration, seq int) *editView {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.Prompt = ""
	title.CharLimit = 0

	description := textarea.New()
	description.Placeholder = "Task description"
	description.ShowLineNumbers = false
	description.CharLimit = 0
	description.SetHeight(3)

	v := &editView{
		store:       store,
		id:          id,
		delay:       delay,
		seq:         seq,
		keys:        newFormKeys("save"),
		lostKeys:    newNotFoundKeys(),
		help:        help.New(),
		title:       title,
		description: description,
		focus:       focusTitle,
	}

	task, ok := store.Get(id)
	if !ok {
		v.notFound = true
		return v
	}
	v.title.SetValue(task.Title)
	v.description.SetValue(task.Description)
	v.title.Focus()
	return v
}

func (v *editView) init() tea.Cmd {
	if v.notFound {
		return nil
	}
	return textinput.Blink
}

func (v *editView) setWidth(w int) {
	v.help.Width = w
	if w > 4 {
		v.title.Width = w - 4
		v.description.SetWidth(w - 2)
	}
}

func (v *editView) update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateInputs(msg)
	}

	if v.notFound {
		switch {
		case key.Matches(km, v.lostKeys.Back):
			return backToList()
		case key.Matches(km, v.lostKeys.Quit):
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(km, v.keys.Quit):
		return tea.Quit
	case key.Matches(km, v.keys.Back):
		return backToList()
	case key.Matches(km, v.keys.Submit):
		return v.save()
	case km.Type == tea.KeyEnter && v.focus == focusTitle:
		return v.save()
	case key.Matches(km, v.keys.Next), key.Matches(km, v.keys.Prev):
		return v.switchField()
	}
	return v.updateInputs(km)
}

func (v *editView) updateInputs(msg tea.Msg) tea.Cmd {
	if v.notFound {
		return nil
	}
	var cmd tea.Cmd
	if v.focus == focusTitle {
		v.title, cmd = v.title.Update(msg)
	} else {
		v.description, cmd = v.description.Update(msg)
	}
	return cmd
}

func (v *editView) switchField() tea.Cmd {
	if v.focus == focusTitle {
		v.focus = focusDescription
		v.title.Blur()
		return v.description.Focus()
	}
	v.focus = focusTitle
	v.description.Blur()
	return v.title.Focus()
}

// save validates and applies the edit. On success it schedules the
// return to the list.
func (v *editView) save() tea.Cmd {
	v.success = ""
	draft := todo.Draft{Title: v.title.Value(), Description: v.description.Value()}
	v.errs = todo.ValidateDraft(draft)
	if !v.errs.Empty() {
		return nil
	}

	task, ok := v.store.Get(v.id)
	if !ok {
		v.notFound = true
		return nil
	}
	v.store.Update(task.Apply(draft))
	v.success = msgTaskUpdated
	return redirectAfter(v.delay, v.seq)
}

func (v *editView) view() string {
	var b strings.Builder
	if v.notFound {
		b.WriteString(errorStyle.Render(msgTaskNotFound))
		b.WriteString("\n\n")
		b.WriteString(activeButtonStyle.Render("Go Back"))
		b.WriteString("\n\n")
		b.WriteString(v.help.View(v.lostKeys))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Edit Task"))
	b.WriteString("\n")
	if v.success != "" {
		b.WriteString(successStyle.Render(v.success))
		b.WriteString("\n\n")
	}

	b.WriteString(v.title.View())
	b.WriteString("\n")
	if msg := v.errs.Get(todo.FieldTitle); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString(v.description.View())
	b.WriteString("\n")
	if msg := v.errs.Get(todo.FieldDescription); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render("Cancel (esc)"))
	b.WriteString(" ")
	b.WriteString(activeButtonStyle.Render("Save (ctrl+s)"))
	b.WriteString("\n\n")
	b.WriteString(v.help.View(v.keys))
	b.WriteString("\n")
	return b.String()
}
