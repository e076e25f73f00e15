package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/daily/internal/todo"
)

type focus int

const (
	focusList focus = iota
	focusTitle
	focusDescription
)

// listView is the main screen: the creation form, the task rows and the
// two confirmation dialogs.
type listView struct {
	store todo.Store
	now   func() time.Time

	keys     listKeys
	formKeys formKeys
	help     help.Model

	title       textinput.Model
	description textarea.Model
	errs        todo.FieldErrors
	focus       focus
	cursor      int
	width       int

	deleteDialog Dialog
	deleteOpen   bool
	pendingID    int64
	clearDialog  Dialog
	clearOpen    bool
}

func newListView(store todo.Store) *listView {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = todo.TitleMaxLength

	description := textarea.New()
	description.Placeholder = "Description"
	description.ShowLineNumbers = false
	description.CharLimit = todo.DescriptionMaxLength
	description.SetHeight(3)

	return &listView{
		store:        store,
		now:          time.Now,
		keys:         newListKeys(),
		formKeys:     newFormKeys("add"),
		help:         help.New(),
		title:        title,
		description:  description,
		deleteDialog: DeleteDialog(),
		clearDialog:  ClearAllDialog(),
	}
}

func (v *listView) setWidth(w int) {
	v.width = w
	v.help.Width = w
	if w > 4 {
		v.title.Width = w - 4
		v.description.SetWidth(w - 2)
	}
}

func (v *listView) update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateInputs(msg)
	}

	switch {
	case v.deleteOpen:
		v.handleDeleteDialog(km)
		return nil
	case v.clearOpen:
		v.handleClearDialog(km)
		return nil
	case v.focus != focusList:
		return v.updateForm(km)
	}
	return v.updateList(km)
}

func (v *listView) updateList(msg tea.KeyMsg) tea.Cmd {
	tasks := v.store.Tasks()
	v.clampCursor(len(tasks))

	switch {
	case key.Matches(msg, v.keys.Quit):
		return tea.Quit
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(tasks)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(tasks); ok {
			v.store.Toggle(t.ID)
		}
	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.selected(tasks); ok && !t.Completed {
			return openEdit(t.ID)
		}
	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(tasks); ok && !t.Completed {
			v.openDelete(t.ID)
		}
	case key.Matches(msg, v.keys.ClearAll):
		v.clearDialog = v.clearDialog.Reset()
		v.clearOpen = true
	case key.Matches(msg, v.keys.Form):
		return v.focusField(focusTitle)
	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
	}
	return nil
}

func (v *listView) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.formKeys.Quit):
		return tea.Quit
	case key.Matches(msg, v.formKeys.Back):
		return v.focusField(focusList)
	case key.Matches(msg, v.formKeys.Submit):
		v.submit()
		return nil
	case msg.Type == tea.KeyEnter && v.focus == focusTitle:
		v.submit()
		return nil
	case key.Matches(msg, v.formKeys.Next):
		return v.focusField((v.focus + 1) % 3)
	case key.Matches(msg, v.formKeys.Prev):
		return v.focusField((v.focus + 2) % 3)
	}
	return v.updateInputs(msg)
}

func (v *listView) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case focusTitle:
		v.title, cmd = v.title.Update(msg)
	case focusDescription:
		v.description, cmd = v.description.Update(msg)
	}
	return cmd
}

func (v *listView) focusField(f focus) tea.Cmd {
	v.focus = f
	v.title.Blur()
	v.description.Blur()
	switch f {
	case focusTitle:
		return v.title.Focus()
	case focusDescription:
		return v.description.Focus()
	}
	return nil
}

// submit validates the form and adds the task. It reports whether a task
// was added.
func (v *listView) submit() bool {
	draft := todo.Draft{Title: v.title.Value(), Description: v.description.Value()}
	v.errs = todo.ValidateDraft(draft)
	if !v.errs.Empty() {
		return false
	}

	id := todo.NewID(v.store.Tasks(), v.now())
	v.store.Add(todo.NewTask(id, draft))
	v.title.Reset()
	v.description.Reset()
	v.errs = nil
	return true
}

func (v *listView) openDelete(id int64) {
	v.pendingID = id
	v.deleteDialog = v.deleteDialog.Reset()
	v.deleteOpen = true
}

func (v *listView) handleDeleteDialog(msg tea.KeyMsg) {
	var action DialogAction
	v.deleteDialog, action = v.deleteDialog.Update(msg)
	switch action {
	case DialogConfirm:
		v.store.Remove(v.pendingID)
		fallthrough
	case DialogCancel:
		v.deleteOpen = false
		v.pendingID = 0
		v.clampCursor(len(v.store.Tasks()))
	}
}

func (v *listView) handleClearDialog(msg tea.KeyMsg) {
	var action DialogAction
	v.clearDialog, action = v.clearDialog.Update(msg)
	switch action {
	case DialogConfirm:
		v.store.Clear()
		v.cursor = 0
		fallthrough
	case DialogCancel:
		v.clearOpen = false
	}
}

func (v *listView) selected(tasks []todo.Task) (todo.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[v.cursor], true
}

func (v *listView) clampCursor(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *listView) view(loading string) string {
	if v.deleteOpen {
		return v.deleteDialog.View(v.dialogWidth())
	}
	if v.clearOpen {
		return v.clearDialog.View(v.dialogWidth())
	}

	tasks := v.store.Tasks()
	v.clampCursor(len(tasks))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Daily To Do List"))
	b.WriteString("\n")
	v.writeForm(&b)
	if loading != "" {
		b.WriteString(loading + "\n\n")
	}
	v.writeTasks(&b, tasks)
	v.writeFooter(&b, tasks)
	return b.String()
}

func (v *listView) writeForm(b *strings.Builder) {
	b.WriteString(v.title.View())
	b.WriteString("\n")
	if msg := v.errs.Get(todo.FieldTitle); msg != "" {
		b.WriteString(errorStyle.Render(msg))
	} else {
		b.WriteString(mutedStyle.Render(counter(v.title.Value(), todo.TitleMaxLength)))
	}
	b.WriteString("\n")

	b.WriteString(v.description.View())
	b.WriteString("\n")
	if msg := v.errs.Get(todo.FieldDescription); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(counter(v.description.Value(), todo.DescriptionMaxLength)))
	b.WriteString("\n\n")
}

func (v *listView) writeTasks(b *strings.Builder, tasks []todo.Task) {
	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("  No tasks yet."))
		b.WriteString("\n\n")
		return
	}
	for i, t := range tasks {
		b.WriteString(v.formatTask(t, i == v.cursor && v.focus == focusList))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (v *listView) formatTask(t todo.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	box := "( )"
	if t.Completed {
		box = checkStyle.Render("(✓)")
	}

	description := t.Description
	if description == "" {
		description = "No Description"
	}
	title := t.Title
	if v.width > 10 {
		title = todo.Truncate(title, v.width-10)
		description = todo.Truncate(description, v.width-10)
	}

	if t.Completed {
		title = doneStyle.Render(title)
		description = mutedStyle.Render(description)
	}
	return fmt.Sprintf("%s%s %s\n      %s", cursor, box, title, description)
}

func (v *listView) writeFooter(b *strings.Builder, tasks []todo.Task) {
	b.WriteString(fmt.Sprintf("%d item selected", todo.CountCompleted(tasks)))
	b.WriteString("    ")
	b.WriteString(linkStyle.Render("Clear All (C)"))
	b.WriteString("\n\n")
	if v.focus == focusList {
		b.WriteString(v.help.View(v.keys))
	} else {
		b.WriteString(v.help.View(v.formKeys))
	}
	b.WriteString("\n")
}

func (v *listView) dialogWidth() int {
	if v.width <= 0 || v.width > 60 {
		return 60
	}
	return v.width - 2
}

func counter(value string, limit int) string {
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(value), limit)
}
