package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/daily/internal/todo"
)

func newTestList(tasks ...todo.Task) (*listView, *todo.List) {
	store := todo.NewList()
	store.ReplaceAll(tasks)
	v := newListView(store)
	v.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return v, store
}

func TestListSubmitAddsTask(t *testing.T) {
	v, store := newTestList()

	v.update(runeKey("n"))
	if v.focus != focusTitle {
		t.Fatalf("n should focus the title field, focus = %v", v.focus)
	}
	v.update(runeKey("Buy milk"))
	v.update(typeKey(tea.KeyTab))
	v.update(runeKey("two litres"))
	v.update(typeKey(tea.KeyCtrlS))

	tasks := store.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Buy milk" || got.Description != "two litres" || got.Completed {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.ID != 1_700_000_000_000 {
		t.Errorf("ID = %d, want creation time in ms", got.ID)
	}
	if v.title.Value() != "" || v.description.Value() != "" {
		t.Error("form should be cleared after a successful submit")
	}
}

func TestListEnterOnTitleSubmits(t *testing.T) {
	v, store := newTestList()
	v.update(runeKey("n"))
	v.update(runeKey("Call mum"))
	v.update(typeKey(tea.KeyEnter))

	if len(store.Tasks()) != 1 {
		t.Fatalf("enter on the title should submit, got %d tasks", len(store.Tasks()))
	}
}

func TestListSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantAdd bool
		wantMsg string
	}{
		{"empty", "", false, todo.MsgTitleRequired},
		{"whitespace only", "   ", false, todo.MsgTitleRequired},
		{"exactly max length", strings.Repeat("a", todo.TitleMaxLength), true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, store := newTestList()
			before := len(store.Tasks())
			v.title.SetValue(tt.title)

			added := v.submit()
			if added != tt.wantAdd {
				t.Fatalf("submit() = %v, want %v", added, tt.wantAdd)
			}
			if !tt.wantAdd && len(store.Tasks()) != before {
				t.Errorf("store changed on invalid submit: %d -> %d", before, len(store.Tasks()))
			}
			if got := v.errs.Get(todo.FieldTitle); got != tt.wantMsg {
				t.Errorf("title error = %q, want %q", got, tt.wantMsg)
			}
			if tt.wantMsg != "" && !strings.Contains(v.view(""), tt.wantMsg) {
				t.Error("validation message not rendered")
			}
		})
	}
}

func TestListTitleCharLimit(t *testing.T) {
	v, _ := newTestList()
	v.title.SetValue(strings.Repeat("a", todo.TitleMaxLength+10))
	if n := len(v.title.Value()); n != todo.TitleMaxLength {
		t.Errorf("title input should stop at %d chars, has %d", todo.TitleMaxLength, n)
	}
	if !strings.Contains(v.view(""), "150/150") {
		t.Error("title counter not rendered")
	}
}

func TestListToggleMovesCompletedLast(t *testing.T) {
	v, store := newTestList(
		todo.Task{ID: 1, Title: "a"},
		todo.Task{ID: 2, Title: "b"},
	)

	v.update(spaceKey())

	tasks := store.Tasks()
	if tasks[0].ID != 2 || tasks[1].ID != 1 || !tasks[1].Completed {
		t.Errorf("unexpected order after toggle: %+v", tasks)
	}
	if !strings.Contains(v.view(""), "1 item selected") {
		t.Error("completed count not rendered")
	}
}

func TestListCursorMovement(t *testing.T) {
	v, _ := newTestList(
		todo.Task{ID: 1, Title: "a"},
		todo.Task{ID: 2, Title: "b"},
	)

	v.update(runeKey("k"))
	if v.cursor != 0 {
		t.Errorf("cursor should not go above 0, got %d", v.cursor)
	}
	v.update(runeKey("j"))
	v.update(typeKey(tea.KeyDown))
	if v.cursor != 1 {
		t.Errorf("cursor should stop at the last row, got %d", v.cursor)
	}
}

func TestListEditOpensEditScreen(t *testing.T) {
	v, _ := newTestList(todo.Task{ID: 7, Title: "a"})

	cmd := v.update(runeKey("e"))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(openEditMsg)
	if !ok || msg.id != 7 {
		t.Errorf("got %#v, want openEditMsg{id: 7}", msg)
	}
}

func TestListCompletedRowsHaveNoActions(t *testing.T) {
	v, _ := newTestList(todo.Task{ID: 1, Title: "done", Completed: true})

	if cmd := v.update(runeKey("e")); cmd != nil {
		t.Error("edit should not be offered for a completed task")
	}
	v.update(runeKey("d"))
	if v.deleteOpen {
		t.Error("delete should not be offered for a completed task")
	}
}

func TestListDeleteDialog(t *testing.T) {
	v, store := newTestList(
		todo.Task{ID: 1, Title: "a"},
		todo.Task{ID: 2, Title: "b"},
	)

	v.update(runeKey("d"))
	if !v.deleteOpen || v.pendingID != 1 {
		t.Fatalf("delete dialog should be open for task 1, open=%v pending=%d", v.deleteOpen, v.pendingID)
	}
	if !strings.Contains(v.view(""), "Delete Task") {
		t.Error("delete dialog not rendered")
	}

	v.update(runeKey("n"))
	if v.deleteOpen || len(store.Tasks()) != 2 {
		t.Fatalf("cancel should close without deleting, open=%v len=%d", v.deleteOpen, len(store.Tasks()))
	}

	v.update(runeKey("d"))
	v.update(runeKey("y"))
	if v.deleteOpen {
		t.Error("dialog should close after confirm")
	}
	if _, ok := store.Get(1); ok || len(store.Tasks()) != 1 {
		t.Errorf("task 1 should be removed, tasks = %+v", store.Tasks())
	}
}

func TestListClearAllDialog(t *testing.T) {
	v, store := newTestList(
		todo.Task{ID: 1, Title: "a"},
		todo.Task{ID: 2, Title: "b", Completed: true},
	)

	v.update(runeKey("C"))
	if !v.clearOpen {
		t.Fatal("clear dialog should be open")
	}
	v.update(typeKey(tea.KeyEsc))
	if v.clearOpen || len(store.Tasks()) != 2 {
		t.Fatal("esc should cancel the clear")
	}

	v.update(runeKey("C"))
	v.update(typeKey(tea.KeyEnter))
	if len(store.Tasks()) != 0 {
		t.Errorf("clear should empty the list, have %d", len(store.Tasks()))
	}
	if !strings.Contains(v.view(""), "0 item selected") {
		t.Error("count should reset to 0")
	}
}

func TestListView(t *testing.T) {
	v, _ := newTestList(
		todo.Task{ID: 1, Title: "Write report"},
		todo.Task{ID: 2, Title: "Walk dog", Description: "around the park", Completed: true},
	)

	view := v.view("")
	for _, want := range []string{
		"Daily To Do List",
		"Write report",
		"No Description",
		"Walk dog",
		"around the park",
		"1 item selected",
		"Clear All",
		"0/150",
		"0/500",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	if got := v.view("Loading tasks..."); !strings.Contains(got, "Loading tasks...") {
		t.Error("loading line not rendered")
	}
}

func TestListEscLeavesForm(t *testing.T) {
	v, _ := newTestList()
	v.update(runeKey("n"))
	v.update(typeKey(tea.KeyEsc))
	if v.focus != focusList {
		t.Errorf("esc should return focus to the list, focus = %v", v.focus)
	}
	if cmd := v.update(runeKey("q")); cmd == nil {
		t.Error("q on the list should quit")
	}
}
