package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/daily/internal/todo"
)

type fakeSeeder struct {
	store   todo.Store
	tasks   []todo.Task
	err     error
	applied bool
}

func (f *fakeSeeder) Seed(ctx context.Context) ([]todo.Task, error) {
	return f.tasks, f.err
}

func (f *fakeSeeder) ApplySeed(tasks []todo.Task) {
	f.applied = true
	f.store.ReplaceAll(tasks)
}

func newTestApp(t *testing.T, tasks ...todo.Task) (*App, *todo.List) {
	t.Helper()
	store := todo.NewList()
	store.ReplaceAll(tasks)
	app := NewApp(context.Background(), Deps{Store: store}, WithRedirectDelay(time.Millisecond))
	return app, store
}

// send feeds msg to the app and returns the resulting command.
func send(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func TestAppEditSavesAndRedirects(t *testing.T) {
	app, store := newTestApp(t, todo.Task{ID: 1, Title: "old", Description: "d"})

	send(app, openEditMsg{id: 1})
	if app.screen != screenEdit {
		t.Fatal("expected edit screen")
	}
	if app.edit.title.Value() != "old" || app.edit.description.Value() != "d" {
		t.Errorf("edit form not prefilled: %q %q", app.edit.title.Value(), app.edit.description.Value())
	}

	app.edit.title.SetValue("  new title ")
	cmd := send(app, typeKey(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatal("save should schedule a redirect")
	}

	got, _ := store.Get(1)
	if got.Title != "new title" || got.Description != "d" {
		t.Errorf("task not updated: %+v", got)
	}
	if !strings.Contains(app.View(), "Task successfully updated!") {
		t.Error("success message not shown")
	}

	msg := cmd()
	if _, ok := msg.(redirectMsg); !ok {
		t.Fatalf("expected redirectMsg, got %T", msg)
	}
	send(app, msg)
	if app.screen != screenList {
		t.Error("redirect should return to the list")
	}
}

func TestAppStaleRedirectIgnored(t *testing.T) {
	app, _ := newTestApp(t, todo.Task{ID: 1, Title: "a"})

	send(app, openEditMsg{id: 1})
	stale := app.edit.seq
	send(app, typeKey(tea.KeyEsc))
	send(app, backToListMsg{})
	send(app, openEditMsg{id: 1})

	send(app, redirectMsg{seq: stale})
	if app.screen != screenEdit {
		t.Error("a redirect from an earlier edit session must not leave the current one")
	}
}

func TestAppEditValidation(t *testing.T) {
	app, store := newTestApp(t, todo.Task{ID: 1, Title: "keep"})
	send(app, openEditMsg{id: 1})

	app.edit.title.SetValue(strings.Repeat("x", todo.TitleMaxLength+1))
	if cmd := send(app, typeKey(tea.KeyEnter)); cmd != nil {
		t.Error("invalid save must not redirect")
	}
	if got, _ := store.Get(1); got.Title != "keep" {
		t.Errorf("store changed on invalid save: %+v", got)
	}
	if !strings.Contains(app.View(), todo.MsgTitleTooLong) {
		t.Error("length message not shown")
	}

	app.edit.title.SetValue("")
	send(app, typeKey(tea.KeyCtrlS))
	if !strings.Contains(app.View(), todo.MsgTitleRequired) {
		t.Error("required message not shown")
	}
	if app.screen != screenEdit {
		t.Error("validation failure must not navigate")
	}
}

func TestAppEditNotFound(t *testing.T) {
	app, _ := newTestApp(t, todo.Task{ID: 1, Title: "a"})

	send(app, openEditMsg{id: 99})
	view := app.View()
	if !strings.Contains(view, "Task not found") || !strings.Contains(view, "Go Back") {
		t.Fatalf("not-found state not rendered:\n%s", view)
	}

	cmd := send(app, typeKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("Go Back should navigate")
	}
	send(app, cmd())
	if app.screen != screenList {
		t.Error("expected list screen after Go Back")
	}
}

func TestAppEditTaskRemovedBeforeSave(t *testing.T) {
	app, store := newTestApp(t, todo.Task{ID: 1, Title: "a"})
	send(app, openEditMsg{id: 1})

	store.Remove(1)
	if cmd := send(app, typeKey(tea.KeyCtrlS)); cmd != nil {
		t.Error("save of a vanished task must not redirect")
	}
	if !strings.Contains(app.View(), "Task not found") {
		t.Error("expected not-found state")
	}
	if len(store.Tasks()) != 0 {
		t.Error("save must not recreate the task")
	}
}

func TestAppEditEscCancels(t *testing.T) {
	app, store := newTestApp(t, todo.Task{ID: 1, Title: "a"})
	send(app, openEditMsg{id: 1})
	app.edit.title.SetValue("changed")

	cmd := send(app, typeKey(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc should navigate back")
	}
	send(app, cmd())
	if app.screen != screenList {
		t.Error("expected list screen")
	}
	if got, _ := store.Get(1); got.Title != "a" {
		t.Errorf("cancel must not save, got %+v", got)
	}
}

func TestAppSeed(t *testing.T) {
	store := todo.NewList()
	seeder := &fakeSeeder{store: store, tasks: []todo.Task{{ID: 1, Title: "seeded"}}}
	app := NewApp(context.Background(), Deps{Store: store, Seeder: seeder}, WithSeed(true))

	if app.Init() == nil {
		t.Fatal("Init should start the seed fetch")
	}
	if !strings.Contains(app.View(), "Loading tasks...") {
		t.Error("loading indicator not shown while seeding")
	}

	msg := app.seedCmd()()
	send(app, msg)

	if !seeder.applied || len(store.Tasks()) != 1 {
		t.Fatalf("seed not applied, applied=%v len=%d", seeder.applied, len(store.Tasks()))
	}
	view := app.View()
	if strings.Contains(view, "Loading tasks...") || !strings.Contains(view, "seeded") {
		t.Errorf("view not updated after seed:\n%s", view)
	}
}

func TestAppSeedFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	store := todo.NewList()
	seeder := &fakeSeeder{store: store, err: errors.New("network down")}
	app := NewApp(context.Background(), Deps{Store: store, Seeder: seeder, Logger: log.New(&buf)}, WithSeed(true))

	send(app, app.seedCmd()())

	if seeder.applied || len(store.Tasks()) != 0 {
		t.Error("failed seed must leave the store empty")
	}
	if !strings.Contains(buf.String(), "error fetching seed tasks") {
		t.Errorf("seed failure not logged: %q", buf.String())
	}
	if app.seeding {
		t.Error("seeding flag should clear after failure")
	}
}

func TestAppWithoutSeed(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Init() != nil {
		t.Error("Init should do nothing when seeding is off")
	}
}

func TestAppWindowSize(t *testing.T) {
	app, _ := newTestApp(t, todo.Task{ID: 1, Title: strings.Repeat("long ", 40)})
	send(app, tea.WindowSizeMsg{Width: 40, Height: 20})
	if app.width != 40 || app.list.width != 40 {
		t.Errorf("width not propagated: app=%d list=%d", app.width, app.list.width)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

func TestAppEditNotFoundKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      tea.KeyMsg
		wantBack bool
		wantQuit bool
	}{
		{"esc goes back", typeKey(tea.KeyEsc), true, false},
		{"b goes back", runeKey("b"), true, false},
		{"q quits", runeKey("q"), false, true},
		{"other keys are ignored", runeKey("x"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			send(app, openEditMsg{id: 42})

			cmd := send(app, tt.key)
			if cmd == nil {
				if tt.wantBack || tt.wantQuit {
					t.Fatal("expected a command")
				}
				return
			}
			msg := cmd()
			if _, ok := msg.(backToListMsg); ok != tt.wantBack {
				t.Errorf("back = %v, want %v (msg %T)", ok, tt.wantBack, msg)
			}
			if _, ok := msg.(tea.QuitMsg); ok != tt.wantQuit {
				t.Errorf("quit = %v, want %v (msg %T)", ok, tt.wantQuit, msg)
			}
		})
	}
}
