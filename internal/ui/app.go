// Package ui is the interactive terminal front end: the task list, the
// edit screen and the confirmation dialogs.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/daily/internal/todo"
)

// DefaultRedirectDelay is how long the edit screen shows its success
// message before returning to the list.
const DefaultRedirectDelay = time.Second

// Seeder loads starter tasks into an empty store. persist.Bridge
// satisfies it.
type Seeder interface {
	Seed(ctx context.Context) ([]todo.Task, error)
	ApplySeed(tasks []todo.Task)
}

// Deps are the collaborators the program drives.
type Deps struct {
	Store  todo.Store
	Seeder Seeder
	Logger *log.Logger
}

// Option configures the program.
type Option func(*appConfig)

type appConfig struct {
	redirectDelay time.Duration
	seed          bool
}

// WithRedirectDelay sets the pause between a successful edit and the
// return to the list.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *appConfig) {
		if d >= 0 {
			c.redirectDelay = d
		}
	}
}

// WithSeed makes the program fetch starter tasks when it starts.
func WithSeed(enabled bool) Option {
	return func(c *appConfig) {
		c.seed = enabled
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, deps Deps, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	app := NewApp(ctx, deps, opts...)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type screen int

const (
	screenList screen = iota
	screenEdit
)

// Navigation and timer messages.
type (
	openEditMsg   struct{ id int64 }
	backToListMsg struct{}
	redirectMsg   struct{ seq int }
	seedMsg       struct {
		tasks []todo.Task
		err   error
	}
)

func openEdit(id int64) tea.Cmd {
	return func() tea.Msg { return openEditMsg{id: id} }
}

func backToList() tea.Cmd {
	return func() tea.Msg { return backToListMsg{} }
}

func redirectAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return redirectMsg{seq: seq}
	})
}

// App is the root bubbletea model.
type App struct {
	ctx    context.Context
	deps   Deps
	cfg    appConfig
	logger *log.Logger

	screen  screen
	list    *listView
	edit    *editView
	editSeq int

	seeding bool
	spinner spinner.Model
	width   int
}

// NewApp builds the root model. Exported for tests and for embedding in
// other programs.
func NewApp(ctx context.Context, deps Deps, opts ...Option) *App {
	cfg := appConfig{redirectDelay: DefaultRedirectDelay}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return &App{
		ctx:     ctx,
		deps:    deps,
		cfg:     cfg,
		logger:  logger,
		screen:  screenList,
		list:    newListView(deps.Store),
		spinner: sp,
		seeding: cfg.seed && deps.Seeder != nil,
	}
}

func (a *App) Init() tea.Cmd {
	if !a.seeding {
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.seedCmd())
}

func (a *App) seedCmd() tea.Cmd {
	seeder := a.deps.Seeder
	ctx := a.ctx
	return func() tea.Msg {
		tasks, err := seeder.Seed(ctx)
		return seedMsg{tasks: tasks, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.list.setWidth(msg.Width)
		if a.edit != nil {
			a.edit.setWidth(msg.Width)
		}
		return a, nil
	case seedMsg:
		a.seeding = false
		if msg.err != nil {
			a.logger.Error("error fetching seed tasks", "err", msg.err)
			return a, nil
		}
		a.deps.Seeder.ApplySeed(msg.tasks)
		return a, nil
	case spinner.TickMsg:
		if !a.seeding {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case openEditMsg:
		a.editSeq++
		a.edit = newEditView(a.deps.Store, msg.id, a.cfg.redirectDelay, a.editSeq)
		a.edit.setWidth(a.width)
		a.screen = screenEdit
		return a, a.edit.init()
	case backToListMsg:
		a.showList()
		return a, nil
	case redirectMsg:
		// Only the edit session that scheduled the redirect may fire it.
		if a.screen == screenEdit && a.edit != nil && a.edit.seq == msg.seq {
			a.showList()
		}
		return a, nil
	}

	if a.screen == screenEdit && a.edit != nil {
		return a, a.edit.update(msg)
	}
	return a, a.list.update(msg)
}

func (a *App) showList() {
	a.screen = screenList
	a.edit = nil
}

func (a *App) View() string {
	if a.screen == screenEdit && a.edit != nil {
		return a.edit.view()
	}
	loading := ""
	if a.seeding {
		loading = a.spinner.View() + " Loading tasks..."
	}
	return a.list.view(loading)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
