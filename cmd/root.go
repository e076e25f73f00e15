// Package cmd implements the CLI command structure for daily.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nibzard/daily/internal/config"
	"github.com/nibzard/daily/internal/logging"
	"github.com/nibzard/daily/internal/statedir"
	"github.com/nibzard/daily/internal/todo"
	"github.com/nibzard/daily/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the daily CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("daily", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand means the interactive list
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, remainingArgs)
	case "toggle", "done":
		return toggleCommand(ctx, cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(ctx, cfg, remainingArgs)
	case "edit":
		return editCommand(ctx, cfg, remainingArgs)
	case "clear":
		return clearCommand(ctx, cfg, remainingArgs)
	case "path":
		return pathCommand(cfg)
	case "config":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	case "log", "tail":
		return logCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (try 'daily ls')")
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	needsSeed, err := s.restore()
	if err != nil {
		return err
	}

	return ui.Run(ctx, ui.Deps{
		Store:  s.list,
		Seeder: s.bridge,
		Logger: s.logger(),
	},
		ui.WithRedirectDelay(cfg.RedirectDelay()),
		ui.WithSeed(needsSeed),
	)
}

// lsCommand prints the task list.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("daily ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print the list as JSON")
	verbose := fs.Bool("v", false, "Show descriptions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := startSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks := s.list.Tasks()
	if *asJSON {
		data, err := todo.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	printTaskList(stdout, tasks, *verbose)
	return nil
}

// addCommand creates a task from the command line.
func addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("daily add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	description := fs.String("description", "", "Task description")
	fs.StringVar(description, "d", "", "Task description (shorthand)")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	draft := todo.Draft{Title: strings.Join(rest, " "), Description: *description}
	if err := todo.ValidateDraft(draft).Err(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	s, err := startSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	task := todo.NewTask(todo.NewID(s.list.Tasks(), s.now()), draft)
	s.list.Add(task)
	if err := s.saved(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Added %d: %s\n", task.ID, task.Title)
	return nil
}

// toggleCommand flips the completion flag of a task.
func toggleCommand(ctx context.Context, cfg *config.Config, args []string) error {
	id, err := singleID("toggle", args)
	if err != nil {
		return err
	}

	s, err := startSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, ok := s.list.Get(id); !ok {
		return taskNotFound(id)
	}
	s.list.Toggle(id)
	if err := s.saved(); err != nil {
		return err
	}
	task, _ := s.list.Get(id)
	fmt.Fprintln(stdout, task.String())
	return nil
}

// rmCommand removes a task.
func rmCommand(ctx context.Context, cfg *config.Config, args []string) error {
	id, err := singleID("rm", args)
	if err != nil {
		return err
	}

	s, err := startSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, ok := s.list.Get(id); !ok {
		return taskNotFound(id)
	}
	s.list.Remove(id)
	if err := s.saved(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Removed %d\n", id)
	return nil
}

// editCommand changes the title and/or description of a task.
func editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("daily edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	id, err := singleID("edit", rest)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["title"] && !set["description"] {
		return errors.New("edit: nothing to change (use --title and/or --description)")
	}

	s, err := startSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	task, ok := s.list.Get(id)
	if !ok {
		return taskNotFound(id)
	}
	draft := todo.Draft{Title: task.Title, Description: task.Description}
	if set["title"] {
		draft.Title = *title
	}
	if set["description"] {
		draft.Description = *description
	}
	if err := todo.ValidateDraft(draft).Err(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	s.list.Update(task.Apply(draft))
	if err := s.saved(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Task successfully updated!")
	return nil
}

// clearCommand removes every task after explicit confirmation.
func clearCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("daily clear", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("yes", false, "Confirm clearing all tasks")
	fs.BoolVar(yes, "y", false, "Confirm clearing all tasks (shorthand)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return errors.New("refusing to clear all tasks without --yes")
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	// Restore only: clearing must not trigger a seed fetch first.
	if _, err := s.restore(); err != nil {
		return err
	}
	s.list.Clear()
	if err := s.saved(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Cleared all tasks")
	return nil
}

// pathCommand prints where daily keeps its state.
func pathCommand(cfg *config.Config) error {
	configFile := cfg.ConfigFile
	if configFile == "" {
		configFile = "(none)"
	}
	fmt.Fprintf(stdout, "State dir: %s\n", cfg.StateDir)
	fmt.Fprintf(stdout, "Storage:   %s (%s)\n", cfg.Storage, statedir.MirrorPath(cfg.StateDir, cfg.Storage, mirrorKey))
	fmt.Fprintf(stdout, "Log file:  %s\n", logPath(cfg))
	fmt.Fprintf(stdout, "Config:    %s\n", configFile)
	return nil
}

// logCommand prints the log file.
func logCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("daily log", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := logPath(cfg)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(stdout, "No log file found.")
		return nil
	}
	if *follow {
		fmt.Fprintf(stderr, "Tailing: %s (Ctrl+C to stop)\n", path)
	}
	return logging.TailLog(ctx, stdout, path, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "daily version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "daily - a terminal to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  daily [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                     Open the interactive list (default command)")
	fmt.Fprintln(w, "  ls [-v] [--json]        Print the task list")
	fmt.Fprintln(w, "  add [-d text] <title>   Add a task")
	fmt.Fprintln(w, "  toggle <id>             Mark a task done or not done")
	fmt.Fprintln(w, "  rm <id>                 Delete a task")
	fmt.Fprintln(w, "  edit <id> [--title t] [--description d]")
	fmt.Fprintln(w, "                          Change a task")
	fmt.Fprintln(w, "  clear --yes             Delete every task")
	fmt.Fprintln(w, "  path                    Show state, storage and log locations")
	fmt.Fprintln(w, "  config                  Print an example configuration file")
	fmt.Fprintln(w, "  log [-n N] [-f]         Print the log file")
	fmt.Fprintln(w, "  version                 Show version information")
	fmt.Fprintln(w, "  help                    Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
}

// printTaskList prints tasks in store order followed by the completed count.
func printTaskList(w io.Writer, tasks []todo.Task, verbose bool) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, t.String())
		if verbose {
			description := t.Description
			if description == "" {
				description = "No Description"
			}
			fmt.Fprintf(w, "      %s\n", description)
		}
	}
	fmt.Fprintf(w, "\n%d item selected\n", todo.CountCompleted(tasks))
}

// parseInterspersed parses fs while allowing flags after positional
// arguments, and returns the positional arguments in order. Everything
// after the first "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var tail []string
	for i, arg := range args {
		if arg == "--" {
			tail = args[i+1:]
			args = args[:i]
			break
		}
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return append(positional, tail...), nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func singleID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected exactly one task id, got %d arguments", command, len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid task id %q", command, args[0])
	}
	return id, nil
}

func taskNotFound(id int64) error {
	return fmt.Errorf("task %d not found", id)
}

func logPath(cfg *config.Config) string {
	return filepath.Join(cfg.LogDir(), logging.FileName)
}
