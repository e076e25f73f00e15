// Package logging sets up the structured log file and tails it.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is the log file created inside the log directory.
const FileName = "daily.log"

// Options configures the logger.
type Options struct {
	Level      string
	Format     string
	Timestamps bool
	Prefix     string
}

// RunLogger owns the log file for one process.
type RunLogger struct {
	Dir     string
	LogPath string
	Logger  *log.Logger
	file    *os.File
}

// Open creates dir if needed and appends to its log file. The terminal
// belongs to the UI, so logs always go to the file.
func Open(dir string, opts Options) (*RunLogger, error) {
	if dir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(dir, FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &RunLogger{
		Dir:     dir,
		LogPath: logPath,
		Logger:  New(file, opts),
		file:    file,
	}, nil
}

// Close closes the log file.
func (r *RunLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
	})
}

// ParseLevel converts a string log level to log.Level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter converts a string format to log.Formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// TailLog copies the log at path to w. When n > 0 only roughly the last n
// lines are shown. With follow set it keeps copying new data until ctx is
// done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// tailSeek seeks to a position that shows approximately the last n lines.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 100

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	size := stat.Size()
	if size < avgLineLength*int64(n) {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}

	offset := size - int64(n*avgLineLength)
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	// Discard the partial first line
	buf := make([]byte, 1)
	for {
		if _, err := file.Read(buf); err != nil {
			return nil
		}
		if buf[0] == '\n' {
			return nil
		}
	}
}
