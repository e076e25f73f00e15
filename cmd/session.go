package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/daily/internal/config"
	"github.com/nibzard/daily/internal/kv"
	"github.com/nibzard/daily/internal/logging"
	"github.com/nibzard/daily/internal/persist"
	"github.com/nibzard/daily/internal/seed"
	"github.com/nibzard/daily/internal/todo"
)

const mirrorKey = persist.DefaultKey

// openStorage opens the configured backend, replaced in tests.
var openStorage = kv.Open

// session wires one process worth of state: the log file, the storage
// backend, the task list and the bridge between them.
type session struct {
	cfg     *config.Config
	logs    *logging.RunLogger
	storage kv.Store
	list    *todo.List
	bridge  *persist.Bridge
	seeding bool
	now     func() time.Time
}

// openSession opens logging and storage. The bridge is not attached yet.
func openSession(cfg *config.Config) (*session, error) {
	if err := os.MkdirAll(cfg.StateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	logs, err := logging.Open(cfg.LogDir(), logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Prefix:     "daily",
	})
	if err != nil {
		return nil, err
	}

	storage, err := openStorage(cfg.Storage, cfg.StateDir)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	var fetcher persist.Fetcher
	if cfg.SeedCount > 0 {
		client := seed.New(cfg.SeedURL)
		client.Limit = cfg.SeedCount
		client.HTTPClient.Timeout = cfg.SeedTimeout()
		fetcher = client
	}

	list := todo.NewList()
	s := &session{
		cfg:     cfg,
		logs:    logs,
		storage: storage,
		list:    list,
		bridge:  persist.New(list, storage, fetcher, persist.WithKey(mirrorKey), persist.WithLogger(logs.Logger)),
		seeding: fetcher != nil,
		now:     time.Now,
	}
	logs.Logger.Debug("session opened", "storage", cfg.Storage, "state_dir", cfg.StateDir)
	return s, nil
}

// startSession opens a session and brings the list up to date: restored
// from storage, or seeded when nothing is stored.
func startSession(ctx context.Context, cfg *config.Config) (*session, error) {
	s, err := openSession(cfg)
	if err != nil {
		return nil, err
	}
	if !s.seeding {
		if _, err := s.restore(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	}
	if err := s.bridge.Start(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// restore attaches the bridge and loads the stored list. It reports
// whether the caller should seed.
func (s *session) restore() (bool, error) {
	s.bridge.Attach()
	result, err := s.bridge.Restore()
	if err != nil {
		return false, err
	}
	return result == persist.NeedsSeed && s.seeding, nil
}

// saved returns the storage error of the last change, if any.
func (s *session) saved() error {
	if err := s.bridge.Err(); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (s *session) logger() *log.Logger {
	return s.logs.Logger
}

// Close detaches the bridge and releases storage and the log file.
func (s *session) Close() error {
	s.bridge.Detach()
	err := s.storage.Close()
	if cerr := s.logs.Close(); err == nil {
		err = cerr
	}
	return err
}
