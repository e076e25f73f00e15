// Package persist mirrors the task store into durable key-value storage
// and restores it (or seeds it from a remote source) at startup.
package persist

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/daily/internal/kv"
	"github.com/nibzard/daily/internal/todo"
)

// DefaultKey is the storage key that holds the task list.
const DefaultKey = "todos"

// Fetcher supplies seed tasks when no durable copy exists.
type Fetcher interface {
	Fetch(ctx context.Context) ([]todo.Task, error)
}

// RestoreResult tells the caller what Restore found.
type RestoreResult int

const (
	// Restored means the durable copy was loaded into the store.
	Restored RestoreResult = iota
	// NeedsSeed means no usable durable copy exists.
	NeedsSeed
)

func (r RestoreResult) String() string {
	if r == Restored {
		return "restored"
	}
	return "needs-seed"
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(b *Bridge) {
		b.key = key
	}
}

// WithLogger sets the logger used for storage and seed diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bridge is the only component that reads or writes the durable mirror.
//
// Every change that alters the list is written through, including a
// removal that empties it: the mirror then holds an empty list rather
// than keeping the last task, so a deleted task never comes back on the
// next start. Clearing the list deletes the mirror instead, which lets
// the next start seed again.
type Bridge struct {
	store       todo.Store
	kv          kv.Store
	fetcher     Fetcher
	logger      *log.Logger
	key         string
	unsubscribe func()
	err         error
}

// New returns a bridge between store and storage. fetcher may be nil, in
// which case seeding always fails.
func New(store todo.Store, storage kv.Store, fetcher Fetcher, opts ...Option) *Bridge {
	b := &Bridge{
		store:   store,
		kv:      storage,
		fetcher: fetcher,
		logger:  log.New(io.Discard),
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the storage key of the mirror.
func (b *Bridge) Key() string {
	return b.key
}

// Err returns the storage error of the most recent change, or nil if it
// was mirrored. It is reset by every change that alters the list.
func (b *Bridge) Err() error {
	return b.err
}

// Attach subscribes the bridge to store changes. Calling it twice is a no-op.
func (b *Bridge) Attach() {
	if b.unsubscribe != nil {
		return
	}
	b.unsubscribe = b.store.Subscribe(b.onChange)
}

// Detach stops mirroring store changes.
func (b *Bridge) Detach() {
	if b.unsubscribe == nil {
		return
	}
	b.unsubscribe()
	b.unsubscribe = nil
}

// Restore loads the durable copy into the store. A malformed copy is
// logged and deleted, and reported as NeedsSeed.
func (b *Bridge) Restore() (RestoreResult, error) {
	data, ok, err := b.kv.Get(b.key)
	if err != nil {
		return NeedsSeed, fmt.Errorf("read %s: %w", b.key, err)
	}
	if !ok {
		b.logger.Debug("no durable task list", "key", b.key)
		return NeedsSeed, nil
	}

	tasks, err := todo.Decode(data)
	if err != nil {
		b.logger.Warn("discarding malformed task list", "key", b.key, "err", err)
		if err := b.kv.Delete(b.key); err != nil {
			b.logger.Error("failed to delete malformed task list", "key", b.key, "err", err)
		}
		return NeedsSeed, nil
	}

	b.store.ReplaceAll(tasks)
	b.logger.Debug("restored task list", "key", b.key, "count", len(tasks))
	return Restored, nil
}

// Seed fetches the starter tasks. It does not touch the store.
func (b *Bridge) Seed(ctx context.Context) ([]todo.Task, error) {
	if b.fetcher == nil {
		return nil, errors.New("no seed source configured")
	}
	tasks, err := b.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	b.logger.Info("fetched seed tasks", "count", len(tasks))
	return tasks, nil
}

// ApplySeed loads seeded tasks into the store and mirrors them. Tasks
// already in the store, such as ones added while the fetch was running,
// are kept after the seeded ones; a seeded task whose ID is taken is
// dropped.
func (b *Bridge) ApplySeed(tasks []todo.Task) {
	b.Attach()
	existing := b.store.Tasks()
	if len(existing) == 0 {
		b.store.ReplaceAll(tasks)
		return
	}

	taken := make(map[int64]bool, len(existing))
	for _, t := range existing {
		taken[t.ID] = true
	}
	merged := make([]todo.Task, 0, len(tasks)+len(existing))
	for _, t := range tasks {
		if !taken[t.ID] {
			merged = append(merged, t)
		}
	}
	b.store.ReplaceAll(append(merged, existing...))
}

// Start attaches the bridge, restores the durable copy, and seeds the
// store when none exists. Seed failures are logged and leave the store
// empty; only storage read failures are returned.
func (b *Bridge) Start(ctx context.Context) error {
	b.Attach()

	result, err := b.Restore()
	if err != nil {
		return err
	}
	if result == Restored {
		return nil
	}

	tasks, err := b.Seed(ctx)
	if err != nil {
		b.logger.Error("error fetching seed tasks", "err", err)
		return nil
	}
	b.ApplySeed(tasks)
	return nil
}

func (b *Bridge) onChange(c todo.Change) {
	if !c.Changed {
		return
	}
	b.err = nil

	switch {
	case c.Op == todo.OpClear:
		if err := b.kv.Delete(b.key); err != nil {
			b.logger.Error("failed to delete task list", "key", b.key, "err", err)
			b.err = fmt.Errorf("delete %s: %w", b.key, err)
			return
		}
		b.logger.Debug("deleted task list", "key", b.key)
	case len(c.Tasks) > 0, c.Op == todo.OpRemove:
		b.err = b.write(c.Op, c.Tasks)
	}
}

func (b *Bridge) write(op todo.Op, tasks []todo.Task) error {
	data, err := todo.Encode(tasks)
	if err != nil {
		b.logger.Error("failed to encode task list", "op", op, "err", err)
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	if err := b.kv.Set(b.key, data); err != nil {
		b.logger.Error("failed to write task list", "key", b.key, "op", op, "err", err)
		return fmt.Errorf("write %s: %w", b.key, err)
	}
	b.logger.Debug("wrote task list", "key", b.key, "op", op, "count", len(tasks))
	return nil
}
