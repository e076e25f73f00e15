// Package kv provides the durable key-value storage that backs the task
// list mirror.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nibzard/daily/internal/statedir"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = statedir.DBFile

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store is closed")

// Store is a minimal durable key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set overwrites the value for key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, SQLiteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", backend)
	}
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
