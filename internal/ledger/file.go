package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/storage"
)

// File is a ledger persisted as a JSON object of key -> delivery time.
// Claims are serialized in-process only; it assumes a single dispatcher
// process.
type File struct {
	path string

	mu   sync.Mutex
	keys map[string]time.Time
}

var _ Ledger = (*File)(nil)

// OpenFile loads the ledger at path, dropping keys older than retention.
// A missing file is an empty ledger; a corrupt one is backed up and reset.
func OpenFile(path string, retention time.Duration, now time.Time) (*File, error) {
	f := &File{path: path, keys: make(map[string]time.Time)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("ledger error reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &f.keys); err != nil {
		if _, err := storage.BackupCorrupt(path); err != nil {
			return nil, fmt.Errorf("ledger %s is corrupt: %w", path, err)
		}
		f.keys = make(map[string]time.Time)
		return f, nil
	}
	if f.keys == nil {
		f.keys = make(map[string]time.Time)
	}

	cutoff := now.Add(-retention)
	for k, at := range f.keys {
		if at.Before(cutoff) {
			delete(f.keys, k)
		}
	}
	return f, nil
}

func (f *File) Seen(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok, nil
}

// Claim persists the key before reporting success. A key that could not be
// written is not kept.
func (f *File) Claim(_ context.Context, key string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.keys[key] = at
	if err := f.saveLocked(); err != nil {
		delete(f.keys, key)
		return false, err
	}
	return true, nil
}

func (f *File) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; !ok {
		return nil
	}
	delete(f.keys, key)
	return f.saveLocked()
}

func (f *File) Prune(_ context.Context, before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k, at := range f.keys {
		if at.Before(before) {
			delete(f.keys, k)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, f.saveLocked()
}

func (f *File) Close() error { return nil }

func (f *File) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("ledger error creating directories: %w", err)
	}
	data, err := json.MarshalIndent(f.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("ledger error marshalling JSON: %w", err)
	}
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("ledger error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ledger error renaming temp file: %w", err)
	}
	return nil
}
