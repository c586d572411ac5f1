package ledger

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process ledger. It starts empty and only grows until
// pruned.
type Memory struct {
	mu   sync.RWMutex
	keys map[string]time.Time
}

var _ Ledger = (*Memory)(nil)

// NewMemory creates an empty in-process ledger.
func NewMemory() *Memory {
	return &Memory{keys: make(map[string]time.Time)}
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.keys[key]
	return ok, nil
}

func (m *Memory) Claim(_ context.Context, key string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = at
	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

func (m *Memory) Prune(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, at := range m.keys {
		if at.Before(before) {
			delete(m.keys, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of remembered keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}

func (m *Memory) Close() error { return nil }
