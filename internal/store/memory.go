package store

import (
	"context"
	"sync"
)

// MemoryKV is a KVStore held entirely in memory. It backs ephemeral runs and
// tests.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KVStore.Get.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, NewStoreError("kv", "get", "context done", err)
	}
	if key == "" {
		return "", false, NewStoreError("kv", "get", "key is empty", ErrInvalidKey)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, NewStoreError("kv", "get", "backend unavailable", ErrClosed)
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KVStore.Set.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return NewStoreError("kv", "set", "context done", err)
	}
	if key == "" {
		return NewStoreError("kv", "set", "key is empty", ErrInvalidKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return NewStoreError("kv", "set", "backend unavailable", ErrClosed)
	}
	m.data[key] = value
	return nil
}

// Close implements KVStore.Close. Further calls fail with ErrClosed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
