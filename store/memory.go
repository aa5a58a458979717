package store

import (
	"context"
	"sync"
)

type memoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemory returns a store that lives as long as the process.
func NewMemory(profile string) *Store {
	return newStore(KindMemory, profile, &memoryBackend{values: make(map[string]string)})
}

func (m *memoryBackend) get(_ context.Context, profile, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[profile+"\x00"+key]
	return v, ok, nil
}

func (m *memoryBackend) set(_ context.Context, profile, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[profile+"\x00"+key] = value
	return nil
}

func (m *memoryBackend) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
