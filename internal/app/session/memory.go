package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the session blob in process memory. It does not survive restarts
// and backs tests and the "memory" backend.
type MemoryStore struct {
	mu   sync.RWMutex
	blob []byte
	set  bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save implements Store. The blob is copied.
func (m *MemoryStore) Save(_ context.Context, blob []byte) error {
	cp := append([]byte(nil), blob...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = cp
	m.set = true
	return nil
}

// Load implements Store. The returned blob is a copy.
func (m *MemoryStore) Load(_ context.Context) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.set {
		return nil, false, nil
	}
	return append([]byte(nil), m.blob...), true, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = nil
	m.set = false
	return nil
}
