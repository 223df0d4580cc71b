// Package persist defines the key-value blob store used by progression,
// missions, and achievements. Values are marshaled as JSON, so any
// implementation that can hold named byte blobs works: the in-memory store
// here for tests and ephemeral sessions, the sqlite-backed one in storage
// for real installs.
package persist

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Store loads and saves named JSON blobs.
type Store interface {
	// Load unmarshals the blob under key into v. Returns false with a nil
	// error when the key has never been saved.
	Load(key string, v any) (bool, error)

	// Save marshals v and stores it under key, replacing any prior value.
	Save(key string, v any) error
}

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(key string, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.blobs[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("persist: cannot decode %q: %w", key, err)
	}
	return true, nil
}

// Save implements Store.
func (m *Memory) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("persist: cannot encode %q: %w", key, err)
	}
	m.mu.Lock()
	m.blobs[key] = raw
	m.mu.Unlock()
	return nil
}
