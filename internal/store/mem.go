package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemStore is an in-memory Store used by tests and ephemeral runs. Values are
// round-tripped through JSON so it behaves like the file-backed store.
type MemStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string][]byte)}
}

// Get decodes the slot into the provided value.
func (s *MemStore) Get(key string, into any) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, ErrInvalidKey
	}
	s.mu.RLock()
	data, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

// Put stores the encoded value.
func (s *MemStore) Put(key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.slots[key] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the slot.
func (s *MemStore) Delete(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
	return nil
}

// PutRaw stores raw bytes without encoding. Tests use it to simulate
// corrupted slots.
func (s *MemStore) PutRaw(key string, data []byte) {
	s.mu.Lock()
	s.slots[key] = append([]byte(nil), data...)
	s.mu.Unlock()
}
