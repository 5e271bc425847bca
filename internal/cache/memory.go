package cache

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. It backs tests and embedders that
// do not want persistence; ids and tokens are regenerated on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// LoadString returns the value stored under key, or ErrNotFound.
func (s *MemoryStore) LoadString(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// StoreString persists value under key.
func (s *MemoryStore) StoreString(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
