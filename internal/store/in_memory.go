package store

import (
	"context"
	"sync"

	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
)

// InMemory implements KVStore using an in-memory map.
type InMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewInMemoryStore creates a new, empty instance of InMemory.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		values: make(map[string][]byte),
	}
}

// Get retrieves the value stored under key.
func (s *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, carterrors.ErrStoreClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, carterrors.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (s *InMemory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return carterrors.ErrStoreClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}

// Delete removes key.
func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return carterrors.ErrStoreClosed
	}
	delete(s.values, key)
	return nil
}

// Close marks the store as closed; later calls fail with ErrStoreClosed.
func (s *InMemory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
