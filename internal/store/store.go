// Package store provides durable local key-value storage for the cart.
package store

import (
	"context"
)

// KVStore is an interface for key-value storage operations.
// It abstracts the underlying medium, allowing for different implementations (e.g., file, sqlite, in-memory).
type KVStore interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the resources held by the store.
	Close() error
}

// Watcher is implemented by stores that can report changes made by other processes.
type Watcher interface {
	// Watch calls onChange every time the value under key may have changed on
	// the underlying medium. It blocks until ctx is cancelled.
	Watch(ctx context.Context, key string, onChange func()) error
}
