// Package storage provides the durable flat key-value store backing board
// persistence.
package storage

import "context"

// Store is a flat string-keyed store. One reserved key holds the serialized
// board; a reset clears it. Implementations must tolerate absent keys.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
