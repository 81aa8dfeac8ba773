package session

import "context"

// Store is the minimal key-value capability set the session layer needs
// from a storage backend. Implementations must be safe for concurrent use.
//
// Two concrete backends ship with the package: MemoryStore (ephemeral,
// bound to the process lifetime) and FileStore (durable across restarts).
// RedisStore covers server-side embedders that want durable storage without
// a writable filesystem.
type Store interface {
	// Set creates or replaces the value under key.
	Set(ctx context.Context, key string, data []byte) error

	// Get retrieves the value under key.
	// Returns ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
