// Package db defines the storage facade for the vocabulary service.
// Consumers depend on the narrow sub-interfaces, not on Store itself.
package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	HashStore
	HashUpdater
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based read operations. Writes go through
// HashUpdater so every write is a merge.
type HashStore interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// HashUpdater runs an optimistic read-modify-write cycle on a single hash
// key. The update callback receives the current fields (nil when the key
// does not exist) and returns the full field set to persist. The write only
// commits if the key was untouched since the read; on interference the
// cycle re-reads and retries.
type HashUpdater interface {
	HUpdate(
		ctx context.Context,
		key string,
		update func(current map[string]string) (map[string]string, error),
	) (map[string]string, error)
}
