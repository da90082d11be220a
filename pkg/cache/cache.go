// Package cache provides the caching layer for classification results.
//
// Classifying a relation set is pure and deterministic, so results are
// cached by the hash of the canonical relation-set JSON: the same input
// always maps to the same key and the entry never goes stale (TTLs exist
// to bound storage, not for correctness).
//
// Backends:
//   - [FileCache]: sha-sharded JSON files, used by the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTLs.
// Implementations must treat a missing or expired key as a miss, not an
// error.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never
	// expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
