// Package cache provides the byte-oriented caches behind brooklin's remote
// lookups and rendered placements.
//
// All backends implement [Cache]:
//
//   - [MemoryCache]: bounded in-process LRU, the default for `brooklin serve`
//   - [FileCache]: JSON entries under the user cache directory, for the CLI
//   - [RedisCache]: shared cache for several server replicas
//   - [NullCache]: caching disabled
//
// A miss is not an error: Get reports it through the bool result. Keys are
// built with a [Keyer] so every backend sees the same key layout.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
// A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// expired reports whether an entry stamped with expiresAt is stale at now.
func expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && now.After(expiresAt)
}
