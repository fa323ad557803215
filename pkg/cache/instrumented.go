package cache

import (
	"context"
	"strings"
	"time"

	"github.com/brooklinpub/brooklin/pkg/observability"
)

// Instrumented reports hits, misses and writes of an inner cache to the
// registered observability.CacheHooks. The key type is the key up to its
// first colon ("http", "placement", ...).
type Instrumented struct {
	Cache
}

// Instrument wraps c.
func Instrument(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

// Get retrieves a value and records a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

// Set stores a value and records the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func keyType(key string) string {
	// Scoped keys carry their scope first; the type is the last segment
	// before the payload.
	for _, t := range []string{"http", "placement"} {
		if strings.HasPrefix(key, t+":") || strings.Contains(key, ":"+t+":") {
			return t
		}
	}
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}

var _ Cache = (*Instrumented)(nil)
