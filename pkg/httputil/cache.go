package httputil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brooklinpub/brooklin/pkg/cache"
)

// Cache stores JSON-marshalable values in a byte cache under HTTP keys.
// Every entry gets the same TTL; a TTL of 0 means entries never expire.
//
// Use [Cache.Namespace] to create scoped views that prefix keys:
//
//	all := c.Namespace("specials:")
//	all.Set(ctx, "active", list)  // key "http:specials::active"
type Cache struct {
	backend cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	prefix  string
}

// NewCache wraps backend. A nil backend disables caching.
func NewCache(backend cache.Cache, ttl time.Duration) *Cache {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Cache{backend: backend, keyer: cache.NewDefaultKeyer(), ttl: ttl}
}

// WithKeyer returns a copy of c that builds keys with k, e.g. a
// cache.ScopedKeyer shared with other deployments.
func (c *Cache) WithKeyer(k cache.Keyer) *Cache {
	cp := *c
	cp.keyer = k
	return &cp
}

// TTL returns the time-to-live applied by Set.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get loads key into v. It reports a miss as (false, nil); an entry that no
// longer decodes is also a miss.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := c.backend.Get(ctx, c.key(key))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.backend.Delete(ctx, c.key(key))
		return false, nil
	}
	return true, nil
}

// Set stores v under key.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, c.key(key), data, c.ttl)
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, c.key(key))
}

// Namespace returns a view of c whose keys are prefixed with prefix.
// Namespaces nest: c.Namespace("a:").Namespace("b:") uses "a:b:".
func (c *Cache) Namespace(prefix string) *Cache {
	cp := *c
	cp.prefix = c.prefix + prefix
	return &cp
}

func (c *Cache) key(key string) string {
	return c.keyer.HTTPKey(c.prefix, key)
}
