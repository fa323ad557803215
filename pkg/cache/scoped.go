package cache

// ScopedKeyer prefixes every key from an inner Keyer. The server uses one
// scope per deployment so several sites can share a Redis instance:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "site:brooklin:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey returns the prefixed HTTP response key.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// PlacementKey returns the prefixed placement key.
func (k *ScopedKeyer) PlacementKey(opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(opts)
}
