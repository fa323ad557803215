package cache

import "fmt"

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs give equal keys.
type Keyer interface {
	// HTTPKey keys a raw API response, e.g. HTTPKey("specials:", "active").
	HTTPKey(namespace, key string) string

	// PlacementKey keys a rendered placement.
	PlacementKey(opts PlacementKeyOpts) string
}

// PlacementKeyOpts identifies one placement render.
type PlacementKeyOpts struct {
	Count    int     `json:"count"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	PathHash string  `json:"path_hash"` // Hash of the curve path data; empty for the default curve
	Format   string  `json:"format"`    // "svg" or "json"
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// PlacementKey hashes every option so that any change yields a new key.
func (DefaultKeyer) PlacementKey(opts PlacementKeyOpts) string {
	return hashKey("placement", opts)
}
