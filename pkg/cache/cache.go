// Package cache stores rendered artifacts keyed by content hash.
//
// The CLI renders the same graph with the same options repeatedly while a
// figure is being tuned; caching the output bytes skips the render and the
// rsvg-convert round trip. [FileCache] keeps entries under the user cache
// directory and [NullCache] disables caching (--no-cache).
//
// Cache lookups report through the hooks in
// [github.com/matzehuels/casegraph/pkg/observability].
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
