// Package cache provides pluggable byte caches used to memoize derived
// graphs.
//
// Transitive closure and reduction cost O(V*(V+E)); for graphs that are
// re-processed often (CI pipelines re-checking the same dependency set) the
// pipeline caches the serialized result keyed by a content hash of the input
// graph and the transform name. Because keys are content-addressed, stale
// entries are impossible - any change to the input produces a new key.
//
// Three backends are provided:
//   - [FileCache]: per-user cache directory for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is the minimal byte-cache contract shared by all backends.
// Implementations must treat a missing key as (nil, false, nil), not as an
// error.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TransformKey builds the content-addressed key for a derived graph:
// the transform name scoped over a hash of the serialized input.
func TransformKey(transform string, input []byte) string {
	return "transform:" + transform + ":" + Hash(input)
}
