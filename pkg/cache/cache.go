// Package cache stores pipeline artifacts between runs.
//
// Normalizing a composition and binding a circuit are pure, so their
// results can be memoized: the [Keyer] turns composition identities,
// binding options, and render formats into deterministic SHA-256 keys, and
// a [Cache] stores the encoded artifacts under them. [NewMemoryCache]
// backs a single process, [NewFileCache] persists across CLI invocations,
// and [NewNullCache] disables caching without branching at call sites.
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact kind. Keys are content-addressed, so entries
// never go stale; the TTLs only bound how long unused entries occupy disk.
const (
	// TTLDiagram is how long normalized diagrams are kept.
	TTLDiagram = 30 * 24 * time.Hour

	// TTLCircuit is how long bound circuits are kept.
	TTLCircuit = 30 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are kept. These are the
	// largest entries, so they expire sooner.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface for memoized artifacts.
type Cache interface {
	// Get retrieves the data stored under key. The second return reports
	// whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a single entry. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources. The cache is unusable afterwards.
	Close() error
}
