// Package cache stores export artifacts keyed by content hash.
//
// # Overview
//
// Exporting the same document with the same options always produces the same
// bytes, so artifacts can be cached by a hash of their inputs. The [Cache]
// interface has four backends:
//
//   - [NullCache]: never stores anything (--no-cache, tests)
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: shared cache with a TTL index
//
// # Keys
//
// A [Keyer] turns a document hash and render options into a cache key.
// [ScopedKeyer] prefixes keys so several deployments can share one Redis or
// MongoDB without collisions.
//
// # Errors
//
// Backends report transient network failures as [RetryableError] and retry
// them with [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the stored value. hit is false when the key is missing or
	// expired; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data. A ttl of zero keeps the entry until it is deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// TTLs for cached entries.
const (
	// TTLArtifact keeps exported documents for a week. Keys are content
	// hashes, so stale entries are never served, only evicted.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLPreview keeps rendered previews for a day.
	TTLPreview = 24 * time.Hour
)

// NullCache never stores anything: every Get misses. It backs --no-cache and
// the "none" backend.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Clear(context.Context) error { return nil }
func (NullCache) Close() error { return nil }

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
