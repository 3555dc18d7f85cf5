// Package cache stores solved MaxWhite tables and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [NullCache]: never stores anything (--no-cache)
//   - [RedisCache]: a shared Redis server
//   - [BoltCache]: a single bbolt database file
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// All backends implement [Cache] and are safe for concurrent use. Backends
// that can drop all of their entries also implement [Clearer].
//
// # Keys
//
// A [Keyer] derives keys from a tree hash and the parameters that affect
// the cached value, so that changing an algorithm or a render option never
// returns a stale entry. [ScopedKeyer] adds a prefix for namespacing.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can remove every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed, or -1
	// if the backend cannot count them.
	Clear(ctx context.Context) (int, error)
}

// entry wraps cached data with its expiry for backends without native TTL
// support.
type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newEntry(data []byte, ttl time.Duration) entry {
	e := entry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	return e
}

func (e entry) expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}
