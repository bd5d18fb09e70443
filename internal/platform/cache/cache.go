// Copyright (c) 2026 D42X. All rights reserved.

/*
Package cache provides the bounded key/value store that fronts the hot read
queries (category listing, paginated meme listing).

Architecture:

  - Cache: A minimal capability interface {Get, Put, Remove, Clear}.
  - Memory: Capacity-and-TTL-bounded in-memory store, the production default.
  - Redis: go-redis backed implementation shared across replicas.
  - Stub: Deterministic unbounded map for tests.

The cache is a latency optimization only: the relational store remains the
source of truth, and every caller must be correct when the cache is empty.
*/
package cache

import "context"

// Cache is the read-through cache capability used by the cached repositories.
//
// # Concurrency
//
// Implementations provide their own internal synchronization; callers share
// one instance across concurrent request handlers with no external lock.
//
// # Failure
//
// A cache is never allowed to fail a request: backend trouble surfaces as a
// miss on Get and a no-op on writes, not as an error.
type Cache interface {
	// Get returns the live value for key, or ok=false if absent or expired.
	Get(ctx context.Context, key string) (value string, ok bool)

	// Put inserts or replaces the value for key, evicting an old entry if
	// the store is at capacity.
	Put(ctx context.Context, key, value string)

	// Remove drops the entry for key. Used for point invalidation after a
	// write that made a single cached view stale.
	Remove(ctx context.Context, key string)

	// Clear drops every entry. Used when a write's blast radius is not
	// cleanly expressible as a small set of keys.
	Clear(ctx context.Context)
}
