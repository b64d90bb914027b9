// Package memo provides a small get-or-populate cache with a TTL and an
// LRU capacity bound, for memoizing remote reads.
package memo

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes producer results per key. Entries expire ttl after
// they were stored; expired entries are treated as absent and the next
// access re-populates them. Beyond capacity the least recently used
// entry is evicted.
//
// Safe for concurrent use. Two goroutines missing the same key at once
// may both run the producer; the later result replaces the earlier one.
// Redundant reads are tolerated, inconsistent entries are not.
type Cache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// New creates a cache holding at most capacity entries, each valid for
// ttl from the moment it was populated.
func New[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{lru: expirable.NewLRU[K, V](capacity, nil, ttl)}
}

// GetOrPopulate returns the cached value for key. On a miss (absent or
// expired) it calls produce, stores a successful result, and returns
// it. Producer errors are returned as-is and never cached.
func (c *Cache[K, V]) GetOrPopulate(key K, produce func() (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		var zero V
		return zero, err
	}

	c.lru.Add(key, v)
	return v, nil
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int { return c.lru.Len() }

// Purge drops all entries. Intended for tests.
func (c *Cache[K, V]) Purge() { c.lru.Purge() }
