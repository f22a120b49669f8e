// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides small concurrency-safe caches for expensive
// rasterization byproducts: premultiplied solid-pattern pixels, glyph
// coverage masks.
//
// Two eviction policies are offered. Bounded evicts an arbitrary
// entry when full (map iteration order), which is cheap and good
// enough for keys with no temporal locality, such as color lookups.
// LRU tracks recency and suits glyph masks, where the working set is
// the text currently being shown.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is used when a cache is created with a
// non-positive capacity.
const DefaultCapacity = 256

// Stats is a point-in-time snapshot of a cache's counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Bounded is a thread-safe map capped at a fixed number of entries.
// When an insert would exceed the capacity, one arbitrary entry is
// dropped first.
type Bounded[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]V
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewBounded creates a cache holding at most capacity entries.
func NewBounded[K comparable, V any](capacity int) *Bounded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bounded[K, V]{
		entries:  make(map[K]V),
		capacity: capacity,
	}
}

// Get retrieves a cached value by key.
func (c *Bounded[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	v, ok := c.entries[key]
	c.mu.Unlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value, evicting an arbitrary entry if the cache is
// full.
func (c *Bounded[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		for k := range c.entries {
			delete(c.entries, k)
			c.evictions.Add(1)
			break
		}
	}
	c.entries[key] = value
}

// GetOrCreate returns the cached value for key, calling create to
// build and store it on a miss. create runs with the cache lock held;
// keep it fast.
func (c *Bounded[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	v := create()
	if len(c.entries) >= c.capacity {
		for k := range c.entries {
			delete(c.entries, k)
			c.evictions.Add(1)
			break
		}
	}
	c.entries[key] = v
	return v
}

// Delete removes an entry, reporting whether it was present.
func (c *Bounded[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *Bounded[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]V)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *Bounded[K, V]) Capacity() int { return c.capacity }

// Stats returns current counters.
func (c *Bounded[K, V]) Stats() Stats {
	return snapshot(c.Len(), c.capacity, &c.hits, &c.misses, &c.evictions)
}

func snapshot(length, capacity int, hits, misses, evictions *atomic.Uint64) Stats {
	h := hits.Load()
	m := misses.Load()
	s := Stats{
		Len:       length,
		Capacity:  capacity,
		Hits:      h,
		Misses:    m,
		Evictions: evictions.Load(),
	}
	if total := h + m; total > 0 {
		s.HitRate = float64(h) / float64(total)
	}
	return s
}
