// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"sync"
	"sync/atomic"
)

// lruNode is an intrusive doubly-linked list node. The list is
// circular through a sentinel to avoid nil checks on unlink.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a recency list; the front is most recently used.
type lruList[K comparable] struct {
	root lruNode[K]
	len  int
}

func (l *lruList[K]) init() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.len = 0
}

func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertAfter(n, &l.root)
	l.len++
	return n
}

func (l *lruList[K]) insertAfter(n, at *lruNode[K]) {
	n.prev = at
	n.next = at.next
	n.prev.next = n
	n.next.prev = n
}

func (l *lruList[K]) moveToFront(n *lruNode[K]) {
	if l.root.next == n {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	l.insertAfter(n, &l.root)
}

func (l *lruList[K]) remove(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.len--
}

// removeOldest unlinks and returns the back node's key.
func (l *lruList[K]) removeOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.remove(n)
	return n.key, true
}

// LRU is a thread-safe cache evicting the least recently used entry
// when full. Get and GetOrCreate count as uses.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruEntry[K, V]
	list     lruList[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type lruEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &LRU[K, V]{
		entries:  make(map[K]*lruEntry[K, V]),
		capacity: capacity,
	}
	c.list.init()
	return c
}

// Get retrieves a cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.list.moveToFront(e.node)
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores a value, evicting the least recently used entry if the
// cache is full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.list.moveToFront(e.node)
		return
	}
	c.evictLocked()
	c.entries[key] = &lruEntry[K, V]{value: value, node: c.list.pushFront(key)}
}

// GetOrCreate returns the cached value for key, calling create to
// build and store it on a miss. create runs with the cache lock held.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.list.moveToFront(e.node)
		c.hits.Add(1)
		return e.value
	}
	c.misses.Add(1)

	v := create()
	c.evictLocked()
	c.entries[key] = &lruEntry[K, V]{value: v, node: c.list.pushFront(key)}
	return v
}

func (c *LRU[K, V]) evictLocked() {
	for c.list.len >= c.capacity {
		key, ok := c.list.removeOldest()
		if !ok {
			break
		}
		delete(c.entries, key)
		c.evictions.Add(1)
	}
}

// Delete removes an entry, reporting whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.list.remove(e.node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]*lruEntry[K, V])
	c.list.init()
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.len
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats returns current counters.
func (c *LRU[K, V]) Stats() Stats {
	return snapshot(c.Len(), c.capacity, &c.hits, &c.misses, &c.evictions)
}
