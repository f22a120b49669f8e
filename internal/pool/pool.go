// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pool provides a chunked arena allocator for rasterizer
// bookkeeping structures (edges, coverage cells).
//
// A Pool hands out pointers that stay valid until Reset. Reset is O(1):
// it moves every used chunk onto a free list and rewinds to the chunk
// embedded in the Pool value itself, so the common small-polygon case
// never touches the heap after the first use.
package pool

import "errors"

// ErrNoMemory is returned when an allocation limit set with SetLimit
// has been exhausted. It is the only error the rasterizer core can
// generate internally.
var ErrNoMemory = errors.New("pool: out of memory")

// embeddedCap is the element count of the chunk embedded in the Pool
// value. Small shapes (a handful of edges, a few dozen cells per row)
// are served entirely from this buffer.
const embeddedCap = 32

// chunk is one allocation block. Elements are handed out by bumping
// used; a chunk is never shrunk, only recycled whole.
type chunk[T any] struct {
	elems []T
	used  int
	prev  *chunk[T]
}

// Pool is a chunked bump allocator for values of type T.
//
// The zero value is not ready for use; call Init (or New). A Pool is
// owned by a single rasterization call and is not safe for concurrent
// use, matching the single-threaded contract of the scan converter.
type Pool[T any] struct {
	current   *chunk[T]
	firstFree *chunk[T]

	// defaultCap is the element capacity of chunks allocated on
	// overflow of the embedded buffer.
	defaultCap int

	// limit caps the total elements handed out since the last Reset;
	// negative means unlimited. Used to exercise allocation-failure
	// paths in tests.
	limit     int
	allocated int

	sentinel chunk[T]
	embedded [embeddedCap]T
}

// New returns an initialized pool whose overflow chunks hold
// defaultCap elements each.
func New[T any](defaultCap int) *Pool[T] {
	p := new(Pool[T])
	p.Init(defaultCap)
	return p
}

// Init prepares an embedded pool for use. defaultCap values below the
// embedded capacity are rounded up to it.
func (p *Pool[T]) Init(defaultCap int) {
	if defaultCap < embeddedCap {
		defaultCap = embeddedCap
	}
	p.defaultCap = defaultCap
	p.sentinel.elems = p.embedded[:]
	p.sentinel.used = 0
	p.sentinel.prev = nil
	p.current = &p.sentinel
	p.firstFree = nil
	p.limit = -1
	p.allocated = 0
}

// SetLimit caps the total number of elements the pool will hand out
// until the next Reset. A negative n removes the cap.
func (p *Pool[T]) SetLimit(n int) {
	p.limit = n
}

// Alloc returns a pointer to a zeroed T valid until Reset.
func (p *Pool[T]) Alloc() (*T, error) {
	if p.limit >= 0 && p.allocated >= p.limit {
		return nil, ErrNoMemory
	}
	c := p.current
	if c.used == len(c.elems) {
		c = p.grow()
	}
	e := &c.elems[c.used]
	c.used++
	p.allocated++
	var zero T
	*e = zero
	return e, nil
}

// grow makes a fresh chunk current, recycling one off the free list
// when possible.
func (p *Pool[T]) grow() *chunk[T] {
	c := p.firstFree
	if c != nil {
		p.firstFree = c.prev
		c.used = 0
	} else {
		c = &chunk[T]{elems: make([]T, p.defaultCap)}
	}
	c.prev = p.current
	p.current = c
	return c
}

// Reset relinquishes every allocation without freeing the underlying
// chunks: used chunks move to the free list and the embedded chunk
// becomes current again. Pointers obtained from Alloc are invalid
// afterwards.
func (p *Pool[T]) Reset() {
	c := p.current
	if c != &p.sentinel {
		// Splice the whole used-chunk chain onto the free list.
		last := c
		for last.prev != &p.sentinel {
			last = last.prev
		}
		last.prev = p.firstFree
		p.firstFree = c
	}
	p.sentinel.used = 0
	p.current = &p.sentinel
	p.allocated = 0
}
