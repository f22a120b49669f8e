// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// activeList holds the edges intersecting the scanline currently being
// processed, as a doubly linked list bounded by sentinels and ordered
// by ascending cell. Edges with equal cells keep insertion order; no
// crossing is assumed for merely equal cells.
type activeList struct {
	head, tail edge

	// minHeight is a lower bound on heightLeft over the list, used to
	// decide whether some edge could end within the next pixel row.
	// Set to -1 when an edge is dropped to force recomputation.
	minHeight int32

	// isVertical is true while every active edge is vertical; runs of
	// vertical-only rows can be blitted together.
	isVertical bool
}

func (a *activeList) reset() {
	a.head.heightLeft = math.MaxInt32
	a.head.dy = 0
	a.head.cell = math.MinInt32
	a.head.prev = nil
	a.head.next = &a.tail
	a.tail.prev = &a.head
	a.tail.next = nil
	a.tail.cell = math.MaxInt32
	a.tail.heightLeft = math.MaxInt32
	a.tail.dy = 0
	a.minHeight = 0
	a.isVertical = true
}

func (a *activeList) empty() bool {
	return a.head.next == &a.tail
}

// mergeSortedEdges merges two cell-sorted lists. Whenever the head of
// one list passes the head of the other the lists swap roles, so
// merging a single-element batch degenerates to an insertion and
// writes happen only at the switch points.
func mergeSortedEdges(headA, headB *edge) *edge {
	var head *edge
	next := &head
	prev := headA.prev

	if headA.cell > headB.cell {
		headB.prev = prev
		headA, headB = headB, headA
	}
	head = headA

	for {
		x := headB.cell
		for headA != nil && headA.cell <= x {
			prev = headA
			next = &headA.next
			headA = headA.next
		}
		headB.prev = prev
		*next = headB
		if headA == nil {
			return head
		}
		headA, headB = headB, headA
	}
}

// sortEdges bottom-up merge sorts the first 2^(level+1) elements of
// list, returning the remainder (nil when the whole list was
// consumed) and the sorted head through headOut. Tuned for the small
// batches of edges that start on one row.
func sortEdges(list *edge, level uint, headOut **edge) *edge {
	headOther := list.next
	if headOther == nil {
		*headOut = list
		return nil
	}

	remaining := headOther.next
	if list.cell <= headOther.cell {
		*headOut = list
		headOther.next = nil
	} else {
		*headOut = headOther
		headOther.prev = list.prev
		headOther.next = list
		list.prev = headOther
		list.next = nil
	}

	for i := uint(0); i < level && remaining != nil; i++ {
		remaining = sortEdges(remaining, i, &headOther)
		*headOut = mergeSortedEdges(*headOut, headOther)
	}

	return remaining
}

// mergeEdges sorts a batch of newly starting edges and merges it into
// the active list, preserving cell order.
func (a *activeList) mergeEdges(unsorted *edge) {
	sortEdges(unsorted, ^uint(0), &unsorted)
	a.head.next = mergeSortedEdges(a.head.next, unsorted)
}

// fillBuckets distributes the edges of one pixel-row bucket into
// per-sub-row start lists and folds their heights into the active
// list's bookkeeping. Returns the highest sub-row at which an edge
// starts; zero means every new edge starts at the top of the row.
func (a *activeList) fillBuckets(bucket *edge, y int32, subBuckets *[gridY]*edge) int {
	minHeight := a.minHeight
	isVertical := a.isVertical
	maxSub := 0

	for e := bucket; e != nil; {
		next := e.next
		sub := int(e.ytop - y)
		if subBuckets[sub] != nil {
			subBuckets[sub].prev = e
		}
		e.next = subBuckets[sub]
		e.prev = nil
		subBuckets[sub] = e
		if e.heightLeft < minHeight {
			minHeight = e.heightLeft
		}
		isVertical = isVertical && e.dy == 0
		if sub > maxSub {
			maxSub = sub
		}
		e = next
	}

	a.isVertical = isVertical
	a.minHeight = minHeight
	return maxSub
}

// canDoFullRow reports whether every active edge can be stepped by a
// full pixel row at once: no edge may end within the row and the
// stepped edges must keep their left-to-right order. Newly starting
// edges are the caller's concern (checked against the row's buckets),
// not this function's.
func (a *activeList) canDoFullRow() bool {
	// Recompute the lazily tracked bounds if edges have been dropped.
	if a.minHeight <= 0 {
		minHeight := int32(math.MaxInt32)
		isVertical := true
		for e := a.head.next; e != nil; e = e.next {
			if e.heightLeft < minHeight {
				minHeight = e.heightLeft
			}
			isVertical = isVertical && e.dy == 0
		}
		a.isVertical = isVertical
		a.minHeight = minHeight
	}

	if a.minHeight < gridY {
		return false
	}

	prevX := int32(math.MinInt32)
	for e := a.head.next; e != &a.tail; e = e.next {
		cell := e.cellAfterFullStep()
		if cell < prevX {
			return false
		}
		prevX = cell
	}
	return true
}

// dec consumes h sub-rows of an edge's height, unlinking it when the
// edge is exhausted.
func (a *activeList) dec(e *edge, h int32) {
	e.heightLeft -= h
	if e.heightLeft == 0 {
		e.prev.next = e.next
		e.next.prev = e.prev
		a.minHeight = -1
	}
}

// stepEdges consumes count additional full rows from every active
// edge. Only valid while the list is all-vertical, where x-intercepts
// need no update.
func (a *activeList) stepEdges(count int32) {
	count *= gridY
	for e := a.head.next; e != &a.tail; e = e.next {
		e.heightLeft -= count
		if e.heightLeft == 0 {
			e.prev.next = e.next
			e.next.prev = e.prev
			a.minHeight = -1
		}
	}
}
