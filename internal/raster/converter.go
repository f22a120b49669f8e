// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// Converter is the scan-conversion driver. It owns the polygon edge
// store, the active edge list and the coverage cell list, all backed
// by pooled storage that survives Reset, so one Converter can be
// reused across many shapes without reallocating.
//
// A Converter is exclusively owned by a single rasterization call
// chain; it performs no locking.
type Converter struct {
	polygon   polygon
	active    activeList
	coverages cellList

	spans []Span

	// Clip box in grid-scaled units.
	xmin, xmax int32
	ymin, ymax int32

	// err latches the first AddEdge failure until the next Reset;
	// Render refuses to run while it is set.
	err error

	// forceSubRow disables the analytical full-row path. Used by
	// tests as a reference oracle for full-row/sub-sample
	// equivalence.
	forceSubRow bool
}

// NewConverter returns a converter clipping to the pixel box
// [xmin,xmax) x [ymin,ymax).
func NewConverter(xmin, ymin, xmax, ymax int) (*Converter, error) {
	c := new(Converter)
	c.polygon.init()
	c.active.reset()
	c.coverages.init()
	if err := c.Reset(xmin, ymin, xmax, ymax); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset empties the converter and establishes a new pixel clip box.
// Feeding an identical edge set after Reset reproduces identical span
// output.
func (c *Converter) Reset(xmin, ymin, xmax, ymax int) error {
	c.xmin, c.xmax = 0, 0
	c.ymin, c.ymax = 0, 0
	c.err = nil

	maxSpans := xmax - xmin + 1
	if maxSpans < 1 {
		maxSpans = 1
	}
	if cap(c.spans) < maxSpans {
		c.spans = make([]Span, 0, maxSpans)
	}

	gxmin := intToGridX(xmin)
	gymin := intToGridY(ymin)
	gxmax := intToGridX(xmax)
	gymax := intToGridY(ymax)

	c.active.reset()
	c.coverages.reset()
	if err := c.polygon.reset(gymin, gymax); err != nil {
		return err
	}

	c.xmin, c.xmax = gxmin, gxmax
	c.ymin, c.ymax = gymin, gymax
	return nil
}

// AddEdge feeds one polygon edge to the converter. Degenerate edges
// are dropped silently; allocation failures latch into the converter
// and surface from Render.
func (c *Converter) AddEdge(e Edge) {
	if c.err != nil {
		return
	}
	c.err = c.polygon.addEdge(e)
}

// SetAllocationLimit caps the number of elements each internal pool
// may hand out; a negative n removes the cap. Exceeding the cap makes
// AddEdge or Render fail with pool.ErrNoMemory.
func (c *Converter) SetAllocationLimit(n int) {
	c.polygon.edges.SetLimit(n)
	c.coverages.cells.SetLimit(n)
}

// setForceSubRow makes Render take the sub-sampled path on every row.
func (c *Converter) setForceSubRow(force bool) {
	c.forceSubRow = force
}

// Render sweeps the polygon top to bottom and hands each pixel row's
// coverage to the renderer as spans. windingMask selects the fill
// rule (MaskNonZero or MaskEvenOdd); antialias selects 8-bit coverage
// versus 1-bit thresholding. On error the sweep stops immediately; no
// further rows reach the renderer.
func (c *Converter) Render(windingMask uint32, antialias bool, r SpanRenderer) error {
	if c.err != nil {
		return c.err
	}

	yminI := c.ymin / gridY
	ymaxI := c.ymax / gridY
	h := ymaxI - yminI
	xminI := c.xmin / gridX
	xmaxI := c.xmax / gridX
	if xminI >= xmaxI {
		return nil
	}

	var buckets [gridY]*edge

	for i := int32(0); i < h; {
		j := i + 1
		doFullRow := false

		// Distribute this row's starting edges by sub-row. Edges that
		// all start on the first sub-row keep the analytical path in
		// play; a start on any later sub-row forces sub-sampling
		// regardless of what canDoFullRow would say.
		if c.active.fillBuckets(c.polygon.buckets[i], (i+yminI)*gridY, &buckets) == 0 {
			if buckets[0] != nil {
				c.active.mergeEdges(buckets[0])
				buckets[0] = nil
			}

			if c.active.empty() {
				// Coalesce runs of empty rows.
				c.active.minHeight = math.MaxInt32
				c.active.isVertical = true
				for ; j < h && c.polygon.buckets[j] == nil; j++ {
				}
				i = j
				continue
			}

			doFullRow = c.active.canDoFullRow() && !c.forceSubRow
		}

		if doFullRow {
			if err := c.fullRow(windingMask); err != nil {
				return err
			}

			if c.active.isVertical {
				// Identical all-vertical rows can share one blit.
				for j < h && c.polygon.buckets[j] == nil && c.active.minHeight >= 2*gridY {
					c.active.minHeight -= gridY
					j++
				}
				if j != i+1 {
					c.active.stepEdges(j - (i + 1))
				}
			}
		} else {
			for sub := 0; sub < gridY; sub++ {
				if buckets[sub] != nil {
					c.active.mergeEdges(buckets[sub])
					buckets[sub] = nil
				}
				if err := c.subRow(windingMask); err != nil {
					return err
				}
			}
		}

		var err error
		if antialias {
			err = c.blitA8(r, int(i+yminI), int(j-i), xminI, xmaxI)
		} else {
			err = c.blitA1(r, int(i+yminI), int(j-i), xminI, xmaxI)
		}
		if err != nil {
			return err
		}
		c.coverages.reset()

		c.active.minHeight -= gridY
		i = j
	}

	return nil
}

// subRow scans one sub-row: it walks the active list accumulating
// winding, emits rectangular sub-spans where the fill rule says
// inside, steps every edge by one sub-row and repairs any local order
// violations by re-insertion.
func (c *Converter) subRow(mask uint32) error {
	a := &c.active
	e := a.head.next
	xstart := int32(math.MinInt32)
	prevX := int32(math.MinInt32)
	winding := int32(0)

	c.coverages.rewindCursor()

	for e != &a.tail {
		next := e.next
		xend := e.cell

		e.heightLeft--
		if e.heightLeft != 0 {
			e.step()

			if e.cell < prevX {
				// Stepping moved the edge left past a neighbour:
				// unlink and re-insert at its sorted position.
				pos := e.prev
				pos.next = next
				next.prev = pos
				for {
					pos = pos.prev
					if e.cell >= pos.cell {
						break
					}
				}
				pos.next.prev = e
				e.next = pos.next
				e.prev = pos
				pos.next = e
			} else {
				prevX = e.cell
			}
			a.minHeight = -1
		} else {
			e.prev.next = next
			next.prev = e.prev
		}

		winding += e.dir
		if uint32(winding)&mask == 0 {
			// Leaving the interior; flush unless the next edge
			// re-enters at the very same x.
			if next.cell != xend {
				if err := c.coverages.addSubspan(xstart, xend); err != nil {
					return err
				}
				xstart = math.MinInt32
			}
		} else if xstart == math.MinInt32 {
			xstart = xend
		}

		e = next
	}
	return nil
}

// fullRow advances the whole active list by one pixel row, rendering
// each span's left and right edges analytically. Only called when
// canDoFullRow held and no edge starts later in the row.
func (c *Converter) fullRow(mask uint32) error {
	a := &c.active
	left := a.head.next

	for left != &a.tail {
		a.dec(left, gridY)

		winding := left.dir
		right := left.next
		for {
			a.dec(right, gridY)

			winding += right.dir
			if uint32(winding)&mask == 0 && right.next.cell != right.cell {
				break
			}

			right.fullStep()
			right = right.next
		}

		c.coverages.setRewind()
		if err := c.coverages.renderEdge(left, +1); err != nil {
			return err
		}
		if err := c.coverages.renderEdge(right, -1); err != nil {
			return err
		}

		left = right.next
	}
	return nil
}
