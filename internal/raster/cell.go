// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/scan/internal/pool"
)

// cell accumulates the effect of polygon edges on the coverage of one
// pixel column within the current row. coveredHeight counts, in signed
// sub-rows, how far the polygon interior extends past this column into
// the next; uncoveredArea is the signed sub-pixel area left uncovered
// to the left of the edges crossing the column, scaled by 2*gridX so
// trapezoids are represented exactly. Left polygon edges contribute
// with positive sign, right edges with negative sign.
type cell struct {
	next          *cell
	x             int32
	uncoveredArea int32
	coveredHeight int32
}

// cellList represents one pixel row's coverage sparsely as cells
// ordered by ascending x between two sentinels. Lookups go through a
// cursor that must be asked for non-decreasing x until rewound, which
// makes a whole row's worth of find calls effectively linear.
type cellList struct {
	head, tail cell

	cursor *cell
	rewind *cell

	cells pool.Pool[cell]
}

func (l *cellList) init() {
	l.cells.Init(256)
	l.tail.next = nil
	l.tail.x = math.MaxInt32
	l.head.x = math.MinInt32
	l.head.next = &l.tail
	l.rewindCursor()
}

// rewindCursor moves the cursor back to the head so any x may be
// found again.
func (l *cellList) rewindCursor() {
	l.cursor = &l.head
	l.rewind = &l.head
}

// setRewind marks the current cursor position as the rewind point for
// maybeRewind.
func (l *cellList) setRewind() {
	l.rewind = l.cursor
}

// maybeRewind backs the cursor up when x lies behind it, first to the
// marked rewind point and, failing that, to the head.
func (l *cellList) maybeRewind(x int32) {
	if x < l.cursor.x {
		l.cursor = l.rewind
		if x < l.cursor.x {
			l.cursor = &l.head
		}
	}
}

// reset empties the list. Called at the start of every pixel row; the
// cells return to the pool in O(1).
func (l *cellList) reset() {
	l.rewindCursor()
	l.head.next = &l.tail
	l.cells.Reset()
}

func (l *cellList) alloc(after *cell, x int32) (*cell, error) {
	c, err := l.cells.Alloc()
	if err != nil {
		return nil, err
	}
	c.next = after.next
	after.next = c
	c.x = x
	return c, nil
}

// find returns the cell at column x, allocating it if missing. Between
// rewinds, successive calls must use non-decreasing x.
func (l *cellList) find(x int32) (*cell, error) {
	t := l.cursor
	if t.x == x {
		return t, nil
	}
	for t.next.x <= x {
		t = t.next
	}
	if t.x != x {
		var err error
		t, err = l.alloc(t, x)
		if err != nil {
			return nil, err
		}
	}
	l.cursor = t
	return t, nil
}

// findPair returns the cells at columns x1 and x2 (x1 <= x2),
// equivalent to two find calls with less cursor traffic.
func (l *cellList) findPair(x1, x2 int32) (*cell, *cell, error) {
	c1 := l.cursor
	for c1.next.x <= x1 {
		c1 = c1.next
	}
	if c1.x != x1 {
		var err error
		c1, err = l.alloc(c1, x1)
		if err != nil {
			return nil, nil, err
		}
	}

	c2 := c1
	for c2.next.x <= x2 {
		c2 = c2.next
	}
	if c2.x != x2 {
		var err error
		c2, err = l.alloc(c2, x2)
		if err != nil {
			return nil, nil, err
		}
	}

	l.cursor = c2
	return c1, c2, nil
}

// addSubspan accumulates one sub-row of coverage over the grid x
// interval [x1, x2), splitting the fractional boundary pixels exactly.
func (l *cellList) addSubspan(x1, x2 int32) error {
	if x1 == x2 {
		return nil
	}

	ix1, fx1 := x1>>gridXBits, x1&(gridX-1)
	ix2, fx2 := x2>>gridXBits, x2&(gridX-1)

	if ix1 != ix2 {
		c1, c2, err := l.findPair(ix1, ix2)
		if err != nil {
			return err
		}
		c1.uncoveredArea += 2 * fx1
		c1.coveredHeight++
		c2.uncoveredArea -= 2 * fx2
		c2.coveredHeight--
	} else {
		c, err := l.find(ix1)
		if err != nil {
			return err
		}
		c.uncoveredArea += 2 * (fx1 - fx2)
	}
	return nil
}

// renderEdge adds the analytical coverage of an edge crossing the
// current pixel row and advances the edge to the next row. Valid only
// when, within this row, no active edge starts, ends or changes order
// relative to any other; callers must present edges in list order
// (non-decreasing x).
func (l *cellList) renderEdge(e *edge, sign int32) error {
	x1 := e.x
	e.fullStep()
	x2 := e.x

	// The stored intercepts sample the middle of a sub-row; step back
	// half a sub-row to the pixel row boundary.
	if e.dy != 0 {
		x1.quo -= e.dxdy.quo / 2
		x1.rem -= e.dxdy.rem / 2
		if x1.rem < 0 {
			x1.quo--
			x1.rem += e.dy
		} else if x1.rem >= e.dy {
			x1.quo++
			x1.rem -= e.dy
		}

		x2.quo -= e.dxdy.quo / 2
		x2.rem -= e.dxdy.rem / 2
		if x2.rem < 0 {
			x2.quo--
			x2.rem += e.dy
		} else if x2.rem >= e.dy {
			x2.quo++
			x2.rem -= e.dy
		}
	}

	ix1, fx1 := x1.quo>>gridXBits, x1.quo&(gridX-1)
	ix2, fx2 := x2.quo>>gridXBits, x2.quo&(gridX-1)

	if ix2 < ix1 {
		l.maybeRewind(ix2)
	} else {
		l.maybeRewind(ix1)
	}

	// Edge stays within one column: a full-height trapezoid there.
	if ix1 == ix2 {
		c, err := l.find(ix1)
		if err != nil {
			return err
		}
		c.coveredHeight += sign * gridY
		c.uncoveredArea += sign * (fx1 + fx2) * gridY
		return nil
	}

	// Orient left to right.
	if ix2 < ix1 {
		ix1, ix2 = ix2, ix1
		fx1, fx2 = fx2, fx1
		x1, x2 = x2, x1
	}

	// Walk the columns [ix1, ix2], distributing height and area with
	// an incremental rational y per column boundary instead of a
	// division per pixel.
	dx := int64(x2.quo-x1.quo)*e.dy + (x2.rem - x1.rem)

	tmp := int64(ix1+1) * gridX * e.dy
	tmp -= int64(x1.quo)*e.dy + x1.rem
	tmp *= gridY

	var y quorem
	y.quo = int32(tmp / dx)
	y.rem = tmp % dx

	// A previously rendered edge may legitimately have advanced the
	// cursor past ix1 even without intersecting this edge (its
	// trailing columns can overlap our leading ones), hence the
	// maybeRewind above rather than an ordering assumption.
	c1, c2, err := l.findPair(ix1, ix1+1)
	if err != nil {
		return err
	}
	c1.uncoveredArea += sign * y.quo * (gridX + fx1)
	c1.coveredHeight += sign * y.quo
	yLast := y.quo

	if ix1+1 < ix2 {
		cur := c2
		var dydxFull quorem
		dydxFull.quo = int32(gridY * gridX * e.dy / dx)
		dydxFull.rem = gridY * gridX * e.dy % dx

		ix1++
		for {
			y.quo += dydxFull.quo
			y.rem += dydxFull.rem
			if y.rem >= dx {
				y.quo++
				y.rem -= dx
			}

			cur.uncoveredArea += sign * (y.quo - yLast) * gridX
			cur.coveredHeight += sign * (y.quo - yLast)
			yLast = y.quo

			ix1++
			cur, err = l.find(ix1)
			if err != nil {
				return err
			}
			if ix1 == ix2 {
				break
			}
		}
		c2 = cur
	}
	c2.uncoveredArea += sign * (gridY - yLast) * fx2
	c2.coveredHeight += sign * (gridY - yLast)
	return nil
}
