// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// edge is a polygon edge prepared for scan conversion: vertically
// clipped, grid quantized and normalized to point downward. Edges are
// arena allocated and linked intrusively, first into their starting
// y bucket and later into the active list.
type edge struct {
	next, prev *edge

	// ytop is the clipped top of the edge in grid y units.
	ytop int32

	// heightLeft counts the sub-rows still to be scan converted;
	// the edge leaves the active list when it reaches zero.
	heightLeft int32

	// dir is the winding contribution, +1 or -1. It is flipped
	// together with the endpoint swap when the input edge pointed
	// upward.
	dir int32

	// cell is the rounded pixel-grid column of the current
	// x-intercept. The active list is kept sorted by cell.
	cell int32

	// x is the exact x-intercept at the current sub-row sample
	// point, as a rational with denominator dy.
	x quorem

	// dxdy and dxdyFull advance x by one sub-row and one full pixel
	// row respectively. dxdyFull is only initialized for edges tall
	// enough to ever be stepped a full row at a time.
	dxdy     quorem
	dxdyFull quorem

	// dy is the rational denominator (the edge's vertical span in
	// scaled grid units); zero for vertical edges.
	dy int64
}

// step advances the edge's x-intercept by one sub-row.
func (e *edge) step() {
	if e.dy == 0 {
		return
	}
	e.x.quo += e.dxdy.quo
	e.x.rem += e.dxdy.rem
	if e.x.rem < 0 {
		e.x.quo--
		e.x.rem += e.dy
	} else if e.x.rem >= e.dy {
		e.x.quo++
		e.x.rem -= e.dy
	}
	e.cell = e.x.quo
	if e.x.rem >= e.dy/2 {
		e.cell++
	}
}

// fullStep advances the edge's x-intercept by one full pixel row.
func (e *edge) fullStep() {
	if e.dy == 0 {
		return
	}
	e.x.quo += e.dxdyFull.quo
	e.x.rem += e.dxdyFull.rem
	if e.x.rem < 0 {
		e.x.quo--
		e.x.rem += e.dy
	} else if e.x.rem >= e.dy {
		e.x.quo++
		e.x.rem -= e.dy
	}
	e.cell = e.x.quo
	if e.x.rem >= e.dy/2 {
		e.cell++
	}
}

// cellAfterFullStep returns the cell the edge would occupy after a
// full-row step, without modifying the edge.
func (e *edge) cellAfterFullStep() int32 {
	if e.dy == 0 {
		return e.cell
	}
	x := e.x
	x.quo += e.dxdyFull.quo
	x.rem += e.dxdyFull.rem
	if x.rem < 0 {
		x.quo--
		x.rem += e.dy
	} else if x.rem >= e.dy {
		x.quo++
		x.rem -= e.dy
	}
	cell := x.quo
	if x.rem >= e.dy/2 {
		cell++
	}
	return cell
}
