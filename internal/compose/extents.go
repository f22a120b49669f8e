// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"github.com/gogpu/scan/internal/blend"
	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/image"
)

// Rectangles carries the extents bookkeeping for one composite
// operation.
//
// Unbounded is the destination area the operation may touch at all:
// the destination intersected with the clip. Bounded narrows that to
// the area the shape actually covers. For operators that are not
// bounded by their mask, pixels in Unbounded but outside the shape
// still change (they compose with zero coverage), so the sweep must
// cover Unbounded and a fixup clears whatever the sweep missed.
//
// Source-unbounded operators (SOURCE, CLEAR) need no fixup: a pattern
// fetch outside the source extent yields transparent black, and
// composing that at full coverage already clears the destination.
type Rectangles struct {
	Op        blend.Operator
	Unbounded clip.Box
	Bounded   clip.Box
}

// NewRectangles computes the extents of compositing src through op
// onto dst over the given shape box under region clipping.
func NewRectangles(dst *image.Buf, op blend.Operator, src Pattern, shape clip.Box, region *clip.Region) Rectangles {
	unbounded := clip.Box{X1: dst.W, Y1: dst.H}
	if region != nil {
		unbounded = unbounded.Intersect(region.Extents())
	}

	bounded := unbounded.Intersect(shape)
	if op.BoundedBySource() {
		// Outside the source a bounded operator cannot change the
		// destination, so a finite pattern shrinks the working area.
		if bp, ok := src.(BoundedPattern); ok {
			bounded = bounded.Intersect(bp.Extent())
		}
	}

	return Rectangles{Op: op, Unbounded: unbounded, Bounded: bounded}
}

// IsBounded reports whether the operation's writes stay inside
// Bounded, making the fixup pass unnecessary.
func (r *Rectangles) IsBounded() bool {
	return r.Op.BoundedByMask() || r.Bounded == r.Unbounded
}

// CompositeArea returns the box a span converter must sweep: the
// bounded extents for mask-bounded operators, the full unbounded
// extents otherwise.
func (r *Rectangles) CompositeArea() clip.Box {
	if r.IsBounded() {
		return r.Bounded
	}
	return r.Unbounded
}
