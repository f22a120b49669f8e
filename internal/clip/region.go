// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clip provides integer pixel rectangles and box-list regions
// for clipping composite operations.
package clip

// Box is a half-open pixel rectangle [X0,X1) x [Y0,Y1).
type Box struct {
	X0, Y0, X1, Y1 int
}

// Empty reports whether the box encloses no pixels.
func (b Box) Empty() bool {
	return b.X0 >= b.X1 || b.Y0 >= b.Y1
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b Box) Height() int { return b.Y1 - b.Y0 }

// Intersect returns the intersection of two boxes; the result may be
// empty.
func (b Box) Intersect(o Box) Box {
	if o.X0 > b.X0 {
		b.X0 = o.X0
	}
	if o.Y0 > b.Y0 {
		b.Y0 = o.Y0
	}
	if o.X1 < b.X1 {
		b.X1 = o.X1
	}
	if o.Y1 < b.Y1 {
		b.Y1 = o.Y1
	}
	return b
}

// Contains reports whether o lies entirely within b.
func (b Box) Contains(o Box) bool {
	return o.X0 >= b.X0 && o.X1 <= b.X1 && o.Y0 >= b.Y0 && o.Y1 <= b.Y1
}

// Subtract returns outer minus inner as up to four disjoint strips
// (top, bottom, left, right). Compositors use this to touch the
// border between bounded and unbounded extents with whole-rectangle
// operations instead of per-pixel clip tests.
func Subtract(outer, inner Box) []Box {
	inner = inner.Intersect(outer)
	if inner.Empty() {
		return []Box{outer}
	}

	var strips []Box
	if inner.Y0 > outer.Y0 {
		strips = append(strips, Box{outer.X0, outer.Y0, outer.X1, inner.Y0})
	}
	if inner.Y1 < outer.Y1 {
		strips = append(strips, Box{outer.X0, inner.Y1, outer.X1, outer.Y1})
	}
	if inner.X0 > outer.X0 {
		strips = append(strips, Box{outer.X0, inner.Y0, inner.X0, inner.Y1})
	}
	if inner.X1 < outer.X1 {
		strips = append(strips, Box{inner.X1, inner.Y0, outer.X1, inner.Y1})
	}
	return strips
}

// Region is a clip area described as a list of boxes. A nil *Region
// means "no clip". The boxes of a well-formed region are disjoint;
// callers constructing regions by hand are trusted to keep them so.
type Region struct {
	boxes []Box
}

// NewRegion builds a region from boxes, dropping empty ones.
func NewRegion(boxes ...Box) *Region {
	r := &Region{boxes: make([]Box, 0, len(boxes))}
	for _, b := range boxes {
		if !b.Empty() {
			r.boxes = append(r.boxes, b)
		}
	}
	return r
}

// Boxes returns the region's boxes. The slice is owned by the region.
func (r *Region) Boxes() []Box {
	if r == nil {
		return nil
	}
	return r.boxes
}

// Extents returns the bounding box of the region.
func (r *Region) Extents() Box {
	if r == nil || len(r.boxes) == 0 {
		return Box{}
	}
	e := r.boxes[0]
	for _, b := range r.boxes[1:] {
		if b.X0 < e.X0 {
			e.X0 = b.X0
		}
		if b.Y0 < e.Y0 {
			e.Y0 = b.Y0
		}
		if b.X1 > e.X1 {
			e.X1 = b.X1
		}
		if b.Y1 > e.Y1 {
			e.Y1 = b.Y1
		}
	}
	return e
}

// ClipBox intersects b with the region, appending the resulting boxes
// to dst. A nil region passes b through unchanged.
func (r *Region) ClipBox(dst []Box, b Box) []Box {
	if r == nil {
		if !b.Empty() {
			return append(dst, b)
		}
		return dst
	}
	for _, rb := range r.boxes {
		ib := b.Intersect(rb)
		if !ib.Empty() {
			dst = append(dst, ib)
		}
	}
	return dst
}

// ContainsBox reports whether b is entirely inside the region. A nil
// region contains everything.
func (r *Region) ContainsBox(b Box) bool {
	if r == nil {
		return true
	}
	// Fast path: a single region box either contains b or not.
	for _, rb := range r.boxes {
		if rb.Contains(b) {
			return true
		}
	}
	return false
}
