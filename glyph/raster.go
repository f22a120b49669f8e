// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"errors"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan"
)

// ErrEmptyGlyph reports a glyph with no outline, such as a space.
var ErrEmptyGlyph = errors.New("glyph: empty outline")

// flattenTolerance is the maximum distance, in 26.6 units, between a
// curve and its line approximation: a quarter pixel.
const flattenTolerance = 16

// Mask is one rasterized glyph: an A8 coverage surface and the offset
// of its top-left corner relative to the glyph origin.
type Mask struct {
	Surface *scan.Surface
	// Left and Top position the mask: a glyph drawn with its origin
	// at (x, y) places the mask at (x+Left, y+Top).
	Left, Top int
}

// Rasterizer converts glyph outlines into A8 masks. It keeps one
// converter across calls; not safe for concurrent use.
type Rasterizer struct {
	conv *scan.Converter
}

// NewRasterizer returns an empty rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize renders one glyph of f at the given size (26.6 pixels per
// em) into a fresh mask. Returns ErrEmptyGlyph for outlines with no
// area.
func (r *Rasterizer) Rasterize(f *Font, gid GlyphID, ppem fixed.Int26_6) (*Mask, error) {
	var edges []scan.Edge
	err := f.withSegments(gid, ppem, func(segs sfnt.Segments) error {
		edges = flattenSegments(nil, segs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, ErrEmptyGlyph
	}

	x0, y0, x1, y1 := edgeBounds(edges)
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGlyph
	}

	mask, err := scan.NewSurface(scan.FormatA8, w, h)
	if err != nil {
		return nil, err
	}

	if r.conv == nil {
		r.conv, err = scan.NewConverter(0, 0, w, h)
	} else {
		err = r.conv.Reset(0, 0, w, h)
	}
	if err != nil {
		return nil, err
	}

	off := fixed.Point26_6{X: fixed.Int26_6(x0 << 6), Y: fixed.Int26_6(y0 << 6)}
	for _, e := range edges {
		e.P1 = e.P1.Sub(off)
		e.P2 = e.P2.Sub(off)
		e.Top -= off.Y
		e.Bottom -= off.Y
		r.conv.AddEdge(e)
	}

	if err := r.conv.Generate(&maskWriter{dst: mask}); err != nil {
		return nil, err
	}
	return &Mask{Surface: mask, Left: x0, Top: y0}, nil
}

// maskWriter writes coverage spans into an A8 surface.
type maskWriter struct {
	dst *scan.Surface
}

func (w *maskWriter) RenderRows(y, height int, spans []scan.Span) error {
	pix := w.dst.Pix8()
	stride := w.dst.Stride()
	width := w.dst.Width()

	for row := y; row < y+height; row++ {
		line := pix[row*stride : row*stride+width]
		for i, s := range spans {
			if s.Coverage == 0 {
				continue
			}
			x1 := width
			if i+1 < len(spans) {
				x1 = int(spans[i+1].X)
			}
			for x := int(s.X); x < x1; x++ {
				line[x] = s.Coverage
			}
		}
	}
	return nil
}

// flattenSegments converts sfnt outline segments to polygon edges,
// approximating curves with line chains and closing each contour.
func flattenSegments(edges []scan.Edge, segs sfnt.Segments) []scan.Edge {
	var cur, start fixed.Point26_6
	open := false

	closeContour := func() {
		if open && cur != start {
			edges = append(edges, scan.LineEdge(cur, start))
		}
		open = false
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			cur = seg.Args[0]
			start = cur
			open = true
		case sfnt.SegmentOpLineTo:
			if p := seg.Args[0]; p != cur {
				edges = append(edges, scan.LineEdge(cur, p))
				cur = p
			}
		case sfnt.SegmentOpQuadTo:
			edges = flattenQuad(edges, cur, seg.Args[0], seg.Args[1])
			cur = seg.Args[1]
		case sfnt.SegmentOpCubeTo:
			edges = flattenCube(edges, cur, seg.Args[0], seg.Args[1], seg.Args[2])
			cur = seg.Args[2]
		}
	}
	closeContour()
	return edges
}

// flattenQuad subdivides a quadratic bezier until the control point is
// within tolerance of the chord.
func flattenQuad(edges []scan.Edge, p0, p1, p2 fixed.Point26_6) []scan.Edge {
	if flatEnough2(p0, p1, p2) {
		if p2 != p0 {
			edges = append(edges, scan.LineEdge(p0, p2))
		}
		return edges
	}
	// de Casteljau split at t = 1/2.
	p01 := midpoint(p0, p1)
	p12 := midpoint(p1, p2)
	m := midpoint(p01, p12)
	edges = flattenQuad(edges, p0, p01, m)
	return flattenQuad(edges, m, p12, p2)
}

// flattenCube subdivides a cubic bezier until both control points are
// within tolerance of the chord.
func flattenCube(edges []scan.Edge, p0, p1, p2, p3 fixed.Point26_6) []scan.Edge {
	if flatEnough2(p0, p1, p3) && flatEnough2(p0, p2, p3) {
		if p3 != p0 {
			edges = append(edges, scan.LineEdge(p0, p3))
		}
		return edges
	}
	p01 := midpoint(p0, p1)
	p12 := midpoint(p1, p2)
	p23 := midpoint(p2, p3)
	p012 := midpoint(p01, p12)
	p123 := midpoint(p12, p23)
	m := midpoint(p012, p123)
	edges = flattenCube(edges, p0, p01, p012, m)
	return flattenCube(edges, m, p123, p23, p3)
}

// flatEnough2 bounds the deviation of control point c from the chord
// p0-p2 by its axis distances to the chord midpoint; within half the
// subdivision this is a conservative flatness test.
func flatEnough2(p0, c, p2 fixed.Point26_6) bool {
	m := midpoint(p0, p2)
	dx := int32(c.X - m.X)
	dy := int32(c.Y - m.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy <= flattenTolerance
}

func midpoint(a, b fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// edgeBounds returns the pixel bounding box of the edges, rounded
// outward.
func edgeBounds(edges []scan.Edge) (x0, y0, x1, y1 int) {
	e0 := edges[0]
	xmin, xmax := e0.P1.X, e0.P1.X
	ymin, ymax := e0.P1.Y, e0.P1.Y
	for _, e := range edges {
		for _, p := range [2]fixed.Point26_6{e.P1, e.P2} {
			if p.X < xmin {
				xmin = p.X
			}
			if p.X > xmax {
				xmax = p.X
			}
			if p.Y < ymin {
				ymin = p.Y
			}
			if p.Y > ymax {
				ymax = p.Y
			}
		}
	}
	return int(xmin >> 6), int(ymin >> 6), int((xmax + 63) >> 6), int((ymax + 63) >> 6)
}
