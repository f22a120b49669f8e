// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scan

import (
	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/compose"
	"github.com/gogpu/scan/internal/raster"
)

// Trap is a horizontally-decomposed trapezoid.
type Trap = compose.Trap

// TrapLine is one sloped side of a Trap.
type TrapLine = compose.TrapLine

// Glyph places a rasterized alpha mask (an A8 or A1 surface) at a
// destination position.
type Glyph struct {
	Mask *Surface
	X, Y int
}

// Device composites shapes onto one destination surface. It routes
// each operation through a backend chain: a memset fast path first,
// the general span compositor behind it.
//
// The first operation error latches; subsequent operations return it
// unchanged until ClearErr. A Device is not safe for concurrent use.
type Device struct {
	dst   *Surface
	chain *compose.Chain
	conv  *raster.Converter
	err   error
}

// NewDevice returns a device targeting dst.
func NewDevice(dst *Surface) *Device {
	return &Device{
		dst:   dst,
		chain: compose.NewChain(compose.FastCompositor{}, compose.NewSpansCompositor()),
	}
}

// Err returns the latched error, if any.
func (d *Device) Err() error { return d.err }

// ClearErr unlatches the device after a failed operation. The
// destination may hold partial output from the failed operation.
func (d *Device) ClearErr() { d.err = nil }

func (d *Device) latch(err error) error {
	if err != nil && d.err == nil {
		d.err = err
	}
	return err
}

// FillRectangles fills pixel-aligned rectangles with a solid color
// through op, honoring the surface clip.
func (d *Device) FillRectangles(op Operator, color Solid, rects ...Rect) error {
	if d.err != nil {
		return d.err
	}
	buf, region := d.dst.acquire()
	defer d.dst.release()

	boxes := d.clipRects(buf.W, buf.H, region, rects)
	if len(boxes) == 0 {
		return nil
	}
	return d.latch(d.chain.FillBoxes(buf, op, color.Pixel, boxes))
}

// CompositeRectangles composites a pattern over pixel-aligned
// rectangles through op.
func (d *Device) CompositeRectangles(op Operator, src Pattern, rects ...Rect) error {
	if d.err != nil {
		return d.err
	}
	buf, region := d.dst.acquire()
	defer d.dst.release()

	boxes := d.clipRects(buf.W, buf.H, region, rects)
	if len(boxes) == 0 {
		return nil
	}
	return d.latch(d.chain.CompositeBoxes(buf, op, src, boxes))
}

// Composite applies op with the pattern over one rectangular area,
// including the operator's effect outside it for the IN/OUT family.
func (d *Device) Composite(op Operator, src Pattern, area Rect) error {
	if d.err != nil {
		return d.err
	}
	buf, region := d.dst.acquire()
	defer d.dst.release()

	return d.latch(d.chain.Composite(buf, op, src, area.box(), region))
}

// FillPolygon rasterizes the polygon described by edges and
// composites its coverage through op.
func (d *Device) FillPolygon(op Operator, src Pattern, edges []Edge, fillRule FillRule, antialias Antialias) error {
	if d.err != nil {
		return d.err
	}
	if len(edges) == 0 {
		return nil
	}
	buf, region := d.dst.acquire()
	defer d.dst.release()

	ext := compose.NewRectangles(buf, op, src, edgeExtents(edges), region)
	area := ext.CompositeArea()
	if area.Empty() {
		return nil
	}

	if err := d.resetConverter(area); err != nil {
		return d.latch(err)
	}
	for i := range edges {
		d.conv.AddEdge(edges[i])
	}

	r := compose.NewSpanCompositor(buf, op, src, area, region)
	if err := d.conv.Render(fillRule.windingMask(), antialias == AntialiasGray, r); err != nil {
		return d.latch(err)
	}
	return d.latch(r.Finish())
}

// CompositeTraps rasterizes trapezoids and composites their coverage
// through op.
func (d *Device) CompositeTraps(op Operator, src Pattern, traps []Trap, antialias Antialias) error {
	if d.err != nil {
		return d.err
	}
	buf, region := d.dst.acquire()
	defer d.dst.release()

	fill := compose.FillParams{
		WindingMask: raster.MaskNonZero,
		Antialias:   antialias == AntialiasGray,
	}
	return d.latch(d.chain.CompositeTraps(buf, op, src, traps, fill, region))
}

// ShowGlyphs composites glyph alpha masks through op. Masks must be
// A8 or A1 surfaces.
func (d *Device) ShowGlyphs(op Operator, src Pattern, glyphs []Glyph) error {
	if d.err != nil {
		return d.err
	}
	buf, region := d.dst.acquire()
	defer d.dst.release()

	gs := make([]compose.Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.Mask == nil || g.Mask.buf.Pix8 == nil {
			return d.latch(ErrUnsupported)
		}
		gs = append(gs, compose.Glyph{Mask: g.Mask.buf, X: g.X, Y: g.Y})
	}
	return d.latch(d.chain.CompositeGlyphs(buf, op, src, gs, region))
}

func (d *Device) resetConverter(area clip.Box) error {
	if d.conv == nil {
		c, err := raster.NewConverter(area.X0, area.Y0, area.X1, area.Y1)
		if err != nil {
			return err
		}
		d.conv = c
		return nil
	}
	return d.conv.Reset(area.X0, area.Y0, area.X1, area.Y1)
}

func (d *Device) clipRects(w, h int, region *clip.Region, rects []Rect) []clip.Box {
	dst := clip.Box{X1: w, Y1: h}
	var boxes []clip.Box
	for _, r := range rects {
		boxes = region.ClipBox(boxes, r.box().Intersect(dst))
	}
	return boxes
}

// edgeExtents returns the pixel bounding box of an edge list,
// rounding outward.
func edgeExtents(edges []Edge) clip.Box {
	e0 := &edges[0]
	xmin, xmax := e0.P1.X, e0.P1.X
	ymin, ymax := e0.Top, e0.Bottom
	for i := range edges {
		e := &edges[i]
		if e.P1.X < xmin {
			xmin = e.P1.X
		}
		if e.P2.X < xmin {
			xmin = e.P2.X
		}
		if e.P1.X > xmax {
			xmax = e.P1.X
		}
		if e.P2.X > xmax {
			xmax = e.P2.X
		}
		if e.Top < ymin {
			ymin = e.Top
		}
		if e.Bottom > ymax {
			ymax = e.Bottom
		}
	}
	return clip.Box{
		X0: int(xmin >> 6),
		Y0: int(ymin >> 6),
		X1: int((xmax + 63) >> 6),
		Y1: int((ymax + 63) >> 6),
	}
}
