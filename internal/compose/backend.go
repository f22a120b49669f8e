// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"github.com/gogpu/scan/internal/blend"
	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/image"
	"github.com/gogpu/scan/internal/raster"
)

// FastCompositor handles the operations that reduce to row memsets
// and declines everything else. Placed first in a chain it keeps the
// common solid-fill traffic off the general span machinery.
type FastCompositor struct{}

// FillBoxes handles CLEAR, SOURCE, opaque OVER and the no-op cases.
func (FastCompositor) FillBoxes(dst *image.Buf, op blend.Operator, pixel uint32, boxes []clip.Box) error {
	switch {
	case op == blend.OpClear:
		pixel = 0
	case op == blend.OpSource:
	case op == blend.OpOver && pixel>>24 == 0xff:
	case op == blend.OpOver && pixel == 0, op == blend.OpDest:
		return nil
	default:
		return ErrUnsupported
	}

	for _, b := range boxes {
		for y := b.Y0; y < b.Y1; y++ {
			dst.FillRun(y, b.X0, b.X1, pixel)
		}
	}
	return nil
}

// Composite handles solid sources whose operator reduces to a fill.
func (f FastCompositor) Composite(dst *image.Buf, op blend.Operator, src Pattern, area clip.Box, region *clip.Region) error {
	s, ok := src.(Solid)
	if !ok {
		return ErrUnsupported
	}
	area = area.Intersect(clip.Box{X1: dst.W, Y1: dst.H})
	return f.FillBoxes(dst, op, s.Pixel, region.ClipBox(nil, area))
}

// CompositeBoxes handles solid sources whose operator reduces to a
// fill.
func (f FastCompositor) CompositeBoxes(dst *image.Buf, op blend.Operator, src Pattern, boxes []clip.Box) error {
	s, ok := src.(Solid)
	if !ok {
		return ErrUnsupported
	}
	return f.FillBoxes(dst, op, s.Pixel, boxes)
}

// CompositeTraps always declines; trapezoids need the rasterizer.
func (FastCompositor) CompositeTraps(dst *image.Buf, op blend.Operator, src Pattern, traps []Trap, fill FillParams, region *clip.Region) error {
	return ErrUnsupported
}

// CompositeGlyphs always declines.
func (FastCompositor) CompositeGlyphs(dst *image.Buf, op blend.Operator, src Pattern, glyphs []Glyph, region *clip.Region) error {
	return ErrUnsupported
}

// SpansCompositor is the general backend: it rasterizes shapes with
// the scan converter and composites the resulting spans. It never
// declines except for glyph compositing with mask-unbounded
// operators.
//
// The compositor owns one reusable converter; it must not be used
// concurrently.
type SpansCompositor struct {
	conv   *raster.Converter
	srcRow []uint32
}

// NewSpansCompositor returns an empty spans backend; the converter is
// created on first use.
func NewSpansCompositor() *SpansCompositor {
	return &SpansCompositor{}
}

func (s *SpansCompositor) resetConverter(area clip.Box) error {
	if s.conv == nil {
		c, err := raster.NewConverter(area.X0, area.Y0, area.X1, area.Y1)
		if err != nil {
			return err
		}
		s.conv = c
		return nil
	}
	return s.conv.Reset(area.X0, area.Y0, area.X1, area.Y1)
}

// FillBoxes writes a constant pixel through op, falling back to a
// per-pixel operator loop where no memset applies.
func (s *SpansCompositor) FillBoxes(dst *image.Buf, op blend.Operator, pixel uint32, boxes []clip.Box) error {
	if err := (FastCompositor{}).FillBoxes(dst, op, pixel, boxes); err == nil {
		return nil
	}

	for _, b := range boxes {
		c := NewSpanCompositor(dst, op, Solid{Pixel: pixel}, b, nil)
		for y := b.Y0; y < b.Y1; y++ {
			c.compositeRun(y, b.X0, b.X1, 255)
		}
	}
	return nil
}

// Composite applies op over a rectangular area at full coverage. For
// operators not bounded by their mask, the border between the bounded
// and unbounded extents is then cleared strip by strip: a zero mask
// under the IN/OUT family clears the destination, and rectangle
// subtraction reaches those pixels without per-pixel clip tests.
func (s *SpansCompositor) Composite(dst *image.Buf, op blend.Operator, src Pattern, area clip.Box, region *clip.Region) error {
	ext := NewRectangles(dst, op, src, area, region)

	if b := ext.Bounded; !b.Empty() {
		r := NewSpanCompositor(dst, op, src, b, region)
		spans := []raster.Span{{X: int32(b.X0), Coverage: 255}}
		if err := r.RenderRows(b.Y0, b.Height(), spans); err != nil {
			return err
		}
		if err := r.Finish(); err != nil {
			return err
		}
	}
	if ext.IsBounded() {
		return nil
	}

	var boxes []clip.Box
	for _, strip := range clip.Subtract(ext.Unbounded, ext.Bounded) {
		boxes = region.ClipBox(boxes, strip)
	}
	return s.FillBoxes(dst, blend.OpClear, 0, boxes)
}

// CompositeBoxes routes pixel-aligned boxes through the trapezoid
// path, which handles every operator uniformly.
func (s *SpansCompositor) CompositeBoxes(dst *image.Buf, op blend.Operator, src Pattern, boxes []clip.Box) error {
	traps := make([]Trap, 0, len(boxes))
	for _, b := range boxes {
		if !b.Empty() {
			traps = append(traps, boxTrap(b))
		}
	}
	return s.CompositeTraps(dst, op, src, traps, DefaultFillParams(), nil)
}

// CompositeTraps rasterizes the trapezoids and composites their
// coverage spans.
func (s *SpansCompositor) CompositeTraps(dst *image.Buf, op blend.Operator, src Pattern, traps []Trap, fill FillParams, region *clip.Region) error {
	ext := NewRectangles(dst, op, src, trapExtents(traps), region)
	area := ext.CompositeArea()
	if area.Empty() {
		return nil
	}

	if err := s.resetConverter(area); err != nil {
		return err
	}
	for i := range traps {
		t := &traps[i]
		s.conv.AddEdge(raster.Edge{
			P1: t.Left.P1, P2: t.Left.P2,
			Top: t.Top, Bottom: t.Bottom, Dir: 1,
		})
		s.conv.AddEdge(raster.Edge{
			P1: t.Right.P1, P2: t.Right.P2,
			Top: t.Top, Bottom: t.Bottom, Dir: -1,
		})
	}

	r := NewSpanCompositor(dst, op, src, area, region)
	if err := s.conv.Render(fill.WindingMask, fill.Antialias, r); err != nil {
		return err
	}
	return r.Finish()
}

// CompositeGlyphs composites A8 glyph masks pixel by pixel. Operators
// that compose outside their mask are declined; a glyph mask has no
// meaningful "outside" short of the whole destination.
func (s *SpansCompositor) CompositeGlyphs(dst *image.Buf, op blend.Operator, src Pattern, glyphs []Glyph, region *clip.Region) error {
	if !op.BoundedByMask() {
		return ErrUnsupported
	}
	if op == blend.OpDest {
		return nil
	}

	dstBox := clip.Box{X1: dst.W, Y1: dst.H}
	var boxes []clip.Box
	for _, g := range glyphs {
		mask := g.Mask
		gb := clip.Box{X0: g.X, Y0: g.Y, X1: g.X + mask.W, Y1: g.Y + mask.H}
		boxes = region.ClipBox(boxes[:0], gb.Intersect(dstBox))
		for _, b := range boxes {
			s.compositeMask(dst, op, src, mask, g.X, g.Y, b)
		}
	}
	return nil
}

// compositeMask applies one clipped glyph box, fetching the source a
// row at a time and blending through the mask's coverage bytes.
func (s *SpansCompositor) compositeMask(dst *image.Buf, op blend.Operator, src Pattern, mask *image.Buf, gx, gy int, b clip.Box) {
	n := b.Width()
	if cap(s.srcRow) < n {
		s.srcRow = make([]uint32, n)
	}
	srcRow := s.srcRow[:n]

	for y := b.Y0; y < b.Y1; y++ {
		src.FetchRow(y, b.X0, srcRow)
		cov := mask.Row8(y-gy, b.X0-gx, b.X1-gx)

		if dst.Format == image.FormatARGB32 {
			row := dst.Row32(y, b.X0, b.X1)
			for i, d := range row {
				row[i] = blend.ApplyWithCoverage(op, srcRow[i], d, cov[i])
			}
		} else {
			for i := range srcRow {
				x := b.X0 + i
				d := dst.Pixel32(x, y)
				dst.SetPixel32(x, y, blend.ApplyWithCoverage(op, srcRow[i], d, cov[i]))
			}
		}
	}
}
