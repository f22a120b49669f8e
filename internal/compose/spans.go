// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"github.com/gogpu/scan/internal/blend"
	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/image"
	"github.com/gogpu/scan/internal/raster"
)

// SpanCompositor consumes rasterizer spans and composites them onto a
// destination buffer. It implements raster.SpanRenderer and
// raster.Finisher.
//
// The run strategies, fastest first:
//
//   - constant fill: solid source with CLEAR, SOURCE, or opaque OVER
//     at full coverage reduces to a row memset
//   - solid blend: the coverage-scaled source pixel is computed once
//     per run and blended across it
//   - direct copy: a same-format surface pattern under SOURCE at full
//     coverage row-copies from the source buffer
//   - generic: fetch a source row and apply the operator per pixel
//
// Operators that are not bounded by their mask compose zero-coverage
// pixels too. The converter sweeps the full unbounded extents for
// them; rows and leading runs it never reports are composed at zero
// coverage here (which for the IN/OUT family means cleared), with
// Finish handling the rows after the last reported one.
type SpanCompositor struct {
	dst  *image.Buf
	op   blend.Operator
	src  Pattern
	area clip.Box

	// Clip boxes pre-intersected with area. Always at least one entry
	// when the area is non-empty.
	clipBoxes []clip.Box

	maskBounded bool
	nextY       int

	solid   uint32
	isSolid bool

	surface *SurfacePattern

	srcRow []uint32
}

// NewSpanCompositor prepares a compositor writing src through op onto
// dst, sweeping area under the region clip.
func NewSpanCompositor(dst *image.Buf, op blend.Operator, src Pattern, area clip.Box, region *clip.Region) *SpanCompositor {
	c := &SpanCompositor{
		dst:         dst,
		op:          op,
		src:         src,
		area:        area,
		maskBounded: op.BoundedByMask(),
		nextY:       area.Y0,
	}
	if region == nil {
		c.clipBoxes = []clip.Box{area}
	} else {
		c.clipBoxes = region.ClipBox(nil, area)
	}
	if s, ok := src.(Solid); ok {
		c.isSolid = true
		c.solid = s.Pixel
	}
	if p, ok := src.(*SurfacePattern); ok && p.canCopyRun(dst) {
		c.surface = p
	}
	return c
}

// RenderRows composites one run of identical rows.
func (c *SpanCompositor) RenderRows(y, height int, spans []raster.Span) error {
	if !c.maskBounded && y > c.nextY {
		c.zeroRows(c.nextY, y-c.nextY)
	}
	c.nextY = y + height

	if len(spans) == 0 {
		if !c.maskBounded {
			c.zeroRows(y, height)
		}
		return nil
	}

	for _, b := range c.clipBoxes {
		y0 := max(y, b.Y0)
		y1 := min(y+height, b.Y1)
		for yy := y0; yy < y1; yy++ {
			c.renderRow(yy, b.X0, b.X1, spans)
		}
	}
	return nil
}

// Finish composes the rows after the last reported span row for
// mask-unbounded operators. Bounded operators need nothing.
func (c *SpanCompositor) Finish() error {
	if !c.maskBounded && c.nextY < c.area.Y1 {
		c.zeroRows(c.nextY, c.area.Y1-c.nextY)
		c.nextY = c.area.Y1
	}
	return nil
}

// renderRow walks one row's spans, clips each run to [cx0, cx1) and
// composites it. The run before the first span has zero coverage.
func (c *SpanCompositor) renderRow(y, cx0, cx1 int, spans []raster.Span) {
	if !c.maskBounded && int(spans[0].X) > c.area.X0 {
		gx0 := max(c.area.X0, cx0)
		gx1 := min(int(spans[0].X), cx1)
		if gx0 < gx1 {
			c.compositeRun(y, gx0, gx1, 0)
		}
	}

	for i, s := range spans {
		x0 := int(s.X)
		x1 := c.area.X1
		if i+1 < len(spans) {
			x1 = int(spans[i+1].X)
		}
		if x0 < cx0 {
			x0 = cx0
		}
		if x1 > cx1 {
			x1 = cx1
		}
		if x0 < x1 {
			c.compositeRun(y, x0, x1, s.Coverage)
		}
	}
}

// zeroRows composes the clipped parts of rows [y, y+h) at zero
// coverage. Only reached for the IN/OUT family, where a zero mask
// clears the destination.
func (c *SpanCompositor) zeroRows(y, h int) {
	for _, b := range c.clipBoxes {
		y0 := max(y, b.Y0)
		y1 := min(y+h, b.Y1)
		for yy := y0; yy < y1; yy++ {
			c.dst.FillRun(yy, b.X0, b.X1, 0)
		}
	}
}

// compositeRun applies the operator over [x0, x1) of row y at one
// coverage value, picking the cheapest strategy that preserves the
// operator's semantics.
func (c *SpanCompositor) compositeRun(y, x0, x1 int, coverage uint8) {
	if coverage == 0 {
		if c.maskBounded {
			return
		}
		c.dst.FillRun(y, x0, x1, 0)
		return
	}

	if c.isSolid {
		c.solidRun(y, x0, x1, coverage)
		return
	}

	if c.surface != nil && coverage == 255 && c.op == blend.OpSource {
		sy := y - c.surface.DY
		sx0 := x0 - c.surface.DX
		if sy >= 0 && sy < c.surface.Src.H && sx0 >= 0 && sx0+(x1-x0) <= c.surface.Src.W {
			c.dst.CopyRun(y, x0, c.surface.Src, sy, sx0, x1-x0)
			return
		}
	}

	c.genericRun(y, x0, x1, coverage)
}

func (c *SpanCompositor) solidRun(y, x0, x1 int, coverage uint8) {
	switch {
	case c.op == blend.OpClear && coverage == 255:
		c.dst.FillRun(y, x0, x1, 0)
		return
	case c.op == blend.OpSource && coverage == 255:
		c.dst.FillRun(y, x0, x1, c.solid)
		return
	case c.op == blend.OpOver && coverage == 255 && c.solid>>24 == 0xff:
		c.dst.FillRun(y, x0, x1, c.solid)
		return
	}

	if c.dst.Format != image.FormatARGB32 {
		c.slowRun(y, x0, x1, c.solid, coverage)
		return
	}

	row := c.dst.Row32(y, x0, x1)
	switch c.op {
	case blend.OpOver:
		cs := blend.Mul8x4(c.solid, coverage)
		ia := 255 - blend.Alpha(cs)
		for i, d := range row {
			row[i] = cs + blend.Mul8x4(d, ia)
		}
	case blend.OpAdd:
		cs := blend.Mul8x4(c.solid, coverage)
		for i, d := range row {
			row[i] = blend.Add8x4(cs, d)
		}
	case blend.OpSource:
		for i, d := range row {
			row[i] = blend.Lerp8x4(c.solid, coverage, d)
		}
	case blend.OpClear:
		ic := 255 - coverage
		for i, d := range row {
			row[i] = blend.Mul8x4(d, ic)
		}
	default:
		if c.maskBounded {
			for i, d := range row {
				row[i] = blend.ApplyWithCoverage(c.op, c.solid, d, coverage)
			}
		} else {
			cs := blend.Mul8x4(c.solid, coverage)
			for i, d := range row {
				row[i] = blend.Apply(c.op, cs, d)
			}
		}
	}
}

func (c *SpanCompositor) genericRun(y, x0, x1 int, coverage uint8) {
	n := x1 - x0
	if cap(c.srcRow) < n {
		c.srcRow = make([]uint32, n)
	}
	src := c.srcRow[:n]
	c.src.FetchRow(y, x0, src)

	if c.dst.Format != image.FormatARGB32 {
		for i, s := range src {
			c.compositePixel(x0+i, y, s, coverage)
		}
		return
	}

	row := c.dst.Row32(y, x0, x1)
	if c.maskBounded {
		for i, d := range row {
			row[i] = blend.ApplyWithCoverage(c.op, src[i], d, coverage)
		}
	} else {
		for i, d := range row {
			row[i] = blend.Apply(c.op, blend.Mul8x4(src[i], coverage), d)
		}
	}
}

// slowRun is the format-agnostic constant-source path for A8 and A1
// destinations.
func (c *SpanCompositor) slowRun(y, x0, x1 int, s uint32, coverage uint8) {
	for x := x0; x < x1; x++ {
		c.compositePixel(x, y, s, coverage)
	}
}

func (c *SpanCompositor) compositePixel(x, y int, s uint32, coverage uint8) {
	d := c.dst.Pixel32(x, y)
	if c.maskBounded {
		d = blend.ApplyWithCoverage(c.op, s, d, coverage)
	} else {
		d = blend.Apply(c.op, blend.Mul8x4(s, coverage), d)
	}
	c.dst.SetPixel32(x, y, d)
}
