// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scan

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan/internal/raster"
)

// FillRule determines which regions a self-intersecting polygon
// fills.
type FillRule uint8

const (
	// FillRuleNonZero fills where the signed crossing count is
	// non-zero.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills where the crossing count is odd.
	FillRuleEvenOdd
)

// String returns the fill rule's name.
func (f FillRule) String() string {
	if f == FillRuleEvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

func (f FillRule) windingMask() uint32 {
	if f == FillRuleEvenOdd {
		return raster.MaskEvenOdd
	}
	return raster.MaskNonZero
}

// Antialias selects the coverage depth of generated spans.
type Antialias uint8

const (
	// AntialiasGray produces 8-bit coverage.
	AntialiasGray Antialias = iota
	// AntialiasNone thresholds coverage to 0 or 255.
	AntialiasNone
)

// String returns the antialias mode's name.
func (a Antialias) String() string {
	if a == AntialiasNone {
		return "None"
	}
	return "Gray"
}

// Re-exported rasterizer types. See the internal raster package for
// their contracts.
type (
	// Span is a half-open run of pixels at one coverage value.
	Span = raster.Span
	// SpanRenderer consumes generated spans row by row.
	SpanRenderer = raster.SpanRenderer
	// Finisher is an optional end-of-generation hook on a renderer.
	Finisher = raster.Finisher
	// Edge is a directed polygon edge in 26.6 coordinates.
	Edge = raster.Edge
)

// LineEdge builds an Edge covering the full vertical extent of the
// segment from p1 to p2, winding in path order.
func LineEdge(p1, p2 fixed.Point26_6) Edge {
	top, bottom := p1.Y, p2.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	return Edge{P1: p1, P2: p2, Top: top, Bottom: bottom, Dir: 1}
}

// Converter turns polygon edges into coverage spans. It may be reused
// across shapes via Reset; its internal pools then serve the next
// shape without reallocating.
type Converter struct {
	inner     *raster.Converter
	fillRule  FillRule
	antialias Antialias
}

// NewConverter returns a converter clipping output to the pixel box
// [xmin,xmax) x [ymin,ymax).
func NewConverter(xmin, ymin, xmax, ymax int) (*Converter, error) {
	inner, err := raster.NewConverter(xmin, ymin, xmax, ymax)
	if err != nil {
		return nil, err
	}
	return &Converter{inner: inner}, nil
}

// Reset discards all edges and establishes a new clip box. Fill rule
// and antialias settings are kept.
func (c *Converter) Reset(xmin, ymin, xmax, ymax int) error {
	return c.inner.Reset(xmin, ymin, xmax, ymax)
}

// SetFillRule selects the fill rule for subsequent Generate calls.
func (c *Converter) SetFillRule(f FillRule) { c.fillRule = f }

// FillRule returns the current fill rule.
func (c *Converter) FillRule() FillRule { return c.fillRule }

// SetAntialias selects the coverage depth for subsequent Generate
// calls.
func (c *Converter) SetAntialias(a Antialias) { c.antialias = a }

// Antialias returns the current antialias mode.
func (c *Converter) Antialias() Antialias { return c.antialias }

// SetAllocationLimit caps the number of edge and coverage cells the
// converter may allocate; exceeding it surfaces ErrNoMemory from
// Generate. A negative limit removes the cap.
func (c *Converter) SetAllocationLimit(n int) {
	c.inner.SetAllocationLimit(n)
}

// AddEdge feeds one polygon edge. Errors latch and surface from
// Generate; edges after a failure are ignored.
func (c *Converter) AddEdge(e Edge) {
	c.inner.AddEdge(e)
}

// Generate sweeps the accumulated edges and streams coverage spans to
// r, calling its Finish hook (if any) after the last row. On error
// the sweep stops and Finish is not called.
func (c *Converter) Generate(r SpanRenderer) error {
	err := c.inner.Render(c.fillRule.windingMask(), c.antialias == AntialiasGray, r)
	if err != nil {
		return err
	}
	if f, ok := r.(Finisher); ok {
		return f.Finish()
	}
	return nil
}
