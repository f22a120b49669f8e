// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compose turns spans, boxes, trapezoids and glyph masks into
// pixel writes against a destination buffer.
//
// Compositing is organized as a chain of backends sharing one
// interface. A backend may decline an operation by returning
// ErrUnsupported, in which case the chain falls through to the next,
// more general backend; the last backend handles everything. This
// mirrors the fast-path structure of mature rasterizers: a solid-fill
// backend that reduces to row memsets, then a general span backend.
package compose

import (
	"errors"

	"github.com/gogpu/scan/internal/blend"
	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/image"
)

// ErrUnsupported signals that a backend declines an operation and the
// caller should fall back to a more general path. It is a control-flow
// signal, not a failure.
var ErrUnsupported = errors.New("compose: operation not supported by this backend")

// Compositor is the dispatch surface shared by compositing backends.
// Every method returns nil on success, ErrUnsupported to request
// fallback, or a hard error.
type Compositor interface {
	// FillBoxes writes a constant premultiplied pixel through op into
	// each box.
	FillBoxes(dst *image.Buf, op blend.Operator, pixel uint32, boxes []clip.Box) error

	// Composite applies op with the source pattern over the given
	// destination area.
	Composite(dst *image.Buf, op blend.Operator, src Pattern, area clip.Box, region *clip.Region) error

	// CompositeBoxes is Composite over a set of fully covered boxes.
	CompositeBoxes(dst *image.Buf, op blend.Operator, src Pattern, boxes []clip.Box) error

	// CompositeTraps rasterizes trapezoids with antialiasing and
	// composites the resulting coverage.
	CompositeTraps(dst *image.Buf, op blend.Operator, src Pattern, traps []Trap, fill FillParams, region *clip.Region) error

	// CompositeGlyphs composites pre-rasterized A8 glyph masks.
	CompositeGlyphs(dst *image.Buf, op blend.Operator, src Pattern, glyphs []Glyph, region *clip.Region) error
}

// Glyph places one rasterized A8 coverage mask at a destination
// position.
type Glyph struct {
	Mask *image.Buf
	X, Y int
}

// Chain composes backends with unsupported-fallback semantics.
type Chain struct {
	backends []Compositor
}

// NewChain builds a fallback chain; backends are tried in order.
func NewChain(backends ...Compositor) *Chain {
	return &Chain{backends: backends}
}

func (c *Chain) each(f func(Compositor) error) error {
	for _, b := range c.backends {
		err := f(b)
		if !errors.Is(err, ErrUnsupported) {
			return err
		}
	}
	return ErrUnsupported
}

// FillBoxes dispatches FillBoxes through the chain.
func (c *Chain) FillBoxes(dst *image.Buf, op blend.Operator, pixel uint32, boxes []clip.Box) error {
	return c.each(func(b Compositor) error { return b.FillBoxes(dst, op, pixel, boxes) })
}

// Composite dispatches Composite through the chain.
func (c *Chain) Composite(dst *image.Buf, op blend.Operator, src Pattern, area clip.Box, region *clip.Region) error {
	return c.each(func(b Compositor) error { return b.Composite(dst, op, src, area, region) })
}

// CompositeBoxes dispatches CompositeBoxes through the chain.
func (c *Chain) CompositeBoxes(dst *image.Buf, op blend.Operator, src Pattern, boxes []clip.Box) error {
	return c.each(func(b Compositor) error { return b.CompositeBoxes(dst, op, src, boxes) })
}

// CompositeTraps dispatches CompositeTraps through the chain.
func (c *Chain) CompositeTraps(dst *image.Buf, op blend.Operator, src Pattern, traps []Trap, fill FillParams, region *clip.Region) error {
	return c.each(func(b Compositor) error { return b.CompositeTraps(dst, op, src, traps, fill, region) })
}

// CompositeGlyphs dispatches CompositeGlyphs through the chain.
func (c *Chain) CompositeGlyphs(dst *image.Buf, op blend.Operator, src Pattern, glyphs []Glyph, region *clip.Region) error {
	return c.each(func(b Compositor) error { return b.CompositeGlyphs(dst, op, src, glyphs, region) })
}
