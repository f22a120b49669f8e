// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scan

import (
	"github.com/gogpu/scan/internal/blend"
	"github.com/gogpu/scan/internal/compose"
)

// Operator is a Porter-Duff compositing operator.
type Operator = blend.Operator

// The supported compositing operators.
const (
	OpClear    = blend.OpClear
	OpSource   = blend.OpSource
	OpOver     = blend.OpOver
	OpIn       = blend.OpIn
	OpOut      = blend.OpOut
	OpAtop     = blend.OpAtop
	OpDest     = blend.OpDest
	OpDestOver = blend.OpDestOver
	OpDestIn   = blend.OpDestIn
	OpDestOut  = blend.OpDestOut
	OpDestAtop = blend.OpDestAtop
	OpXor      = blend.OpXor
	OpAdd      = blend.OpAdd
)

// Pattern supplies source pixels to composite operations. Solid and
// SurfacePattern are the built-in implementations; any type with the
// same methods works.
type Pattern = compose.Pattern

// Solid is a single premultiplied ARGB32 pixel repeated everywhere.
type Solid = compose.Solid

// SurfacePattern samples a surface under an integer translation.
type SurfacePattern = compose.SurfacePattern

// NewSolid builds a solid pattern from non-premultiplied channels.
func NewSolid(r, g, b, a uint8) Solid {
	return Solid{Pixel: premultiply(r, g, b, a)}
}

// NewSurfacePattern makes src's pixels available as a pattern:
// destination (x, y) samples src at (x-dx, y-dy). The pattern reads
// the surface's buffer directly; compositing a surface onto itself is
// not supported.
func NewSurfacePattern(src *Surface, dx, dy int) *SurfacePattern {
	return &SurfacePattern{Src: src.buf, DX: dx, DY: dy}
}

func premultiply(r, g, b, a uint8) uint32 {
	if a == 255 {
		return 0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	if a == 0 {
		return 0
	}
	mul := func(c uint8) uint32 {
		return (uint32(c)*uint32(a) + 127) / 255
	}
	return uint32(a)<<24 | mul(r)<<16 | mul(g)<<8 | mul(b)
}
