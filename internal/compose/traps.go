// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/raster"
)

// FillParams selects the rasterization mode for shape compositing.
type FillParams struct {
	// WindingMask is raster.MaskNonZero or raster.MaskEvenOdd.
	WindingMask uint32
	// Antialias selects 8-bit coverage; false thresholds to 1-bit.
	Antialias bool
}

// DefaultFillParams is non-zero winding with antialiasing.
func DefaultFillParams() FillParams {
	return FillParams{WindingMask: raster.MaskNonZero, Antialias: true}
}

// TrapLine is one sloped side of a trapezoid. The line through P1 and
// P2 is sampled between the trapezoid's Top and Bottom; the points
// need not lie on those scanlines.
type TrapLine struct {
	P1, P2 fixed.Point26_6
}

// Trap is a horizontally-decomposed trapezoid: two scanlines and the
// left and right bounding lines between them.
type Trap struct {
	Top, Bottom fixed.Int26_6
	Left, Right TrapLine
}

// boxTrap converts a pixel-aligned box to an exactly equivalent
// trapezoid.
func boxTrap(b clip.Box) Trap {
	x0 := fixed.Int26_6(b.X0 << 6)
	x1 := fixed.Int26_6(b.X1 << 6)
	y0 := fixed.Int26_6(b.Y0 << 6)
	y1 := fixed.Int26_6(b.Y1 << 6)
	return Trap{
		Top:    y0,
		Bottom: y1,
		Left:   TrapLine{fixed.Point26_6{X: x0, Y: y0}, fixed.Point26_6{X: x0, Y: y1}},
		Right:  TrapLine{fixed.Point26_6{X: x1, Y: y0}, fixed.Point26_6{X: x1, Y: y1}},
	}
}

// trapExtents returns the pixel bounding box of a trapezoid list,
// conservatively rounding outward.
func trapExtents(traps []Trap) clip.Box {
	if len(traps) == 0 {
		return clip.Box{}
	}

	xmin := traps[0].Left.P1.X
	xmax := xmin
	ymin := traps[0].Top
	ymax := traps[0].Bottom
	for i := range traps {
		t := &traps[i]
		for _, x := range [4]fixed.Int26_6{t.Left.P1.X, t.Left.P2.X, t.Right.P1.X, t.Right.P2.X} {
			if x < xmin {
				xmin = x
			}
			if x > xmax {
				xmax = x
			}
		}
		if t.Top < ymin {
			ymin = t.Top
		}
		if t.Bottom > ymax {
			ymax = t.Bottom
		}
	}

	return clip.Box{
		X0: int(xmin >> 6),
		Y0: int(ymin >> 6),
		X1: int((xmax + 63) >> 6),
		Y1: int((ymax + 63) >> 6),
	}
}
