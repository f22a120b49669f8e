// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/image"
)

// Pattern supplies premultiplied ARGB32 source pixels to the
// compositor one destination row at a time.
type Pattern interface {
	// IsOpaque reports whether every fetched pixel has alpha 255.
	// Opaque sources let OVER degrade to SOURCE on fully covered runs.
	IsOpaque() bool

	// FetchRow fills dst with the source pixels for destination row y,
	// columns [x0, x0+len(dst)). Pixels outside the pattern's extent
	// are transparent black.
	FetchRow(y, x0 int, dst []uint32)
}

// BoundedPattern is implemented by patterns with finite extent, such
// as surface patterns without repeat. Solid colors are infinite and do
// not implement it.
type BoundedPattern interface {
	// Extent returns the destination-space box outside which the
	// pattern fetches transparent black.
	Extent() clip.Box
}

// Solid is a single premultiplied pixel repeated everywhere.
type Solid struct {
	Pixel uint32
}

// IsOpaque reports whether the pixel's alpha is 255.
func (s Solid) IsOpaque() bool { return s.Pixel>>24 == 0xff }

// FetchRow fills dst with the solid pixel.
func (s Solid) FetchRow(y, x0 int, dst []uint32) {
	for i := range dst {
		dst[i] = s.Pixel
	}
}

// SurfacePattern samples another buffer under an integer translation:
// destination (x, y) reads source (x-DX, y-DY). There is no repeat
// mode; reads outside the source are transparent.
type SurfacePattern struct {
	Src    *image.Buf
	DX, DY int
}

// IsOpaque is conservatively false: even a fully opaque source buffer
// has transparent surroundings.
func (p *SurfacePattern) IsOpaque() bool { return false }

// Extent returns the destination box covered by the source buffer.
func (p *SurfacePattern) Extent() clip.Box {
	return clip.Box{X0: p.DX, Y0: p.DY, X1: p.DX + p.Src.W, Y1: p.DY + p.Src.H}
}

// FetchRow copies one translated source row, zero-filling the parts of
// dst that fall outside the source.
func (p *SurfacePattern) FetchRow(y, x0 int, dst []uint32) {
	sy := y - p.DY
	if sy < 0 || sy >= p.Src.H {
		clearRow(dst)
		return
	}

	sx := x0 - p.DX
	i := 0
	for ; i < len(dst) && sx < 0; i, sx = i+1, sx+1 {
		dst[i] = 0
	}
	if p.Src.Format == image.FormatARGB32 && sx < p.Src.W {
		n := min(len(dst)-i, p.Src.W-sx)
		copy(dst[i:], p.Src.Row32(sy, sx, sx+n))
		i, sx = i+n, sx+n
	}
	for ; i < len(dst) && sx < p.Src.W; i, sx = i+1, sx+1 {
		dst[i] = p.Src.Pixel32(sx, sy)
	}
	clearRow(dst[i:])
}

// canCopyRun reports whether the pattern can feed dst's format with
// raw row copies over the given destination row range.
func (p *SurfacePattern) canCopyRun(dst *image.Buf) bool {
	return p.Src.Format == dst.Format
}

func clearRow(dst []uint32) {
	for i := range dst {
		dst[i] = 0
	}
}
