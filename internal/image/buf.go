// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package image provides the raster destination buffers the span
// compositor writes to.
package image

import "errors"

// ErrInvalidDimensions is returned for non-positive buffer sizes.
var ErrInvalidDimensions = errors.New("image: invalid dimensions")

// Format identifies the pixel layout of a Buf.
type Format uint8

const (
	// FormatARGB32 is premultiplied ARGB packed into uint32, alpha in
	// the top byte.
	FormatARGB32 Format = iota
	// FormatA8 is 8-bit alpha only.
	FormatA8
	// FormatA1 is 1-bit alpha, stored one byte per pixel holding 0 or
	// 255 (bit packing costs more in access time than it saves here).
	FormatA1
)

// String returns the format's name.
func (f Format) String() string {
	switch f {
	case FormatARGB32:
		return "ARGB32"
	case FormatA8:
		return "A8"
	case FormatA1:
		return "A1"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the storage cost of one pixel.
func (f Format) BytesPerPixel() int {
	if f == FormatARGB32 {
		return 4
	}
	return 1
}

// Buf is a rectangular pixel buffer. ARGB32 data lives in Pix32 with
// Stride counted in uint32 elements; A8 and A1 data live in Pix8 with
// Stride counted in bytes.
type Buf struct {
	Format Format
	W, H   int
	Stride int
	Pix32  []uint32
	Pix8   []uint8
}

// NewBuf allocates a zeroed (transparent) buffer.
func NewBuf(format Format, w, h int) (*Buf, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	b := &Buf{Format: format, W: w, H: h, Stride: w}
	if format == FormatARGB32 {
		b.Pix32 = make([]uint32, w*h)
	} else {
		b.Pix8 = make([]uint8, w*h)
	}
	return b, nil
}

// Row32 returns the ARGB32 pixels of row y restricted to [x0, x1).
func (b *Buf) Row32(y, x0, x1 int) []uint32 {
	base := y * b.Stride
	return b.Pix32[base+x0 : base+x1]
}

// Row8 returns the alpha bytes of row y restricted to [x0, x1).
func (b *Buf) Row8(y, x0, x1 int) []uint8 {
	base := y * b.Stride
	return b.Pix8[base+x0 : base+x1]
}

// Pixel32 reads one pixel as packed premultiplied ARGB regardless of
// format.
func (b *Buf) Pixel32(x, y int) uint32 {
	switch b.Format {
	case FormatARGB32:
		return b.Pix32[y*b.Stride+x]
	default:
		a := uint32(b.Pix8[y*b.Stride+x])
		return a << 24
	}
}

// SetPixel32 writes one packed premultiplied ARGB pixel, converting to
// the buffer's format.
func (b *Buf) SetPixel32(x, y int, p uint32) {
	switch b.Format {
	case FormatARGB32:
		b.Pix32[y*b.Stride+x] = p
	case FormatA8:
		b.Pix8[y*b.Stride+x] = uint8(p >> 24)
	case FormatA1:
		if uint8(p>>24) > 127 {
			b.Pix8[y*b.Stride+x] = 255
		} else {
			b.Pix8[y*b.Stride+x] = 0
		}
	}
}

// FillRun overwrites the pixels [x0,x1) of row y with a constant
// packed pixel. This is the memset-style fast path.
func (b *Buf) FillRun(y, x0, x1 int, p uint32) {
	switch b.Format {
	case FormatARGB32:
		row := b.Row32(y, x0, x1)
		for i := range row {
			row[i] = p
		}
	case FormatA8:
		row := b.Row8(y, x0, x1)
		a := uint8(p >> 24)
		for i := range row {
			row[i] = a
		}
	case FormatA1:
		row := b.Row8(y, x0, x1)
		a := uint8(0)
		if uint8(p>>24) > 127 {
			a = 255
		}
		for i := range row {
			row[i] = a
		}
	}
}

// CopyRun copies [srcX0, srcX0+n) of src row srcY over [dstX0, ...)
// of dst row dstY. Both buffers must share the same format. Used by
// the direct-blit fast path for integer translations.
func (b *Buf) CopyRun(dstY, dstX0 int, src *Buf, srcY, srcX0, n int) {
	if b.Format == FormatARGB32 {
		copy(b.Row32(dstY, dstX0, dstX0+n), src.Row32(srcY, srcX0, srcX0+n))
	} else {
		copy(b.Row8(dstY, dstX0, dstX0+n), src.Row8(srcY, srcX0, srcX0+n))
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buf) Clone() *Buf {
	c := *b
	if b.Pix32 != nil {
		c.Pix32 = append([]uint32(nil), b.Pix32...)
	}
	if b.Pix8 != nil {
		c.Pix8 = append([]uint8(nil), b.Pix8...)
	}
	return &c
}
