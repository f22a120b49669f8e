// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scan

import (
	"sync"

	"github.com/gogpu/scan/internal/clip"
	"github.com/gogpu/scan/internal/image"
)

// Format identifies a surface's pixel layout.
type Format uint8

const (
	// FormatARGB32 is premultiplied ARGB packed into uint32 values,
	// alpha in the top byte.
	FormatARGB32 Format = iota
	// FormatA8 is 8-bit alpha only.
	FormatA8
	// FormatA1 is 1-bit alpha, stored one byte per pixel as 0 or 255.
	FormatA1
)

// String returns the format's name.
func (f Format) String() string { return f.internal().String() }

func (f Format) internal() image.Format {
	switch f {
	case FormatA8:
		return image.FormatA8
	case FormatA1:
		return image.FormatA1
	default:
		return image.FormatARGB32
	}
}

// Rect is a half-open pixel rectangle [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) box() clip.Box {
	return clip.Box{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

// Surface is a pixel destination for compositing. Access to its
// pixels through a Device is serialized by an internal mutex; direct
// access through Pix32/Pix8 is the caller's to synchronize.
type Surface struct {
	mu   sync.Mutex
	buf  *image.Buf
	clip *clip.Region
}

// NewSurface allocates a transparent surface.
func NewSurface(format Format, w, h int) (*Surface, error) {
	buf, err := image.NewBuf(format.internal(), w, h)
	if err != nil {
		return nil, err
	}
	return &Surface{buf: buf}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.buf.W }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.buf.H }

// Format returns the surface's pixel format.
func (s *Surface) Format() Format {
	switch s.buf.Format {
	case image.FormatA8:
		return FormatA8
	case image.FormatA1:
		return FormatA1
	default:
		return FormatARGB32
	}
}

// Stride returns the row stride: in uint32 elements for ARGB32, bytes
// otherwise.
func (s *Surface) Stride() int { return s.buf.Stride }

// Pix32 exposes the raw ARGB32 pixels; nil for alpha formats.
func (s *Surface) Pix32() []uint32 { return s.buf.Pix32 }

// Pix8 exposes the raw alpha bytes; nil for ARGB32.
func (s *Surface) Pix8() []uint8 { return s.buf.Pix8 }

// Pixel32 reads one pixel as packed premultiplied ARGB regardless of
// format.
func (s *Surface) Pixel32(x, y int) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Pixel32(x, y)
}

// SetClip restricts subsequent Device operations on this surface to
// the union of the given rectangles. No rectangles removes the clip.
func (s *Surface) SetClip(rects ...Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rects) == 0 {
		s.clip = nil
		return
	}
	boxes := make([]clip.Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, r.box())
	}
	s.clip = clip.NewRegion(boxes...)
}

// acquire locks the surface for one composite operation and returns
// its buffer and clip.
func (s *Surface) acquire() (*image.Buf, *clip.Region) {
	s.mu.Lock()
	return s.buf, s.clip
}

func (s *Surface) release() {
	s.mu.Unlock()
}
