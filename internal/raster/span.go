// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Span is a half-open horizontal run of pixels sharing one coverage
// value. A span starting at X extends to the X of the following span
// in the same row (or to the row's right clip bound for the last one).
type Span struct {
	X        int32
	Coverage uint8
}

// SpanRenderer consumes the rasterizer's output. RenderRows is called
// once per run of height identical pixel rows, top to bottom, with
// spans in strictly increasing x order. The spans slice is reused
// between calls and must not be retained.
type SpanRenderer interface {
	RenderRows(y, height int, spans []Span) error
}

// Finisher is an optional extension of SpanRenderer for renderers that
// need an end-of-operation flush, such as compositors applying
// unbounded-operator fixups.
type Finisher interface {
	Finish() error
}
