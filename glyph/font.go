// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glyph rasterizes font glyph outlines into alpha masks using
// the scan converter, with caching keyed by font, glyph and size.
package glyph

import (
	"sync"
	"sync/atomic"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan/cache"
)

// GlyphID identifies a glyph within its font.
type GlyphID uint16

// fontIDs hands out process-unique font identities for cache keys.
var fontIDs atomic.Uint64

// Font wraps a parsed font. The sfnt working buffer is guarded by a
// mutex, so one Font may serve concurrent callers.
type Font struct {
	ID uint64

	mu   sync.Mutex
	sfnt *sfnt.Font
	buf  sfnt.Buffer

	// rune to glyph lookups repeat heavily during text rendering;
	// arbitrary eviction is fine for them.
	indexes *cache.Bounded[rune, GlyphID]
}

// Parse parses an OpenType or TrueType font.
func Parse(data []byte) (*Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{
		ID:      fontIDs.Add(1),
		sfnt:    f,
		indexes: cache.NewBounded[rune, GlyphID](1024),
	}, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sfnt.NumGlyphs()
}

// GlyphIndex returns the glyph for a rune; 0 (the notdef glyph) when
// the font has no mapping for it.
func (f *Font) GlyphIndex(r rune) GlyphID {
	return f.indexes.GetOrCreate(r, func() GlyphID {
		f.mu.Lock()
		defer f.mu.Unlock()
		gid, err := f.sfnt.GlyphIndex(&f.buf, r)
		if err != nil {
			return 0
		}
		return GlyphID(gid)
	})
}

// GlyphAdvance returns the horizontal advance of a glyph at the given
// size (26.6 pixels per em).
func (f *Font) GlyphAdvance(gid GlyphID, ppem fixed.Int26_6) (fixed.Int26_6, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sfnt.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), ppem, font.HintingNone)
}

// withSegments loads the outline segments of a glyph in 26.6 device
// units and passes them to fn. The segments alias the font's working
// buffer, so fn runs under the font lock and must not retain them.
func (f *Font) withSegments(gid GlyphID, ppem fixed.Int26_6, fn func(sfnt.Segments) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	segs, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return err
	}
	return fn(segs)
}
