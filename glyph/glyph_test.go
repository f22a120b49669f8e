package glyph

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan"
)

func regular(t testing.TB) *Font {
	t.Helper()
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("parsing goregular: %v", err)
	}
	return f
}

func TestParseAssignsUniqueIDs(t *testing.T) {
	a := regular(t)
	b := regular(t)
	if a.ID == b.ID {
		t.Error("two parsed fonts share an ID")
	}
	if a.NumGlyphs() == 0 {
		t.Error("font reports no glyphs")
	}
}

func TestGlyphIndexCachesLookups(t *testing.T) {
	f := regular(t)

	gid := f.GlyphIndex('A')
	if gid == 0 {
		t.Fatal("'A' mapped to notdef")
	}
	if again := f.GlyphIndex('A'); again != gid {
		t.Errorf("repeated lookup = %d, want %d", again, gid)
	}
	if f.GlyphIndex('￿') != 0 {
		t.Error("unmapped rune should yield notdef")
	}
}

func TestRasterizeProducesCoverage(t *testing.T) {
	f := regular(t)
	r := NewRasterizer()

	mask, err := r.Rasterize(f, f.GlyphIndex('A'), fixed.I(24))
	if err != nil {
		t.Fatal(err)
	}
	if mask.Surface.Format() != scan.FormatA8 {
		t.Fatalf("mask format = %v, want A8", mask.Surface.Format())
	}
	w, h := mask.Surface.Width(), mask.Surface.Height()
	if w <= 0 || h <= 0 || w > 30 || h > 30 {
		t.Fatalf("implausible mask size %dx%d for 24px glyph", w, h)
	}

	full, nonzero := 0, 0
	for _, a := range mask.Surface.Pix8() {
		if a > 0 {
			nonzero++
		}
		if a == 255 {
			full++
		}
	}
	if nonzero == 0 {
		t.Fatal("mask is entirely empty")
	}
	if full == 0 {
		t.Error("a 24px 'A' should have fully covered pixels")
	}
	// 'A' is mostly whitespace inside its box.
	if nonzero == w*h {
		t.Error("mask is entirely covered")
	}
}

func TestRasterizeEmptyGlyph(t *testing.T) {
	f := regular(t)
	r := NewRasterizer()

	_, err := r.Rasterize(f, f.GlyphIndex(' '), fixed.I(16))
	if !errors.Is(err, ErrEmptyGlyph) {
		t.Fatalf("space glyph error = %v, want ErrEmptyGlyph", err)
	}
}

func TestCacheReturnsSharedMask(t *testing.T) {
	f := regular(t)
	c := NewCache(16)

	gid := f.GlyphIndex('g')
	m1, err := c.Mask(f, gid, fixed.I(20))
	if err != nil {
		t.Fatal(err)
	}
	m2, err := c.Mask(f, gid, fixed.I(20))
	if err != nil {
		t.Fatal(err)
	}
	if m1 != m2 {
		t.Error("cache rasterized the same glyph twice")
	}

	// A different size is a different entry.
	m3, err := c.Mask(f, gid, fixed.I(21))
	if err != nil {
		t.Fatal(err)
	}
	if m3 == m1 {
		t.Error("distinct sizes share a mask")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 {
		t.Errorf("stats = %d hits %d misses, want 1/2", s.Hits, s.Misses)
	}
}

func TestCacheEmptyGlyphIsNil(t *testing.T) {
	f := regular(t)
	c := NewCache(16)

	m, err := c.Mask(f, f.GlyphIndex(' '), fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Error("space glyph should cache as nil mask")
	}
}

func TestShowGlyphsOnDevice(t *testing.T) {
	f := regular(t)

	mask, err := Rasterized(f, f.GlyphIndex('H'), fixed.I(16))
	if err != nil {
		t.Fatal(err)
	}
	if mask == nil {
		t.Fatal("'H' rasterized to nil")
	}

	dst, err := scan.NewSurface(scan.FormatARGB32, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	dev := scan.NewDevice(dst)
	black := scan.NewSolid(0, 0, 0, 255)

	originX, originY := 8, 24
	err = dev.ShowGlyphs(scan.OpOver, black, []scan.Glyph{{
		Mask: mask.Surface,
		X:    originX + mask.Left,
		Y:    originY + mask.Top,
	}})
	if err != nil {
		t.Fatal(err)
	}

	painted := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if dst.Pixel32(x, y) != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Fatal("glyph left no marks on the surface")
	}
}

func TestResetStaticDataClearsDefaultCache(t *testing.T) {
	f := regular(t)
	if _, err := Rasterized(f, f.GlyphIndex('x'), fixed.I(14)); err != nil {
		t.Fatal(err)
	}
	if DefaultCache().Stats().Len == 0 {
		t.Fatal("default cache empty after rasterization")
	}

	scan.ResetStaticData()
	if got := DefaultCache().Stats().Len; got != 0 {
		t.Errorf("default cache holds %d masks after reset", got)
	}
}

func BenchmarkCachedMask(b *testing.B) {
	f := regular(b)
	c := NewCache(64)
	gid := f.GlyphIndex('e')

	for i := 0; i < b.N; i++ {
		if _, err := c.Mask(f, gid, fixed.I(18)); err != nil {
			b.Fatal(err)
		}
	}
}
