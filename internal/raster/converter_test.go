package raster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan/internal/pool"
)

// rowSpans captures the renderer output expanded to one entry per
// pixel row.
type rowSpans struct {
	y     int
	spans []Span
}

// recorder is a SpanRenderer that copies everything it is handed.
type recorder struct {
	rows []rowSpans
}

func (r *recorder) RenderRows(y, height int, spans []Span) error {
	for i := 0; i < height; i++ {
		r.rows = append(r.rows, rowSpans{
			y:     y + i,
			spans: append([]Span(nil), spans...),
		})
	}
	return nil
}

// coverageAt resolves the recorded coverage of pixel (x, y); spans
// extend to the x of their successor.
func (r *recorder) coverageAt(x, y int) uint8 {
	for _, row := range r.rows {
		if row.y != y {
			continue
		}
		var c uint8
		for _, s := range row.spans {
			if int(s.X) > x {
				break
			}
			c = s.Coverage
		}
		return c
	}
	return 0
}

func pt(x, y fixed.Int26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: x, Y: y}
}

// lineEdge builds an edge spanning the segment's full vertical extent,
// winding in the order given.
func lineEdge(p1, p2 fixed.Point26_6) Edge {
	top, bottom := p1.Y, p2.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	return Edge{P1: p1, P2: p2, Top: top, Bottom: bottom, Dir: 1}
}

// addPoly feeds a closed polygon given in pixel-scaled 26.6 points.
func addPoly(c *Converter, pts ...fixed.Point26_6) {
	for i := range pts {
		c.AddEdge(lineEdge(pts[i], pts[(i+1)%len(pts)]))
	}
}

func px(v int) fixed.Int26_6 { return fixed.Int26_6(v << 6) }

func TestPixelAlignedSquareIsExact(t *testing.T) {
	c, err := NewConverter(0, 0, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	addPoly(c, pt(px(2), px(2)), pt(px(6), px(2)), pt(px(6), px(6)), pt(px(2), px(6)))

	var rec recorder
	if err := c.Render(MaskNonZero, true, &rec); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := uint8(0)
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = 255
			}
			if got := rec.coverageAt(x, y); got != want {
				t.Errorf("coverage(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestHalfCoveredPixelCoverage(t *testing.T) {
	// A rectangle from x=2 to x=4.25: pixel column 4 is one quarter
	// covered.
	c, err := NewConverter(0, 0, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	right := px(4) + 16
	addPoly(c, pt(px(2), px(2)), pt(right, px(2)), pt(right, px(6)), pt(px(2), px(6)))

	var rec recorder
	if err := c.Render(MaskNonZero, true, &rec); err != nil {
		t.Fatal(err)
	}

	if got := rec.coverageAt(3, 3); got != 255 {
		t.Errorf("interior coverage = %d, want 255", got)
	}
	if got := rec.coverageAt(4, 3); got != 64 {
		t.Errorf("quarter pixel coverage = %d, want 64", got)
	}
	if got := rec.coverageAt(5, 3); got != 0 {
		t.Errorf("outside coverage = %d, want 0", got)
	}
}

func TestA1ThresholdsCoverage(t *testing.T) {
	// 0.25 coverage thresholds to 0, 0.5 rounds to 128 and thresholds
	// to 255.
	for _, tc := range []struct {
		frac fixed.Int26_6
		want uint8
	}{
		{16, 0},
		{32, 255},
	} {
		c, err := NewConverter(0, 0, 8, 8)
		if err != nil {
			t.Fatal(err)
		}
		right := px(4) + tc.frac
		addPoly(c, pt(px(2), px(2)), pt(right, px(2)), pt(right, px(6)), pt(px(2), px(6)))

		var rec recorder
		if err := c.Render(MaskNonZero, false, &rec); err != nil {
			t.Fatal(err)
		}
		if got := rec.coverageAt(4, 3); got != tc.want {
			t.Errorf("frac %d: A1 coverage = %d, want %d", tc.frac, got, tc.want)
		}
		if got := rec.coverageAt(3, 3); got != 255 {
			t.Errorf("frac %d: interior = %d, want 255", tc.frac, got)
		}
	}
}

func TestFillRulesAgreeOnSimplePolygon(t *testing.T) {
	render := func(mask uint32) *recorder {
		c, err := NewConverter(0, 0, 8, 8)
		if err != nil {
			t.Fatal(err)
		}
		addPoly(c, pt(0, 0), pt(px(4), 0), pt(0, px(4)))
		var rec recorder
		if err := c.Render(mask, true, &rec); err != nil {
			t.Fatal(err)
		}
		return &rec
	}

	nz := render(MaskNonZero)
	eo := render(MaskEvenOdd)
	if diff := cmp.Diff(nz.rows, eo.rows, cmp.AllowUnexported(rowSpans{})); diff != "" {
		t.Errorf("fill rules disagree on a simple polygon:\n%s", diff)
	}
}

func TestFillRulesDifferOnDoubleWoundOverlap(t *testing.T) {
	render := func(mask uint32) *recorder {
		c, err := NewConverter(0, 0, 12, 12)
		if err != nil {
			t.Fatal(err)
		}
		// Two squares wound the same way, overlapping in [4,6)^2.
		addPoly(c, pt(px(1), px(1)), pt(px(6), px(1)), pt(px(6), px(6)), pt(px(1), px(6)))
		addPoly(c, pt(px(4), px(4)), pt(px(9), px(4)), pt(px(9), px(9)), pt(px(4), px(9)))
		var rec recorder
		if err := c.Render(mask, true, &rec); err != nil {
			t.Fatal(err)
		}
		return &rec
	}

	nz := render(MaskNonZero)
	eo := render(MaskEvenOdd)

	// The doubly-wound overlap fills under nonzero and becomes a hole
	// under evenodd.
	if got := nz.coverageAt(5, 5); got != 255 {
		t.Errorf("nonzero overlap coverage = %d, want 255", got)
	}
	if got := eo.coverageAt(5, 5); got != 0 {
		t.Errorf("evenodd overlap coverage = %d, want 0", got)
	}
	// Singly-wound areas agree.
	if nz.coverageAt(2, 2) != 255 || eo.coverageAt(2, 2) != 255 {
		t.Error("singly covered area should fill under both rules")
	}
}

func TestResetReproducesIdenticalSpans(t *testing.T) {
	c, err := NewConverter(0, 0, 16, 16)
	if err != nil {
		t.Fatal(err)
	}

	shape := func() {
		addPoly(c,
			pt(px(1)+7, px(2)+13),
			pt(px(14)+21, px(3)+40),
			pt(px(9)+5, px(13)+59),
			pt(px(2)+33, px(11)+3),
		)
	}

	var first, second recorder
	shape()
	if err := c.Render(MaskNonZero, true, &first); err != nil {
		t.Fatal(err)
	}

	if err := c.Reset(0, 0, 16, 16); err != nil {
		t.Fatal(err)
	}
	shape()
	if err := c.Render(MaskNonZero, true, &second); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first.rows, second.rows, cmp.AllowUnexported(rowSpans{})); diff != "" {
		t.Errorf("output changed across Reset:\n%s", diff)
	}
}

func TestSpansAreMonotonic(t *testing.T) {
	c, err := NewConverter(0, 0, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	// A star-ish self-intersecting polygon with plenty of crossings.
	addPoly(c,
		pt(px(16), px(1)),
		pt(px(25), px(29)),
		pt(px(2), px(11)),
		pt(px(30), px(11)),
		pt(px(7), px(29)),
	)

	var rec recorder
	if err := c.Render(MaskNonZero, true, &rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.rows) == 0 {
		t.Fatal("no spans produced")
	}

	lastY := -1
	for _, row := range rec.rows {
		if row.y < lastY {
			t.Fatalf("rows out of order: %d after %d", row.y, lastY)
		}
		lastY = row.y
		for i := 1; i < len(row.spans); i++ {
			if row.spans[i].X <= row.spans[i-1].X {
				t.Fatalf("row %d: spans not strictly increasing: %v", row.y, row.spans)
			}
		}
	}
}

func TestFullRowMatchesSubSampling(t *testing.T) {
	// The analytical row renderer integrates the exact trapezoid,
	// while forced sub-sampling rounds each of the 15 intercepts to
	// the nearest grid column. Vertical edges agree exactly. For a
	// sloped edge each rounded intercept can shift up to half a
	// column of that sub-row's area, about two alpha counts summed
	// over the 15 sub-rows, and two edges can cross one pixel, so
	// the oracle itself may be off by up to four counts.
	shapes := []struct {
		build     func(c *Converter)
		tolerance int
	}{
		// Tall trapezoid with gentle slopes: eligible for the
		// analytical path on most rows.
		{func(c *Converter) {
			addPoly(c, pt(px(4), px(1)), pt(px(20), px(1)), pt(px(24), px(30)), pt(px(2), px(30)))
		}, 4},
		// Axis-aligned rectangle with fractional horizontal bounds.
		{func(c *Converter) {
			addPoly(c, pt(px(3)+17, px(2)), pt(px(21)+45, px(2)), pt(px(21)+45, px(28)), pt(px(3)+17, px(28)))
		}, 0},
		// Thin steep sliver.
		{func(c *Converter) {
			addPoly(c, pt(px(10), px(1)), pt(px(11), px(1)), pt(px(14), px(29)), pt(px(13), px(29)))
		}, 4},
	}

	for i, shape := range shapes {
		render := func(force bool) *recorder {
			c, err := NewConverter(0, 0, 32, 32)
			if err != nil {
				t.Fatal(err)
			}
			c.setForceSubRow(force)
			shape.build(c)
			var rec recorder
			if err := c.Render(MaskNonZero, true, &rec); err != nil {
				t.Fatal(err)
			}
			return &rec
		}

		fast := render(false)
		oracle := render(true)
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				got := int(fast.coverageAt(x, y))
				want := int(oracle.coverageAt(x, y))
				d := got - want
				if d < 0 {
					d = -d
				}
				if d > shape.tolerance {
					t.Errorf("shape %d: coverage(%d,%d) = %d, sub-sampled oracle %d", i, x, y, got, want)
				}
			}
		}
	}
}

func TestEmptyRowsProduceNoSpans(t *testing.T) {
	c, err := NewConverter(0, 0, 8, 32)
	if err != nil {
		t.Fatal(err)
	}
	addPoly(c, pt(px(1), px(2)), pt(px(6), px(2)), pt(px(6), px(5)), pt(px(1), px(5)))
	addPoly(c, pt(px(1), px(20)), pt(px(6), px(20)), pt(px(6), px(23)), pt(px(1), px(23)))

	var rec recorder
	if err := c.Render(MaskNonZero, true, &rec); err != nil {
		t.Fatal(err)
	}
	for _, row := range rec.rows {
		if row.y >= 5 && row.y < 20 {
			t.Errorf("row %d between the shapes was rendered", row.y)
		}
	}
}

func TestVerticalEdgesCoalesceRows(t *testing.T) {
	c, err := NewConverter(0, 0, 8, 40)
	if err != nil {
		t.Fatal(err)
	}
	addPoly(c, pt(px(2), px(2)), pt(px(6), px(2)), pt(px(6), px(38)), pt(px(2), px(38)))

	calls := 0
	rendered := 0
	r := renderFunc(func(y, height int, spans []Span) error {
		calls++
		rendered += height
		return nil
	})
	if err := c.Render(MaskNonZero, true, r); err != nil {
		t.Fatal(err)
	}

	if rendered != 36 {
		t.Fatalf("rendered %d rows, want 36", rendered)
	}
	if calls >= 36 {
		t.Errorf("identical rows were not coalesced: %d calls", calls)
	}
}

// renderFunc adapts a function to SpanRenderer.
type renderFunc func(y, height int, spans []Span) error

func (f renderFunc) RenderRows(y, height int, spans []Span) error {
	return f(y, height, spans)
}

func TestAllocationLimitSurfacesErrNoMemory(t *testing.T) {
	c, err := NewConverter(0, 0, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	c.SetAllocationLimit(2)

	for i := 0; i < 8; i++ {
		addPoly(c,
			pt(px(i), px(1)), pt(px(i+2), px(1)),
			pt(px(i+2), px(14)), pt(px(i), px(14)),
		)
	}

	var rec recorder
	err = c.Render(MaskNonZero, true, &rec)
	if !errors.Is(err, pool.ErrNoMemory) {
		t.Fatalf("Render error = %v, want ErrNoMemory", err)
	}
	if len(rec.rows) != 0 {
		t.Errorf("%d rows rendered after allocation failure, want 0", len(rec.rows))
	}

	// The converter recovers after Reset lifts the latched error.
	c.SetAllocationLimit(-1)
	if err := c.Reset(0, 0, 16, 16); err != nil {
		t.Fatal(err)
	}
	addPoly(c, pt(px(2), px(2)), pt(px(6), px(2)), pt(px(6), px(6)), pt(px(2), px(6)))
	rec = recorder{}
	if err := c.Render(MaskNonZero, true, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.coverageAt(3, 3) != 255 {
		t.Error("converter did not recover after Reset")
	}
}

func TestCoverageConservation(t *testing.T) {
	// Two complementary triangles tiling a square must sum to full
	// coverage everywhere inside it.
	render := func(build func(c *Converter)) *recorder {
		c, err := NewConverter(0, 0, 8, 8)
		if err != nil {
			t.Fatal(err)
		}
		build(c)
		var rec recorder
		if err := c.Render(MaskNonZero, true, &rec); err != nil {
			t.Fatal(err)
		}
		return &rec
	}

	lower := render(func(c *Converter) {
		addPoly(c, pt(px(1), px(1)), pt(px(7), px(7)), pt(px(1), px(7)))
	})
	upper := render(func(c *Converter) {
		addPoly(c, pt(px(1), px(1)), pt(px(7), px(1)), pt(px(7), px(7)))
	})

	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			sum := int(lower.coverageAt(x, y)) + int(upper.coverageAt(x, y))
			// The shared diagonal is counted by both at the rounding
			// boundary; allow one step of slack.
			if sum < 254 || sum > 256 {
				t.Errorf("coverage sum at (%d,%d) = %d, want 255", x, y, sum)
			}
		}
	}
}

func BenchmarkRenderSquare(b *testing.B) {
	c, err := NewConverter(0, 0, 256, 256)
	if err != nil {
		b.Fatal(err)
	}
	sink := renderFunc(func(y, height int, spans []Span) error { return nil })

	for i := 0; i < b.N; i++ {
		if err := c.Reset(0, 0, 256, 256); err != nil {
			b.Fatal(err)
		}
		addPoly(c, pt(px(10), px(10)), pt(px(240), px(16)), pt(px(250), px(250)), pt(px(5), px(245)))
		if err := c.Render(MaskNonZero, true, sink); err != nil {
			b.Fatal(err)
		}
	}
}
