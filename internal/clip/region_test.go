package clip

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoxIntersect(t *testing.T) {
	a := Box{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := Box{X0: 5, Y0: 5, X1: 15, Y1: 15}

	got := a.Intersect(b)
	want := Box{X0: 5, Y0: 5, X1: 10, Y1: 10}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	if !a.Intersect(Box{X0: 20, Y0: 20, X1: 30, Y1: 30}).Empty() {
		t.Error("disjoint boxes should intersect to empty")
	}
}

func TestSubtractProducesDisjointCover(t *testing.T) {
	outer := Box{X0: 0, Y0: 0, X1: 10, Y1: 10}
	inner := Box{X0: 2, Y0: 3, X1: 7, Y1: 8}

	strips := Subtract(outer, inner)
	if len(strips) != 4 {
		t.Fatalf("got %d strips, want 4", len(strips))
	}

	// Every outer pixel is in exactly one strip or in inner.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			p := Box{X0: x, Y0: y, X1: x + 1, Y1: y + 1}
			count := 0
			if inner.Contains(p) {
				count++
			}
			for _, s := range strips {
				if s.Contains(p) {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("pixel (%d,%d) covered %d times", x, y, count)
			}
		}
	}
}

func TestSubtractEmptyInner(t *testing.T) {
	outer := Box{X0: 0, Y0: 0, X1: 4, Y1: 4}
	strips := Subtract(outer, Box{X0: 9, Y0: 9, X1: 9, Y1: 9})
	if diff := cmp.Diff([]Box{outer}, strips); diff != "" {
		t.Errorf("subtracting nothing:\n%s", diff)
	}
}

func TestRegionClipBox(t *testing.T) {
	r := NewRegion(
		Box{X0: 0, Y0: 0, X1: 4, Y1: 8},
		Box{X0: 6, Y0: 0, X1: 10, Y1: 8},
	)

	got := r.ClipBox(nil, Box{X0: 2, Y0: 2, X1: 8, Y1: 6})
	want := []Box{
		{X0: 2, Y0: 2, X1: 4, Y1: 6},
		{X0: 6, Y0: 2, X1: 8, Y1: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClipBox:\n%s", diff)
	}
}

func TestNilRegionPassesThrough(t *testing.T) {
	var r *Region
	b := Box{X0: 1, Y0: 1, X1: 3, Y1: 3}

	got := r.ClipBox(nil, b)
	if diff := cmp.Diff([]Box{b}, got); diff != "" {
		t.Errorf("nil region ClipBox:\n%s", diff)
	}
	if !r.ContainsBox(b) {
		t.Error("nil region should contain everything")
	}
	if len(r.Boxes()) != 0 {
		t.Error("nil region should have no boxes")
	}
}

func TestRegionExtents(t *testing.T) {
	r := NewRegion(
		Box{X0: 2, Y0: 1, X1: 4, Y1: 5},
		Box{X0: 7, Y0: 3, X1: 9, Y1: 12},
	)
	want := Box{X0: 2, Y0: 1, X1: 9, Y1: 12}
	if got := r.Extents(); got != want {
		t.Errorf("Extents = %+v, want %+v", got, want)
	}
}
