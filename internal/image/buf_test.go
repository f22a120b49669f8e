package image

import (
	"errors"
	"testing"
)

func TestNewBufRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 4}} {
		if _, err := NewBuf(FormatARGB32, dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewBuf(%d, %d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestPixel32RoundTripPerFormat(t *testing.T) {
	const p = 0xcc884422

	argb, _ := NewBuf(FormatARGB32, 4, 4)
	argb.SetPixel32(1, 2, p)
	if got := argb.Pixel32(1, 2); got != p {
		t.Errorf("ARGB32 round trip = %#08x, want %#08x", got, p)
	}

	a8, _ := NewBuf(FormatA8, 4, 4)
	a8.SetPixel32(1, 2, p)
	if got := a8.Pixel32(1, 2); got != 0xcc000000 {
		t.Errorf("A8 keeps alpha only: got %#08x, want cc000000", got)
	}

	a1, _ := NewBuf(FormatA1, 4, 4)
	a1.SetPixel32(0, 0, 0x80000000)
	a1.SetPixel32(1, 0, 0x7f000000)
	if got := a1.Pixel32(0, 0); got != 0xff000000 {
		t.Errorf("A1 above threshold = %#08x, want ff000000", got)
	}
	if got := a1.Pixel32(1, 0); got != 0 {
		t.Errorf("A1 below threshold = %#08x, want 0", got)
	}
}

func TestFillRun(t *testing.T) {
	b, _ := NewBuf(FormatARGB32, 8, 2)
	b.FillRun(1, 2, 6, 0xff112233)

	for x := 0; x < 8; x++ {
		want := uint32(0)
		if x >= 2 && x < 6 {
			want = 0xff112233
		}
		if got := b.Pixel32(x, 1); got != want {
			t.Errorf("pixel(%d,1) = %#08x, want %#08x", x, got, want)
		}
		if got := b.Pixel32(x, 0); got != 0 {
			t.Errorf("row 0 touched at x=%d", x)
		}
	}
}

func TestCopyRun(t *testing.T) {
	src, _ := NewBuf(FormatARGB32, 4, 1)
	for i := range src.Pix32 {
		src.Pix32[i] = uint32(0xff000000 | i)
	}
	dst, _ := NewBuf(FormatARGB32, 8, 1)

	dst.CopyRun(0, 3, src, 0, 1, 2)
	if dst.Pixel32(3, 0) != 0xff000001 || dst.Pixel32(4, 0) != 0xff000002 {
		t.Errorf("CopyRun wrote %#08x %#08x", dst.Pixel32(3, 0), dst.Pixel32(4, 0))
	}
	if dst.Pixel32(2, 0) != 0 || dst.Pixel32(5, 0) != 0 {
		t.Error("CopyRun touched pixels outside the run")
	}
}

func TestCloneIsDeep(t *testing.T) {
	b, _ := NewBuf(FormatA8, 4, 4)
	b.Pix8[5] = 200

	c := b.Clone()
	c.Pix8[5] = 1
	if b.Pix8[5] != 200 {
		t.Error("Clone shares pixel storage")
	}
}
