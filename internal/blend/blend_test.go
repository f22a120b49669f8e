package blend

import "testing"

// pack builds a premultiplied ARGB32 pixel.
func pack(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// mulDiv255Exact is the reference per-channel multiply.
func mulDiv255Exact(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

func TestMul8x4MatchesPerChannel(t *testing.T) {
	pixels := []uint32{
		0x00000000,
		0xffffffff,
		0x80402010,
		0xff123456,
		0x01ff01ff,
	}
	alphas := []uint8{0, 1, 127, 128, 254, 255}

	for _, p := range pixels {
		for _, a := range alphas {
			got := Mul8x4(p, a)
			for shift := 0; shift < 32; shift += 8 {
				ch := uint8(p >> shift)
				want := mulDiv255Exact(ch, a)
				g := uint8(got >> shift)
				// The packed form rounds each channel to nearest;
				// allow the off-by-one of the shift approximation.
				diff := int(g) - int(want)
				if diff < -1 || diff > 1 {
					t.Errorf("Mul8x4(%#08x, %d) channel %d = %d, want %d", p, a, shift/8, g, want)
				}
			}
		}
	}
}

func TestAdd8x4Saturates(t *testing.T) {
	got := Add8x4(0xff80ff80, 0x80ff80ff)
	if got != 0xffffffff {
		t.Errorf("Add8x4 saturation = %#08x, want ffffffff", got)
	}
	if got := Add8x4(0x01020304, 0x10203040); got != 0x11223344 {
		t.Errorf("Add8x4 plain = %#08x, want 11223344", got)
	}
}

func TestOverOpaqueSourceReplaces(t *testing.T) {
	src := pack(255, 200, 100, 50)
	dst := pack(255, 1, 2, 3)
	if got := Over(src, dst); got != src {
		t.Errorf("Over(opaque, dst) = %#08x, want %#08x", got, src)
	}
}

func TestOverTransparentSourceKeepsDest(t *testing.T) {
	dst := pack(200, 90, 80, 70)
	if got := Over(0, dst); got != dst {
		t.Errorf("Over(0, dst) = %#08x, want %#08x", got, dst)
	}
}

func TestApplyOperatorIdentities(t *testing.T) {
	src := pack(128, 100, 60, 20)
	dst := pack(200, 10, 120, 200)

	tests := []struct {
		op   Operator
		want uint32
	}{
		{OpClear, 0},
		{OpSource, src},
		{OpDest, dst},
		{OpIn, Mul8x4(src, Alpha(dst))},
		{OpDestIn, Mul8x4(dst, Alpha(src))},
		{OpDestOut, Mul8x4(dst, 255-Alpha(src))},
	}
	for _, tt := range tests {
		if got := Apply(tt.op, src, dst); got != tt.want {
			t.Errorf("Apply(%v) = %#08x, want %#08x", tt.op, got, tt.want)
		}
	}
}

func TestApplyWithCoverageEndpoints(t *testing.T) {
	src := pack(255, 255, 0, 0)
	dst := pack(255, 0, 0, 255)

	if got := ApplyWithCoverage(OpOver, src, dst, 0); got != dst {
		t.Errorf("coverage 0 = %#08x, want dst %#08x", got, dst)
	}
	if got := ApplyWithCoverage(OpOver, src, dst, 255); got != src {
		t.Errorf("coverage 255 = %#08x, want src %#08x", got, src)
	}

	half := ApplyWithCoverage(OpOver, src, dst, 127)
	r := uint8(half >> 16)
	b := uint8(half)
	if r < 120 || r > 135 || b < 120 || b > 135 {
		t.Errorf("coverage 127 = %#08x, want roughly half red half blue", half)
	}
}

func TestBoundedClassification(t *testing.T) {
	for _, op := range []Operator{OpIn, OpOut, OpDestIn, OpDestAtop} {
		if op.BoundedByMask() {
			t.Errorf("%v should not be bounded by mask", op)
		}
	}
	for _, op := range []Operator{OpClear, OpSource} {
		if op.BoundedBySource() {
			t.Errorf("%v should not be bounded by source", op)
		}
	}
	if !OpOver.BoundedByMask() || !OpOver.BoundedBySource() {
		t.Errorf("Over should be bounded on both axes")
	}
}

func BenchmarkOver(b *testing.B) {
	src := pack(128, 100, 60, 20)
	dst := pack(200, 10, 120, 200)
	for i := 0; i < b.N; i++ {
		dst = Over(src, dst)
	}
	_ = dst
}

func BenchmarkLerp8x4(b *testing.B) {
	src := pack(255, 100, 60, 20)
	dst := pack(200, 10, 120, 200)
	for i := 0; i < b.N; i++ {
		dst = Lerp8x4(src, 131, dst)
	}
	_ = dst
}
