// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package blend implements Porter-Duff compositing on premultiplied
// ARGB32 pixels packed into uint32 values (alpha in the top byte).
//
// The arithmetic works on two color channels at a time: a packed pixel
// is split into its even bytes (x & 0xff00ff) and odd bytes, each pair
// multiplied and renormalized together. This halves the multiply count
// per pixel, which dominates the span compositor's inner loops.
package blend

// Operator is a Porter-Duff compositing operator.
type Operator uint8

const (
	OpClear Operator = iota // 0
	OpSource                // S
	OpOver                  // S + D*(1-Sa)
	OpIn                    // S*Da
	OpOut                   // S*(1-Da)
	OpAtop                  // S*Da + D*(1-Sa)
	OpDest                  // D
	OpDestOver              // S*(1-Da) + D
	OpDestIn                // D*Sa
	OpDestOut               // D*(1-Sa)
	OpDestAtop              // S*(1-Da) + D*Sa
	OpXor                   // S*(1-Da) + D*(1-Sa)
	OpAdd                   // min(S + D, 1)
)

// String returns the operator's name.
func (op Operator) String() string {
	switch op {
	case OpClear:
		return "Clear"
	case OpSource:
		return "Source"
	case OpOver:
		return "Over"
	case OpIn:
		return "In"
	case OpOut:
		return "Out"
	case OpAtop:
		return "Atop"
	case OpDest:
		return "Dest"
	case OpDestOver:
		return "DestOver"
	case OpDestIn:
		return "DestIn"
	case OpDestOut:
		return "DestOut"
	case OpDestAtop:
		return "DestAtop"
	case OpXor:
		return "Xor"
	case OpAdd:
		return "Add"
	default:
		return "Unknown"
	}
}

// BoundedByMask reports whether applying the operator through a zero
// mask leaves the destination untouched. Operators for which this is
// false (the IN/OUT family) affect pixels outside the drawn shape and
// need the unbounded fixup pass.
func (op Operator) BoundedByMask() bool {
	switch op {
	case OpIn, OpOut, OpDestIn, OpDestAtop:
		return false
	default:
		return true
	}
}

// BoundedBySource reports whether the operator leaves the destination
// untouched where the source is transparent. SOURCE and CLEAR replace
// the destination even there, so their effect must be extended (or
// fixed up) over the whole unbounded extents.
func (op Operator) BoundedBySource() bool {
	switch op {
	case OpClear, OpSource:
		return false
	default:
		return true
	}
}

// Alpha extracts the alpha byte of a packed pixel.
func Alpha(p uint32) uint8 {
	return uint8(p >> 24)
}

// Mul8x4 multiplies each byte of x by a/255 with round-to-nearest,
// two channels per multiply.
func Mul8x4(x uint32, a uint8) uint32 {
	t := (x&0xff00ff)*uint32(a) + 0x800080
	t = (t + ((t >> 8) & 0xff00ff)) >> 8
	t &= 0xff00ff

	u := ((x>>8)&0xff00ff)*uint32(a) + 0x800080
	u = u + ((u >> 8) & 0xff00ff)
	u &= 0xff00ff00

	return t | u
}

// Add8x4 adds the bytes of two packed pixels with per-byte saturation.
func Add8x4(x, y uint32) uint32 {
	t := (x & 0xff00ff) + (y & 0xff00ff)
	t |= 0x1000100 - ((t >> 8) & 0xff00ff)
	t &= 0xff00ff

	u := ((x >> 8) & 0xff00ff) + ((y >> 8) & 0xff00ff)
	u |= 0x1000100 - ((u >> 8) & 0xff00ff)
	u &= 0xff00ff

	return t | u<<8
}

// Lerp8x4 blends src over dst at weight a: src*a + dst*(255-a).
func Lerp8x4(src uint32, a uint8, dst uint32) uint32 {
	return Mul8x4(src, a) + Mul8x4(dst, 255-a)
}

// Over composites src over dst: src + dst*(1 - src.alpha).
func Over(src, dst uint32) uint32 {
	return src + Mul8x4(dst, 255-Alpha(src))
}

// Apply computes op(src, dst) for one premultiplied packed pixel.
func Apply(op Operator, src, dst uint32) uint32 {
	switch op {
	case OpClear:
		return 0
	case OpSource:
		return src
	case OpOver:
		return Over(src, dst)
	case OpIn:
		return Mul8x4(src, Alpha(dst))
	case OpOut:
		return Mul8x4(src, 255-Alpha(dst))
	case OpAtop:
		return Mul8x4(src, Alpha(dst)) + Mul8x4(dst, 255-Alpha(src))
	case OpDest:
		return dst
	case OpDestOver:
		return dst + Mul8x4(src, 255-Alpha(dst))
	case OpDestIn:
		return Mul8x4(dst, Alpha(src))
	case OpDestOut:
		return Mul8x4(dst, 255-Alpha(src))
	case OpDestAtop:
		return Mul8x4(src, 255-Alpha(dst)) + Mul8x4(dst, Alpha(src))
	case OpXor:
		return Mul8x4(src, 255-Alpha(dst)) + Mul8x4(dst, 255-Alpha(src))
	case OpAdd:
		return Add8x4(src, dst)
	default:
		return Over(src, dst)
	}
}

// ApplyWithCoverage composites src against dst through a coverage
// value: the operator result is mixed with the untouched destination
// in proportion to coverage. For bounded operators this is exactly the
// per-pixel antialiasing blend; unbounded operators additionally rely
// on the compositor's fixup pass outside the shape.
func ApplyWithCoverage(op Operator, src, dst uint32, coverage uint8) uint32 {
	switch coverage {
	case 0:
		return dst
	case 255:
		return Apply(op, src, dst)
	default:
		return Lerp8x4(Apply(op, src, dst), coverage, dst)
	}
}
