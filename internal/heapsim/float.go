package heapsim

import (
	"math"
	"math/bits"
)

// positiveZeroFlonum is the one flonum outside the exponent window.
const positiveZeroFlonum = 0x8000000000000002

// encodeFlonum applies rb_float_new_inline: doubles whose exponent falls in
// the window selected by bits 60..62 are rotated into an immediate; +0.0 has
// a fixed encoding. Everything else needs a heap T_FLOAT.
func encodeFlonum(f float64) (uint64, bool) {
	v := math.Float64bits(f)
	b := (v >> 60) & 7
	if v != 0x3000000000000000 && (b-3)&^1 == 0 {
		return bits.RotateLeft64(v, 3)&^1 | 2, true
	}
	if v == 0 {
		return positiveZeroFlonum, true
	}
	return 0, false
}

// decodeFlonum is rb_float_flonum_value.
func decodeFlonum(v uint64) float64 {
	if v == positiveZeroFlonum {
		return 0
	}
	b63 := v >> 63
	t := (2 - b63) | (v &^ 3)
	return math.Float64frombits(bits.RotateLeft64(t, -3))
}
