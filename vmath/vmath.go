package vmath

import "cmp"

// Clamp bounds v to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns absolute value
func Abs[T ~int | ~int8 | ~int16 | ~int32 | ~int64](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// MulDivTrunc computes (a * num) / den with a 64-bit intermediate, truncating toward zero
func MulDivTrunc(a, num, den int32) int32 {
	if den == 0 {
		return 0
	}
	return int32(int64(a) * int64(num) / int64(den))
}
