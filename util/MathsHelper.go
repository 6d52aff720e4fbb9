package util

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// IsPowerOfTwo reports whether x is a positive power of two.
func IsPowerOfTwo[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// CeilDiv returns a / b rounded up. Only meaningful for a >= 0, b > 0.
func CeilDiv[T constraints.Integer](a T, b T) T {
	return (a + b - 1) / b
}

// FloorLog2 returns the index of the highest set bit of x, or -1 for x == 0.
func FloorLog2(x uint64) int {
	return 63 - bits.LeadingZeros64(x)
}

// MulFits reports whether a*b can be computed in int64 without overflow.
// Both values are expected to be non-negative.
func MulFits(a int64, b int64) bool {
	if a == 0 || b == 0 {
		return true
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return hi == 0 && lo <= 1<<63-1
}
