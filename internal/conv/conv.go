// Package conv provides checked integer conversions for state identifiers.
//
// A failed conversion means an automaton grew past the size its IDs can
// address, which is a programming error, so the helpers panic.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms, where int cannot hold
	// math.MaxUint32, do not overflow the constant.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
