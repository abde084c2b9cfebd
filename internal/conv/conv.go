// Package conv provides safe integer conversion helpers for the regex engine.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent overflow. They panic on overflow since this indicates a
// programming error (e.g., a repetition bound that was never range-checked by
// the parser).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint32ToInt safely converts a uint32 to int.
// Panics on 32-bit platforms if n does not fit in int.
//
//go:inline
func Uint32ToInt(n uint32) int {
	if uint64(n) > uint64(math.MaxInt) {
		panic("integer overflow: uint32 value out of int range")
	}
	return int(n)
}
