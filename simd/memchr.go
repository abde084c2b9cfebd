// Package simd provides accelerated byte-search primitives for the regex
// engine. The implementations use the SWAR (SIMD Within A Register) technique,
// processing 8 bytes at a time with uint64 bitwise operations, which is
// portable across all platforms.
//
// The primary use case is accelerating the executor's literal scan: when a
// match has not started yet, a literal node slides forward through the input
// looking for its first occurrence, and Memmem performs that scan.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// This is equivalent to bytes.IndexByte but self-contained: it processes
// 8-byte chunks with uint64 operations and falls back to byte-by-byte
// comparison for short inputs and trailing bytes.
//
// Example:
//
//	haystack := []byte("hello world")
//	pos := simd.Memchr(haystack, 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	haystackLen := len(haystack)
	if haystackLen == 0 {
		return -1
	}

	// For small inputs, byte-by-byte is faster (no setup overhead)
	if haystackLen < 8 {
		for idx := 0; idx < haystackLen; idx++ {
			if haystack[idx] == needle {
				return idx
			}
		}
		return -1
	}

	// Broadcast needle to all 8 bytes of a uint64.
	// Example: needle=0x42 -> needleMask=0x4242424242424242
	needleMask := uint64(needle) * lo8

	idx := 0
	for idx+8 <= haystackLen {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])

		// XOR makes matching bytes become 0x00
		xor := chunk ^ needleMask

		// Zero-byte detection (Hacker's Delight):
		// (v - 0x01..01) & ^v & 0x80..80 marks bytes that were zero.
		hasZero := (xor - lo8) & ^xor & hi8
		if hasZero != 0 {
			// TrailingZeros64/8 converts the bit position to a byte position.
			return idx + bits.TrailingZeros64(hasZero)/8
		}

		idx += 8
	}

	// Remaining 0-7 bytes
	for idx < haystackLen {
		if haystack[idx] == needle {
			return idx
		}
		idx++
	}

	return -1
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present. Both needles are checked
// in parallel within each 8-byte chunk.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	haystackLen := len(haystack)
	if haystackLen == 0 {
		return -1
	}

	if haystackLen < 8 {
		for idx := 0; idx < haystackLen; idx++ {
			c := haystack[idx]
			if c == needle1 || c == needle2 {
				return idx
			}
		}
		return -1
	}

	needleMask1 := uint64(needle1) * lo8
	needleMask2 := uint64(needle2) * lo8

	idx := 0
	for idx+8 <= haystackLen {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])

		xor1 := chunk ^ needleMask1
		xor2 := chunk ^ needleMask2

		hasZero1 := (xor1 - lo8) & ^xor1 & hi8
		hasZero2 := (xor2 - lo8) & ^xor2 & hi8

		hasZero := hasZero1 | hasZero2
		if hasZero != 0 {
			return idx + bits.TrailingZeros64(hasZero)/8
		}

		idx += 8
	}

	for idx < haystackLen {
		c := haystack[idx]
		if c == needle1 || c == needle2 {
			return idx
		}
		idx++
	}

	return -1
}
