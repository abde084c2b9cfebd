package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// This is equivalent to bytes.Index but built on Memchr: a rare byte of the
// needle is located with the SWAR scan, then the full needle is verified at
// each candidate position. The rare byte heuristic keeps verification cheap
// for typical text.
//
// Example:
//
//	pos := simd.Memmem([]byte("hello world"), []byte("world"))
//	// pos == 6
func Memmem(haystack, needle []byte) int {
	needleLen := len(needle)
	haystackLen := len(haystack)

	// Empty needle matches at start (mimics bytes.Index behavior)
	if needleLen == 0 {
		return 0
	}
	if haystackLen == 0 || needleLen > haystackLen {
		return -1
	}
	if needleLen == 1 {
		return Memchr(haystack, needle[0])
	}

	rareByte, rareIdx := selectRareByte(needle)

	searchStart := 0
	for {
		candidatePos := Memchr(haystack[searchStart:], rareByte)
		if candidatePos == -1 {
			return -1
		}
		candidatePos += searchStart

		needleStart := candidatePos - rareIdx
		if needleStart >= 0 && needleStart+needleLen <= haystackLen {
			if bytes.Equal(haystack[needleStart:needleStart+needleLen], needle) {
				return needleStart
			}
		}

		searchStart = candidatePos + 1
		if searchStart > haystackLen-1 {
			return -1
		}
	}
}

// byteRank orders bytes by how common they are in typical text; lower means
// rarer. The table collapses to three buckets, which is enough to steer the
// scan away from spaces and vowels.
func byteRank(b byte) int {
	switch {
	case b == ' ' || b == 'e' || b == 't' || b == 'a' || b == 'o' || b == 'i' || b == 'n':
		return 2
	case b >= 'a' && b <= 'z' || b >= '0' && b <= '9':
		return 1
	default:
		return 0
	}
}

// selectRareByte picks the needle byte least likely to occur in the haystack,
// preferring later positions on ties so verification fails fast.
func selectRareByte(needle []byte) (byte, int) {
	best := 0
	for i := 1; i < len(needle); i++ {
		if byteRank(needle[i]) <= byteRank(needle[best]) {
			best = i
		}
	}
	return needle[best], best
}
