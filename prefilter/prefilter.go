// Package prefilter provides fast candidate rejection for the regex engine
// using literals extracted from a compiled program.
//
// A prefilter answers one question cheaply: is there any position in the
// haystack where a required literal occurs? When the answer is no, the
// pattern cannot match and the backtracking executor never runs. Prefilters
// never affect which match is returned, only whether the search starts.
//
// Strategy selection by extracted literal shape:
//   - single one-byte literal  -> SWAR byte scan (simd.Memchr)
//   - single literal           -> SWAR substring scan (simd.Memmem)
//   - two or more literals     -> Aho-Corasick automaton
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/retrack/literal"
	"github.com/coregx/retrack/simd"
)

// Prefilter reports candidate positions for required literals.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if none exists. A candidate position does not guarantee a match;
	// the executor still verifies.
	Find(haystack []byte, start int) int
}

// FromSeq builds the cheapest prefilter able to serve the extracted
// literals. It returns nil when the sequence carries no usable requirement,
// in which case the caller searches unfiltered.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq == nil || seq.IsEmpty() {
		return nil
	}
	for i := 0; i < seq.Len(); i++ {
		if len(seq.Get(i).Bytes) == 0 {
			return nil
		}
	}

	if seq.Len() == 1 {
		needle := seq.Get(0).Bytes
		if len(needle) == 1 {
			return &memchrPrefilter{needle: needle[0]}
		}
		return &memmemPrefilter{needle: needle}
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto}
}

// memchrPrefilter finds a single required byte.
type memchrPrefilter struct {
	needle byte
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// memmemPrefilter finds a single required substring.
type memmemPrefilter struct {
	needle []byte
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// ahoCorasickPrefilter finds the earliest of many required literals in one
// pass.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}
