package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemmem(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
	}{
		{"", ""},
		{"", "a"},
		{"a", ""},
		{"hello world", "world"},
		{"hello world", "hello"},
		{"hello world", "o w"},
		{"hello world", "xyz"},
		{"hello", "hello world"},
		{"aaaaaabaaaa", "aab"},
		{"abababab", "bab"},
		{"foo bar baz", "ba"},
		{strings.Repeat("ab", 100) + "cd", "cd"},
		{strings.Repeat("ab", 100), "cd"},
		{"needle at the end: x", "x"},
	}

	for _, tt := range tests {
		got := Memmem([]byte(tt.haystack), []byte(tt.needle))
		want := bytes.Index([]byte(tt.haystack), []byte(tt.needle))
		if got != want {
			t.Errorf("Memmem(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, want)
		}
	}
}

func TestSelectRareByte(t *testing.T) {
	// The rare byte must come from the needle, with its correct offset.
	needles := []string{"ab", "hello", "  x  ", "zzz"}
	for _, needle := range needles {
		b, idx := selectRareByte([]byte(needle))
		if idx < 0 || idx >= len(needle) || needle[idx] != b {
			t.Errorf("selectRareByte(%q) = (%q, %d)", needle, b, idx)
		}
	}
}
