package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		haystack string
		needle   byte
	}{
		{"", 'a'},
		{"a", 'a'},
		{"a", 'b'},
		{"hello", 'l'},
		{"hello", 'z'},
		{"hello world", 'o'},
		// Cross the 8-byte SWAR chunk boundary
		{"aaaaaaaab", 'b'},
		{"aaaaaaaa", 'b'},
		{strings.Repeat("x", 100) + "y", 'y'},
		{strings.Repeat("x", 100), 'y'},
		{"\x00abc", 0},
		{"abc\x00", 0},
	}

	for _, tt := range tests {
		got := Memchr([]byte(tt.haystack), tt.needle)
		want := bytes.IndexByte([]byte(tt.haystack), tt.needle)
		if got != want {
			t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, want)
		}
	}
}

func TestMemchr2(t *testing.T) {
	tests := []struct {
		haystack         string
		needle1, needle2 byte
		want             int
	}{
		{"", 'a', 'b', -1},
		{"xyz", 'a', 'b', -1},
		{"xayb", 'a', 'b', 1},
		{"xbya", 'a', 'b', 1},
		{strings.Repeat("x", 50) + "a", 'a', 'b', 50},
		{strings.Repeat("x", 50) + "b", 'a', 'b', 50},
	}

	for _, tt := range tests {
		got := Memchr2([]byte(tt.haystack), tt.needle1, tt.needle2)
		if got != tt.want {
			t.Errorf("Memchr2(%q, %q, %q) = %d, want %d",
				tt.haystack, tt.needle1, tt.needle2, got, tt.want)
		}
	}
}
