package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty", "", 'a', -1},
		{"single hit", "a", 'a', 0},
		{"short miss", "hello", 'x', -1},
		{"short hit", "hello", 'l', 2},
		{"chunk boundary", "01234567x", 'x', 8},
		{"first of many", strings.Repeat("b", 40) + "a" + strings.Repeat("a", 10), 'a', 40},
		{"long miss", strings.Repeat("z", 100), 'a', -1},
		{"high byte", "abc\xffdef", 0xff, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr([]byte(tt.haystack), tt.needle); got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

// TestMemchrAgainstStdlib compares every kernel with bytes.IndexAny at every
// length around the 8-byte chunk size.
func TestMemchrAgainstStdlib(t *testing.T) {
	base := []byte("the quick brown fox jumps over the lazy dog 0123456789")
	for n := 0; n <= len(base); n++ {
		h := base[:n]
		for _, c := range []byte("tqz9 x") {
			if got, want := Memchr(h, c), bytes.IndexByte(h, c); got != want {
				t.Fatalf("Memchr(%q, %q) = %d, want %d", h, c, got, want)
			}
			if got, want := Memchr2(h, c, 'o'), bytes.IndexAny(h, string([]byte{c, 'o'})); got != want {
				t.Fatalf("Memchr2(%q, %q, 'o') = %d, want %d", h, c, got, want)
			}
			if got, want := Memchr3(h, c, 'o', '5'), bytes.IndexAny(h, string([]byte{c, 'o', '5'})); got != want {
				t.Fatalf("Memchr3(%q, %q, 'o', '5') = %d, want %d", h, c, got, want)
			}
		}
	}
}

func TestMemchrClasses(t *testing.T) {
	if got := MemchrDigit([]byte("abc x9")); got != 5 {
		t.Errorf("MemchrDigit = %d, want 5", got)
	}
	if got := MemchrDigit([]byte("/:")); got != -1 {
		t.Errorf("MemchrDigit(/:) = %d, want -1", got)
	}
	if got := MemchrWord([]byte("-- _x")); got != 3 {
		t.Errorf("MemchrWord = %d, want 3", got)
	}
	if got := MemchrWord([]byte("!@#")); got != -1 {
		t.Errorf("MemchrWord(!@#) = %d, want -1", got)
	}

	var table [256]bool
	table['q'] = true
	table['!'] = true
	if got := MemchrInTable([]byte("abc!q"), &table); got != 3 {
		t.Errorf("MemchrInTable = %d, want 3", got)
	}
	if got := MemchrInTable([]byte("abc"), &table); got != -1 {
		t.Errorf("MemchrInTable(abc) = %d, want -1", got)
	}
}

func BenchmarkMemchr(b *testing.B) {
	haystack := bytes.Repeat([]byte("abcdefgh"), 512)
	haystack[len(haystack)-1] = 'z'
	b.SetBytes(int64(len(haystack)))
	for i := 0; i < b.N; i++ {
		_ = Memchr(haystack, 'z')
	}
}
