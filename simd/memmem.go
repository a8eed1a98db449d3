package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// Candidates are located by scanning for the needle's last byte with Memchr
// and then verified in full.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 4
func Memmem(haystack, needle []byte) int {
	m, n := len(needle), len(haystack)
	switch {
	case m == 0:
		return 0
	case m > n:
		return -1
	case m == 1:
		return Memchr(haystack, needle[0])
	}

	last := needle[m-1]
	for from := m - 1; from < n; {
		i := Memchr(haystack[from:], last)
		if i < 0 {
			return -1
		}
		end := from + i + 1
		if bytes.Equal(haystack[end-m:end], needle) {
			return end - m
		}
		from = end
	}
	return -1
}
