package simd

import "bytes"

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memchr(haystack []byte, needle byte) int {
	return bytes.IndexByte(haystack, needle)
}
