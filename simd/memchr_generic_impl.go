// Package simd provides the byte-search primitives behind linematch's
// prefilters.
//
// Single-byte search uses the runtime's vectorised IndexByte. The two- and
// three-byte kernels process eight bytes per step using SWAR (SIMD Within A
// Register) arithmetic on uint64 words.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// zeroBytes sets the high bit of every byte of v that is zero. Bits above the
// lowest zero byte may be spurious, so only the lowest set bit is meaningful.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// memchrGeneric returns the index of the first byte of haystack equal to any
// of the three needles, or -1. Two-needle searches repeat a needle.
func memchrGeneric(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	idx := 0

	if n >= 8 {
		mask1 := uint64(needle1) * lo8
		mask2 := uint64(needle2) * lo8
		mask3 := uint64(needle3) * lo8

		for ; idx+8 <= n; idx += 8 {
			chunk := binary.LittleEndian.Uint64(haystack[idx:])
			found := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2) | zeroBytes(chunk^mask3)
			if found != 0 {
				return idx + bits.TrailingZeros64(found)/8
			}
		}
	}

	for ; idx < n; idx++ {
		if c := haystack[idx]; c == needle1 || c == needle2 || c == needle3 {
			return idx
		}
	}
	return -1
}

// Memchr2 returns the index of the first instance of needle1 or needle2 in
// haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchrGeneric(haystack, needle1, needle2, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2 or
// needle3 in haystack, or -1 if none is present.
//
// Example:
//
//	pos := simd.Memchr3([]byte("key=value;x"), '=', ';', ',')
//	// pos == 3
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchrGeneric(haystack, needle1, needle2, needle3)
}
