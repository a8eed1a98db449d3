package simd

// MemchrInTable returns the index of the first byte b of haystack with
// table[b] set, or -1.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}

// MemchrDigit returns the index of the first ASCII digit in haystack, or -1.
func MemchrDigit(haystack []byte) int {
	for i, b := range haystack {
		if b-'0' < 10 {
			return i
		}
	}
	return -1
}

// MemchrWord returns the index of the first ASCII word byte [A-Za-z0-9_] in
// haystack, or -1.
func MemchrWord(haystack []byte) int {
	for i, b := range haystack {
		if isWordByte(b) {
			return i
		}
	}
	return -1
}

func isWordByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}
