package prefilter

import "github.com/coregx/linematch/simd"

// DigitPrefilter implements Prefilter for patterns that must start with an
// ASCII digit, such as \d+-\d+ or [0123456789]x.
//
// It is never complete: a digit is only a candidate position.
type DigitPrefilter struct{}

// NewDigitPrefilter creates a prefilter for patterns that must start with a digit.
func NewDigitPrefilter() *DigitPrefilter {
	return &DigitPrefilter{}
}

// Find returns the index of the first digit at or after start, or -1.
func (p *DigitPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.MemchrDigit(haystack[start:])
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete returns false.
func (p *DigitPrefilter) IsComplete() bool { return false }

// LiteralLen returns 0.
func (p *DigitPrefilter) LiteralLen() int { return 0 }

// HeapBytes returns 0.
func (p *DigitPrefilter) HeapBytes() int { return 0 }

// Name returns "digit".
func (p *DigitPrefilter) Name() string { return "digit" }

// WordPrefilter implements Prefilter for patterns that must start with an
// ASCII word character, such as \w+@\w+.
type WordPrefilter struct{}

// NewWordPrefilter creates a prefilter for patterns that must start with a
// word character.
func NewWordPrefilter() *WordPrefilter {
	return &WordPrefilter{}
}

// Find returns the index of the first word byte at or after start, or -1.
func (p *WordPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.MemchrWord(haystack[start:])
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *WordPrefilter) IsComplete() bool { return false }
func (p *WordPrefilter) LiteralLen() int  { return 0 }
func (p *WordPrefilter) HeapBytes() int   { return 0 }
func (p *WordPrefilter) Name() string     { return "word" }

// tablePrefilter scans for any byte of an arbitrary first byte set, for
// example the bytes of a character set like [aeiou].
type tablePrefilter struct {
	table [256]bool
}

func newTablePrefilter(table *[256]bool) *tablePrefilter {
	return &tablePrefilter{table: *table}
}

func (p *tablePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.MemchrInTable(haystack[start:], &p.table)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *tablePrefilter) IsComplete() bool { return false }
func (p *tablePrefilter) LiteralLen() int  { return 0 }
func (p *tablePrefilter) HeapBytes() int   { return 256 }
func (p *tablePrefilter) Name() string     { return "table" }
