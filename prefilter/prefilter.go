// Package prefilter provides fast candidate filtering for unanchored search
// using facts extracted by the literal package.
//
// A prefilter proposes start offsets in the input where a match could begin.
// Offsets it skips are guaranteed not to start a match, so the driver only
// runs the backtracking matcher at the proposed offsets.
//
// The builder selects a scanner based on what was extracted:
//   - Exact literal pattern, one byte → memchr, complete
//   - Exact literal pattern, longer → memmem, complete
//   - Single prefix literal → memchr or memmem
//   - Two or more prefix literals of length ≥ 2 → Aho-Corasick
//   - Up to three distinct first bytes → memchr2 / memchr3
//   - First bytes equal to \d or \w → DigitPrefilter / WordPrefilter
//   - Any other useful first byte set → byte table scan
//
// Example usage:
//
//	seq, _ := syntax.Parse("(hello|world)")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(seq.Nodes)
//	first := literal.ExtractFirstBytes(seq.Nodes)
//
//	pf := prefilter.NewBuilder(prefixes, first).Build()
//	pos := pf.Find([]byte("foo hello bar"), 0)
//	// pos == 4
package prefilter

import (
	"github.com/coregx/linematch/literal"
	"github.com/coregx/linematch/simd"
)

// Prefilter finds candidate match positions before the matcher runs.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if no candidate exists. A candidate does not guarantee a match unless
	// IsComplete is true.
	//
	// Typical use:
	//
	//	pos := pf.Find(haystack, 0)
	//	for pos != -1 {
	//	    if matchesAt(haystack, pos) {
	//	        return pos
	//	    }
	//	    pos = pf.Find(haystack, pos+1)
	//	}
	Find(haystack []byte, start int) int

	// IsComplete returns true if a candidate is a match by itself, which is
	// only the case for patterns made of literal characters alone.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete
	// is true, and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int

	// Name identifies the scanner kind in logs and tests.
	Name() string
}

// Literals returns the number of literals pf searches for. Scanners driven
// by a byte class, such as memchr2 or the digit scan, report 0.
func Literals(pf Prefilter) int {
	switch p := pf.(type) {
	case *ahoCorasickPrefilter:
		return p.Patterns()
	case *memchrPrefilter, *memmemPrefilter:
		return 1
	default:
		return 0
	}
}

// Builder constructs the best prefilter for the extracted literal facts.
//
// Example:
//
//	pf := prefilter.NewBuilder(prefixes, first).Build()
//	if pf == nil {
//	    // try every offset
//	}
type Builder struct {
	prefixes *literal.Seq
	first    *literal.FirstByteSet
	exact    []byte
}

// NewBuilder creates a builder from prefix literals and the first byte set.
// Either may be nil.
func NewBuilder(prefixes *literal.Seq, first *literal.FirstByteSet) *Builder {
	return &Builder{
		prefixes: prefixes,
		first:    first,
	}
}

// WithExactLiteral records that the whole pattern is the literal lit, which
// makes the resulting prefilter complete. An empty lit is ignored.
func (b *Builder) WithExactLiteral(lit []byte) *Builder {
	if len(lit) > 0 {
		b.exact = append([]byte(nil), lit...)
	}
	return b
}

// Build returns the selected prefilter, or nil when no scanner can skip
// any input.
func (b *Builder) Build() Prefilter {
	if len(b.exact) > 0 {
		return newLiteralPrefilter(b.exact, true)
	}

	if pf := fromPrefixes(b.prefixes); pf != nil {
		return pf
	}
	return fromFirstBytes(b.first)
}

func fromPrefixes(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() || seq.MinLen() == 0 {
		return nil
	}

	if seq.Len() == 1 {
		return newLiteralPrefilter(seq.Get(0).Bytes, false)
	}

	if seq.MinLen() >= 2 {
		if pf := newAhoCorasickPrefilter(seq); pf != nil {
			return pf
		}
	}

	return fromBytes(seq.FirstBytes())
}

func fromFirstBytes(first *literal.FirstByteSet) Prefilter {
	if !first.IsUseful() {
		return nil
	}

	switch {
	case first.Equal(literal.DigitBytes()):
		return NewDigitPrefilter()
	case first.Equal(literal.WordBytes()):
		return NewWordPrefilter()
	}

	if pf := fromBytes(first.Bytes()); pf != nil {
		return pf
	}
	return newTablePrefilter(first.Table())
}

// fromBytes returns a memchr-family scanner for up to three bytes.
func fromBytes(set []byte) Prefilter {
	switch len(set) {
	case 1:
		return newMemchrPrefilter(set[0], false)
	case 2:
		return &memchr2Prefilter{b1: set[0], b2: set[1]}
	case 3:
		return &memchr3Prefilter{b1: set[0], b2: set[1], b3: set[2]}
	}
	return nil
}

func newLiteralPrefilter(lit []byte, complete bool) Prefilter {
	if len(lit) == 1 {
		return newMemchrPrefilter(lit[0], complete)
	}
	return newMemmemPrefilter(lit, complete)
}

// memchrPrefilter wraps simd.Memchr.
//
// Example patterns:
//
//	a.*       → search for 'a'
//	x\d+      → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// Name implements Prefilter.Name.
func (p *memchrPrefilter) Name() string {
	return "memchr"
}

// memmemPrefilter wraps simd.Memmem.
//
// Example patterns:
//
//	hello       → search for "hello"
//	cat\w*      → search for "cat"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle so later changes by the caller are not seen.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// Name implements Prefilter.Name.
func (p *memmemPrefilter) Name() string {
	return "memmem"
}

// memchr2Prefilter finds the first of two bytes, e.g. the first bytes of
// (cat|dog).
type memchr2Prefilter struct {
	b1, b2 byte
}

func (p *memchr2Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr2(haystack[start:], p.b1, p.b2)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchr2Prefilter) IsComplete() bool { return false }
func (p *memchr2Prefilter) LiteralLen() int  { return 0 }
func (p *memchr2Prefilter) HeapBytes() int   { return 0 }
func (p *memchr2Prefilter) Name() string     { return "memchr2" }

type memchr3Prefilter struct {
	b1, b2, b3 byte
}

func (p *memchr3Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr3(haystack[start:], p.b1, p.b2, p.b3)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchr3Prefilter) IsComplete() bool { return false }
func (p *memchr3Prefilter) LiteralLen() int  { return 0 }
func (p *memchr3Prefilter) HeapBytes() int   { return 0 }
func (p *memchr3Prefilter) Name() string     { return "memchr3" }
