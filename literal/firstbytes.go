package literal

import (
	"unicode/utf8"

	"github.com/coregx/linematch/syntax"
)

// FirstByteSet is the set of bytes a match can start with.
type FirstByteSet struct {
	bytes [256]bool
	count int
}

// Contains reports whether b can be the first byte of a match.
func (f *FirstByteSet) Contains(b byte) bool { return f.bytes[b] }

// Count returns the number of possible first bytes.
func (f *FirstByteSet) Count() int { return f.count }

// Table returns the membership table.
func (f *FirstByteSet) Table() *[256]bool { return &f.bytes }

// Bytes returns the members in ascending order.
func (f *FirstByteSet) Bytes() []byte {
	out := make([]byte, 0, f.count)
	for b := 0; b < 256; b++ {
		if f.bytes[b] {
			out = append(out, byte(b))
		}
	}
	return out
}

// IsUseful reports whether scanning for the set can skip any input.
func (f *FirstByteSet) IsUseful() bool {
	return f != nil && f.count > 0 && f.count < 256
}

// Equal reports whether f and other hold the same bytes.
func (f *FirstByteSet) Equal(other *FirstByteSet) bool {
	return f.bytes == other.bytes
}

func (f *FirstByteSet) add(b byte) {
	if !f.bytes[b] {
		f.bytes[b] = true
		f.count++
	}
}

func (f *FirstByteSet) addRange(lo, hi byte) {
	for b := int(lo); b <= int(hi); b++ {
		f.add(byte(b))
	}
}

// addRune adds the first byte of r. The matcher decodes every invalid byte
// as utf8.RuneError, so that rune may start at any non-ASCII byte.
func (f *FirstByteSet) addRune(r rune) {
	if r == utf8.RuneError {
		f.addRange(utf8.RuneSelf, 0xFF)
		return
	}
	var buf [utf8.UTFMax]byte
	utf8.EncodeRune(buf[:], r)
	f.add(buf[0])
}

func (f *FirstByteSet) union(other *FirstByteSet) {
	for b := 0; b < 256; b++ {
		if other.bytes[b] {
			f.add(byte(b))
		}
	}
}

// DigitBytes returns the first-byte set of \d.
func DigitBytes() *FirstByteSet {
	f := &FirstByteSet{}
	f.addRange('0', '9')
	return f
}

// WordBytes returns the first-byte set of \w.
func WordBytes() *FirstByteSet {
	f := &FirstByteSet{}
	f.addRange('0', '9')
	f.addRange('A', 'Z')
	f.addRange('a', 'z')
	f.add('_')
	return f
}

// ExtractFirstBytes returns the set of bytes every non-empty match of nodes
// starts with. It returns nil when the pattern can match the empty string,
// in which case a match may start anywhere.
func ExtractFirstBytes(nodes []syntax.Node) *FirstByteSet {
	f := &FirstByteSet{}
	if nullable := firstOfSequence(nodes, f); nullable {
		return nil
	}
	return f
}

// firstOfSequence adds the first bytes of nodes to f and reports whether
// nodes can match without consuming anything.
func firstOfSequence(nodes []syntax.Node, f *FirstByteSet) bool {
	for _, n := range nodes {
		if !firstOf(n, f) {
			return false
		}
	}
	return true
}

func firstOf(n syntax.Node, f *FirstByteSet) bool {
	switch n := n.(type) {
	case *syntax.Literal:
		f.addRune(n.Char)
		return false

	case *syntax.AnyChar:
		f.addRange(0, 255)
		return false

	case *syntax.DigitClass:
		f.union(DigitBytes())
		return false

	case *syntax.WordClass:
		f.union(WordBytes())
		return false

	case *syntax.CharSet:
		if !n.Negated {
			for _, r := range n.Members {
				f.addRune(r)
			}
			return false
		}
		// Any non-member character qualifies; only single-byte members
		// rule their byte out entirely.
		var excluded [256]bool
		for _, r := range n.Members {
			if r < utf8.RuneSelf {
				excluded[r] = true
			}
		}
		for b := 0; b < 256; b++ {
			if !excluded[b] {
				f.add(byte(b))
			}
		}
		return false

	case *syntax.Group:
		return firstOfSequence(n.Nodes, f)

	case *syntax.Sequence:
		return firstOfSequence(n.Nodes, f)

	case *syntax.Alternation:
		left := firstOfSequence(n.Left, f)
		right := firstOfSequence(n.Right, f)
		return left || right

	case *syntax.Quantified:
		nullable := firstOf(n.Inner, f)
		return nullable || n.Repeat != syntax.OneOrMore

	case *syntax.Backreference:
		// The referenced text is unknown and may be empty.
		f.addRange(0, 255)
		return true
	}
	return true
}
