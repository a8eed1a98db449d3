package literal

import (
	"unicode/utf8"

	"github.com/coregx/linematch/syntax"
)

// ExtractorConfig bounds literal extraction.
type ExtractorConfig struct {
	// MaxLiterals caps the number of alternative literals. Extraction stops
	// growing literals once the cross product would exceed it. Default: 64.
	MaxLiterals int

	// MaxLiteralLen caps the length of a single literal. Default: 64.
	MaxLiteralLen int

	// MaxClassSize is the largest non-negated character set expanded into
	// one literal per member. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literals from parsed patterns.
//
// Example:
//
//	seq, _ := syntax.Parse("(cat|dog)s")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(seq.Nodes)
//	// prefixes = [cats, dogs]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// unknown is the prefix set of a node about whose first characters nothing
// is known: a single incomplete empty literal.
func unknown() []Literal {
	return []Literal{{Bytes: []byte{}, Complete: false}}
}

// ExtractPrefixes returns literals one of which begins every match of nodes.
//
// The result is empty when some match may begin with an unknown character
// (for example `.x` or `\dx`) or when the pattern can match the empty string.
func (e *Extractor) ExtractPrefixes(nodes []syntax.Node) *Seq {
	lits := e.sequence(nodes)
	for _, lit := range lits {
		if lit.Len() == 0 {
			return NewSeq()
		}
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// sequence extends every complete literal with the prefixes of the next
// node. Incomplete literals pass through unchanged.
func (e *Extractor) sequence(nodes []syntax.Node) []Literal {
	acc := []Literal{{Bytes: []byte{}, Complete: true}}
	for _, n := range nodes {
		if !anyComplete(acc) {
			break
		}
		next := e.node(n)
		acc = e.cross(acc, next)
	}
	return acc
}

func (e *Extractor) node(n syntax.Node) []Literal {
	switch n := n.(type) {
	case *syntax.Literal:
		if n.Char == utf8.RuneError {
			return unknown()
		}
		return []Literal{{Bytes: utf8.AppendRune(nil, n.Char), Complete: true}}

	case *syntax.CharSet:
		if n.Negated || len(n.Members) > e.config.MaxClassSize || n.Contains(utf8.RuneError) {
			return unknown()
		}
		lits := make([]Literal, 0, len(n.Members))
		for _, r := range n.Members {
			lits = append(lits, Literal{Bytes: utf8.AppendRune(nil, r), Complete: true})
		}
		return lits

	case *syntax.Group:
		return e.sequence(n.Nodes)

	case *syntax.Sequence:
		return e.sequence(n.Nodes)

	case *syntax.Alternation:
		left := e.sequence(n.Left)
		right := e.sequence(n.Right)
		if len(left)+len(right) > e.config.MaxLiterals {
			return unknown()
		}
		return append(left, right...)

	case *syntax.Quantified:
		inner := e.node(n.Inner)
		switch n.Repeat {
		case syntax.ZeroOrOne:
			// x? behaves like (x|): complete literals may still be extended.
			return append(inner, Literal{Bytes: []byte{}, Complete: true})
		case syntax.ZeroOrMore:
			return append(incomplete(inner), Literal{Bytes: []byte{}, Complete: true})
		default:
			return incomplete(inner)
		}
	}

	// AnyChar, DigitClass, WordClass, Backreference.
	return unknown()
}

// cross concatenates every complete literal of acc with every literal of
// next. When the result would grow past the configured limits the complete
// literals are frozen as incomplete prefixes instead.
func (e *Extractor) cross(acc, next []Literal) []Literal {
	completeCount := 0
	for _, a := range acc {
		if a.Complete {
			completeCount++
		}
	}
	if len(acc)-completeCount+completeCount*len(next) > e.config.MaxLiterals {
		return incomplete(acc)
	}

	out := make([]Literal, 0, len(acc)+completeCount*len(next))
	for _, a := range acc {
		if !a.Complete {
			out = append(out, a)
			continue
		}
		for _, b := range next {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(append(joined, a.Bytes...), b.Bytes...)
			complete := b.Complete
			if len(joined) > e.config.MaxLiteralLen {
				joined = joined[:e.config.MaxLiteralLen]
				complete = false
			}
			out = append(out, Literal{Bytes: joined, Complete: complete})
		}
	}
	return out
}

func incomplete(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	for i, lit := range lits {
		out[i] = Literal{Bytes: lit.Bytes, Complete: false}
	}
	return out
}

func anyComplete(lits []Literal) bool {
	for _, lit := range lits {
		if lit.Complete {
			return true
		}
	}
	return false
}

// ExactLiteral reports whether nodes match exactly one fixed string, and
// returns it. Only literals and groups of literals qualify: a match attempt
// at an offset succeeds if and only if the input continues with that string.
func ExactLiteral(nodes []syntax.Node) ([]byte, bool) {
	var out []byte
	for _, n := range nodes {
		switch n := n.(type) {
		case *syntax.Literal:
			if n.Char == utf8.RuneError {
				// Also matches any invalid byte.
				return nil, false
			}
			out = utf8.AppendRune(out, n.Char)
		case *syntax.Group:
			inner, ok := ExactLiteral(n.Nodes)
			if !ok {
				return nil, false
			}
			out = append(out, inner...)
		default:
			return nil, false
		}
	}
	return out, true
}
