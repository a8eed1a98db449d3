// Package backtrack matches a parsed pattern against a prefix of the input.
//
// Matching is recursive over the pattern tree. Every node either consumes a
// prefix of its input and reports the remaining suffix, or fails and leaves
// the input as it was. The only state threaded through the recursion is the
// capture buffer, which is marked before every decision point (alternation
// branch, repetition step, sequence) and rolled back when that choice fails,
// so captures from an abandoned branch never reach a later backreference.
//
// Each node commits to its first successful way of matching: quantifiers are
// greedy and do not give back characters, and an alternation whose left
// branch succeeds is not retried with its right branch if a later node fails.
package backtrack

import (
	"unicode/utf8"

	"github.com/coregx/linematch/syntax"
)

// MatchSequence matches nodes one after another against input.
//
// On success it returns the unconsumed suffix of input. On failure it returns
// input unchanged and caps is restored to its state on entry.
func MatchSequence(nodes []syntax.Node, input []byte, caps *Captures) ([]byte, bool) {
	mark := caps.Mark()
	rest := input
	for _, n := range nodes {
		next, ok := MatchOne(n, rest, caps)
		if !ok {
			caps.Rollback(mark)
			return input, false
		}
		rest = next
	}
	return rest, true
}

// MatchOne matches a single node against a prefix of input and returns the
// unconsumed suffix.
//
//nolint:gocyclo,cyclop // complexity is inherent to node dispatch
func MatchOne(node syntax.Node, input []byte, caps *Captures) ([]byte, bool) {
	switch n := node.(type) {
	case *syntax.Literal, *syntax.AnyChar, *syntax.DigitClass, *syntax.WordClass, *syntax.CharSet:
		if len(input) == 0 {
			return input, false
		}
		r, width := utf8.DecodeRune(input)
		if !matchChar(node, r) {
			return input, false
		}
		return input[width:], true

	case *syntax.Sequence:
		return MatchSequence(n.Nodes, input, caps)

	case *syntax.Alternation:
		mark := caps.Mark()
		if rest, ok := MatchSequence(n.Left, input, caps); ok {
			return rest, true
		}
		caps.Rollback(mark)
		if rest, ok := MatchSequence(n.Right, input, caps); ok {
			return rest, true
		}
		caps.Rollback(mark)
		return input, false

	case *syntax.Group:
		rest, ok := MatchSequence(n.Nodes, input, caps)
		if !ok {
			return input, false
		}
		caps.Record(n.Index, string(input[:len(input)-len(rest)]))
		return rest, true

	case *syntax.Quantified:
		return matchQuantified(n, input, caps)

	case *syntax.Backreference:
		text, ok := caps.Get(n.Index)
		if !ok || len(input) < len(text) || string(input[:len(text)]) != text {
			return input, false
		}
		return input[len(text):], true
	}

	return input, false
}

func matchQuantified(n *syntax.Quantified, input []byte, caps *Captures) ([]byte, bool) {
	switch n.Repeat {
	case syntax.ZeroOrOne:
		mark := caps.Mark()
		if rest, ok := MatchOne(n.Inner, input, caps); ok {
			return rest, true
		}
		caps.Rollback(mark)
		return input, true

	case syntax.OneOrMore:
		rest, ok := MatchOne(n.Inner, input, caps)
		if !ok {
			return input, false
		}
		return repeat(n.Inner, rest, caps), true

	case syntax.ZeroOrMore:
		return repeat(n.Inner, input, caps), true
	}
	return input, false
}

// repeat applies inner to the advancing input until a step fails, the input
// is exhausted, or a step consumes nothing.
func repeat(inner syntax.Node, input []byte, caps *Captures) []byte {
	rest := input
	for len(rest) > 0 {
		mark := caps.Mark()
		next, ok := MatchOne(inner, rest, caps)
		if !ok {
			caps.Rollback(mark)
			break
		}
		if len(next) == len(rest) {
			break
		}
		rest = next
	}
	return rest
}

func matchChar(node syntax.Node, r rune) bool {
	switch n := node.(type) {
	case *syntax.Literal:
		return r == n.Char
	case *syntax.AnyChar:
		return true
	case *syntax.DigitClass:
		return IsDigit(r)
	case *syntax.WordClass:
		return IsWord(r)
	case *syntax.CharSet:
		return n.Matches(r)
	}
	return false
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsWord reports whether r is an ASCII letter, digit or underscore.
func IsWord(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_'
}
