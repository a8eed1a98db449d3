// Package syntax parses linematch patterns into an immutable tree of nodes.
//
// The pattern language is deliberately small:
//
//	c        literal character
//	.        any single character
//	\d \w    ASCII digit, ASCII word character
//	\N       backreference to capture group N (1-9)
//	[abc]    literal character set, [^abc] negated
//	(x|y)    capturing group with optional alternation
//	x+ x? x* one-or-more, zero-or-one, zero-or-more
//
// Line anchors (^ and $) are handled by the caller and never reach the parser.
//
// A parsed tree is never mutated after Parse returns, so it can be shared
// freely between goroutines and match attempts.
package syntax

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindAnyChar
	KindDigitClass
	KindWordClass
	KindCharSet
	KindSequence
	KindAlternation
	KindGroup
	KindQuantified
	KindBackreference
)

var kindNames = [...]string{
	KindLiteral:       "Literal",
	KindAnyChar:       "AnyChar",
	KindDigitClass:    "DigitClass",
	KindWordClass:     "WordClass",
	KindCharSet:       "CharSet",
	KindSequence:      "Sequence",
	KindAlternation:   "Alternation",
	KindGroup:         "Group",
	KindQuantified:    "Quantified",
	KindBackreference: "Backreference",
}

// String returns the variant name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a single element of a parsed pattern.
//
// The concrete types are *Literal, *AnyChar, *DigitClass, *WordClass,
// *CharSet, *Sequence, *Alternation, *Group, *Quantified and *Backreference.
type Node interface {
	Kind() Kind
	String() string
}

// Literal matches exactly one character.
type Literal struct {
	Char rune
}

func (*Literal) Kind() Kind { return KindLiteral }

func (n *Literal) String() string { return quoteRune(n.Char) }

// AnyChar matches any single character.
type AnyChar struct{}

func (*AnyChar) Kind() Kind { return KindAnyChar }

func (*AnyChar) String() string { return "." }

// DigitClass matches ASCII '0' through '9'.
type DigitClass struct{}

func (*DigitClass) Kind() Kind { return KindDigitClass }

func (*DigitClass) String() string { return `\d` }

// WordClass matches an ASCII letter, digit or underscore.
type WordClass struct{}

func (*WordClass) Kind() Kind { return KindWordClass }

func (*WordClass) String() string { return `\w` }

// CharSet matches one character whose membership in Members differs from
// Negated. Members is sorted and free of duplicates.
type CharSet struct {
	Members []rune
	Negated bool
}

// NewCharSet builds a CharSet from members in any order.
func NewCharSet(members []rune, negated bool) *CharSet {
	sorted := make([]rune, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	uniq := sorted[:0]
	for i, r := range sorted {
		if i == 0 || r != sorted[i-1] {
			uniq = append(uniq, r)
		}
	}
	return &CharSet{Members: uniq, Negated: negated}
}

func (*CharSet) Kind() Kind { return KindCharSet }

// Contains reports whether r is one of the set's members, ignoring Negated.
func (n *CharSet) Contains(r rune) bool {
	i := sort.Search(len(n.Members), func(i int) bool { return n.Members[i] >= r })
	return i < len(n.Members) && n.Members[i] == r
}

// Matches reports whether r satisfies the set, honoring Negated.
func (n *CharSet) Matches(r rune) bool {
	return n.Contains(r) != n.Negated
}

func (n *CharSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if n.Negated {
		b.WriteByte('^')
	}
	b.WriteString(string(n.Members))
	b.WriteByte(']')
	return b.String()
}

// Sequence matches its nodes one after another.
type Sequence struct {
	Nodes []Node
}

func (*Sequence) Kind() Kind { return KindSequence }

func (n *Sequence) String() string { return "Sequence" + listString(n.Nodes) }

// Alternation tries Left and, if that fails, Right.
type Alternation struct {
	Left  []Node
	Right []Node
}

func (*Alternation) Kind() Kind { return KindAlternation }

func (n *Alternation) String() string {
	return "Alternation" + listString(n.Left) + "|" + listString(n.Right)
}

// Group is a capturing parenthesized subpattern. Index is the 1-based
// position of its opening parenthesis among all groups in the pattern.
type Group struct {
	Index int
	Nodes []Node
}

func (*Group) Kind() Kind { return KindGroup }

func (n *Group) String() string {
	return "Group#" + strconv.Itoa(n.Index) + listString(n.Nodes)
}

// RepeatKind selects the repetition performed by a Quantified node.
type RepeatKind uint8

const (
	ZeroOrOne RepeatKind = iota
	ZeroOrMore
	OneOrMore
)

func (k RepeatKind) String() string {
	switch k {
	case ZeroOrOne:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	}
	return "RepeatKind(" + strconv.Itoa(int(k)) + ")"
}

// Quantified repeats Inner according to Repeat.
type Quantified struct {
	Inner  Node
	Repeat RepeatKind
}

func (*Quantified) Kind() Kind { return KindQuantified }

func (n *Quantified) String() string { return n.Inner.String() + n.Repeat.String() }

// Backreference matches the text captured by group Index in the current
// match attempt.
type Backreference struct {
	Index int
}

func (*Backreference) Kind() Kind { return KindBackreference }

func (n *Backreference) String() string { return `\` + strconv.Itoa(n.Index) }

func listString(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func quoteRune(r rune) string {
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}
