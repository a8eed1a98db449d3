// Package literal extracts literal facts from a parsed pattern: the literal
// prefixes every match must begin with, and the set of bytes a match can
// start with. The prefilter package turns these facts into fast scanners
// that propose candidate start offsets.
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte string that may begin a match. Complete is true when the
// literal covers everything the pattern consumes along that path, so it can
// still be extended by whatever follows.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals. Every match of the pattern it was
// extracted from starts with at least one of them. An empty Seq carries no
// information.
type Seq struct {
	literals []Literal
}

// NewSeq creates a Seq from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool { return s.Len() == 0 }

// Literals returns the underlying literals. The caller must not modify them.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// MinLen returns the length of the shortest literal, or 0 for an empty Seq.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		n = min(n, lit.Len())
	}
	return n
}

// Minimize removes duplicates and literals that have a shorter literal in
// the set as a prefix: a scan for the shorter one finds every position the
// longer one would. A literal kept in place of a longer one loses Complete.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for j := range kept {
			if bytes.HasPrefix(cur.Bytes, kept[j].Bytes) {
				if len(cur.Bytes) > len(kept[j].Bytes) || !cur.Complete {
					kept[j].Complete = false
				}
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// FirstBytes returns the distinct first bytes of the literals in ascending order.
func (s *Seq) FirstBytes() []byte {
	var seen [256]bool
	var out []byte
	for _, lit := range s.Literals() {
		if lit.Len() == 0 {
			continue
		}
		if b := lit.Bytes[0]; !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Seq) String() string {
	parts := make([][]byte, 0, s.Len())
	for _, lit := range s.Literals() {
		parts = append(parts, []byte(lit.String()))
	}
	return "[" + string(bytes.Join(parts, []byte(", "))) + "]"
}
