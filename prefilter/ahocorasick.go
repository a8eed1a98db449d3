package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/linematch/literal"
)

// ahoCorasickPrefilter finds the leftmost occurrence of any of several prefix
// literals, e.g. the branches of (north|south|east|west).
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	patterns int
	size     int
}

// newAhoCorasickPrefilter returns nil if the automaton cannot be built.
func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	size := 0
	litCount := seq.Len()
	for i := 0; i < litCount; i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		size += lit.Len()
	}

	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, patterns: litCount, size: size}
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool { return false }

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int { return 0 }

// HeapBytes is an estimate: the automaton does not report its own size.
func (p *ahoCorasickPrefilter) HeapBytes() int { return p.size * 256 }

// Name implements Prefilter.Name.
func (p *ahoCorasickPrefilter) Name() string { return "aho-corasick" }

// Patterns returns the number of literals in the automaton.
func (p *ahoCorasickPrefilter) Patterns() int { return p.patterns }
