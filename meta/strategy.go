package meta

import "github.com/coregx/linematch/prefilter"

// Strategy represents how the engine enumerates candidate start offsets.
//
// Strategy selection is automatic based on the anchors and on what the
// literal analysis found. All strategies return the same results.
type Strategy int

const (
	// UseScan tries every character boundary from 0 to len(input).
	// Selected for:
	//   - Patterns that can match the empty string
	//   - Patterns without a useful literal prefix or first byte set
	//   - When EnablePrefilter is false
	UseScan Strategy = iota

	// UseAnchored tries offset 0 only.
	// Selected for patterns that begin with ^.
	UseAnchored

	// UsePrefilter tries only the offsets a prefilter proposes.
	// Selected for patterns with prefix literals or a narrow first byte set.
	UsePrefilter

	// UseLiteral answers IsMatch, and FindSubmatch for patterns without
	// groups, with a substring search alone.
	// Selected for patterns made of literal characters only, without $.
	UseLiteral
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case UseScan:
		return "UseScan"
	case UseAnchored:
		return "UseAnchored"
	case UsePrefilter:
		return "UsePrefilter"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the strategy for a compiled pattern. pf is nil when
// prefiltering is disabled or no prefilter could be built.
func selectStrategy(startAnchored bool, pf prefilter.Prefilter) Strategy {
	switch {
	case startAnchored:
		return UseAnchored
	case pf == nil:
		return UseScan
	case pf.IsComplete():
		return UseLiteral
	default:
		return UsePrefilter
	}
}
