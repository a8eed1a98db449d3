package meta

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/linematch/backtrack"
	"github.com/coregx/linematch/prefilter"
)

// search runs the offset loop for the engine's strategy and returns the
// bounds of the first match. On success caps holds that match's captures.
func (e *Engine) search(input []byte, caps *backtrack.Captures) (start, end int, ok bool) {
	atomic.AddUint64(&e.stats.Searches, 1)

	switch e.strategy {
	case UseAnchored:
		return e.attemptAt(input, 0, caps)
	case UsePrefilter, UseLiteral:
		return e.searchPrefilter(input, caps)
	default:
		return e.searchScan(input, caps)
	}
}

// attemptAt runs the matcher on the suffix of input starting at at, with
// an empty capture buffer.
func (e *Engine) attemptAt(input []byte, at int, caps *backtrack.Captures) (start, end int, ok bool) {
	atomic.AddUint64(&e.stats.Attempts, 1)

	caps.Reset()
	rest, ok := backtrack.MatchSequence(e.nodes, input[at:], caps)
	if !ok || (e.endAnchored && len(rest) != 0) {
		return -1, -1, false
	}
	return at, len(input) - len(rest), true
}

// searchScan tries every character boundary, the end of input included.
func (e *Engine) searchScan(input []byte, caps *backtrack.Captures) (start, end int, ok bool) {
	at := 0
	for {
		if start, end, ok := e.attemptAt(input, at, caps); ok {
			return start, end, true
		}
		if at >= len(input) {
			return -1, -1, false
		}
		_, width := utf8.DecodeRune(input[at:])
		at += width
	}
}

// searchPrefilter tries only prefilter candidates. Prefilters are built
// for patterns that cannot match the empty string, so the end of input is
// never a candidate.
func (e *Engine) searchPrefilter(input []byte, caps *backtrack.Captures) (start, end int, ok bool) {
	tracker := prefilter.NewTracker(e.prefilter)
	abandoned := false

	for at := 0; at < len(input); {
		pos := tracker.Find(input, at)
		if pos < 0 {
			break
		}
		if !abandoned && !tracker.IsActive() {
			abandoned = true
			atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
		}

		at = pos + 1
		if !onBoundary(input, pos) {
			continue
		}
		atomic.AddUint64(&e.stats.PrefilterCandidates, 1)
		if start, end, ok := e.attemptAt(input, pos, caps); ok {
			return start, end, true
		}
	}
	return -1, -1, false
}

// onBoundary reports whether decoding input rune by rune from offset 0
// stops at pos, i.e. whether searchScan would try pos.
func onBoundary(input []byte, pos int) bool {
	if pos == 0 || pos >= len(input) || utf8.RuneStart(input[pos]) {
		return true
	}
	for i := pos - 1; i >= 0 && i >= pos-(utf8.UTFMax-1); i-- {
		if utf8.RuneStart(input[i]) {
			_, width := utf8.DecodeRune(input[i:])
			return i+width <= pos
		}
	}
	return true
}
