package meta

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/coregx/linematch/backtrack"
	"github.com/coregx/linematch/literal"
	"github.com/coregx/linematch/prefilter"
	"github.com/coregx/linematch/syntax"
)

// ErrPatternTooLong is returned when a pattern exceeds Config.MaxPatternLen.
var ErrPatternTooLong = errors.New("linematch: pattern too long")

// Engine is a compiled pattern ready to be matched against lines.
//
// The parsed tree and the prefilter are immutable after compilation. The
// only mutable state is the statistics block, updated atomically, and the
// pool of capture buffers, so an Engine is safe for concurrent use.
//
// Example:
//
//	engine, err := meta.Compile(`^(\d+)-\1$`)
//	if err != nil {
//	    return err
//	}
//	engine.IsMatch([]byte("12-12")) // true
type Engine struct {
	// stats is first for 64-bit alignment of its atomic counters. The pad
	// keeps counter writes off the cache lines holding the fields below,
	// which every search reads.
	stats Stats
	_     cpu.CacheLinePad

	pattern       string
	nodes         []syntax.Node
	numCaptures   int
	startAnchored bool
	endAnchored   bool

	strategy  Strategy
	prefilter prefilter.Prefilter
	config    Config

	captures *capturePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts IsMatch and FindSubmatch calls.
	Searches uint64

	// Attempts counts matcher runs, one per start offset tried.
	Attempts uint64

	// PrefilterCandidates counts offsets proposed by the prefilter.
	PrefilterCandidates uint64

	// PrefilterAbandoned counts searches in which the prefilter was retired
	// because its candidates were too dense.
	PrefilterAbandoned uint64

	// LiteralSearches counts IsMatch calls answered by substring search alone.
	LiteralSearches uint64
}

// Match is the result of a successful FindSubmatch.
type Match struct {
	// Start and End are byte offsets of the matched text in the input.
	Start int
	End   int

	// Groups holds the captures after the match, ordered by the capture
	// mode: one entry per group for BySlot, completion order for ByCompletion.
	Groups []string
}

// Compile compiles pattern with the default configuration.
//
// A malformed pattern yields a *syntax.Error.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Compilation proceeds in order:
//  1. Validate the configuration
//  2. Strip the ^ and $ anchors
//  3. Parse the remaining pattern
//  4. Extract literals and build a prefilter (unless disabled)
//  5. Select the search strategy
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.MaxPatternLen > 0 && len(pattern) > config.MaxPatternLen {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPatternTooLong, len(pattern), config.MaxPatternLen)
	}

	body, startAnchored, endAnchored := StripAnchors(pattern)
	seq, err := syntax.Parse(body)
	if err != nil {
		// Report positions in the pattern as written, anchor included.
		var perr *syntax.Error
		if errors.As(err, &perr) {
			perr.Pattern = pattern
			if startAnchored {
				perr.Pos++
			}
		}
		return nil, err
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter && !startAnchored {
		pf = buildPrefilter(seq.Nodes, endAnchored, config)
	}

	numCaptures := syntax.CaptureCount(seq.Nodes)
	return &Engine{
		pattern:       pattern,
		nodes:         seq.Nodes,
		numCaptures:   numCaptures,
		startAnchored: startAnchored,
		endAnchored:   endAnchored,
		strategy:      selectStrategy(startAnchored, pf),
		prefilter:     pf,
		config:        config,
		captures:      newCapturePool(config.CaptureMode, numCaptures),
	}, nil
}

func buildPrefilter(nodes []syntax.Node, endAnchored bool, config Config) prefilter.Prefilter {
	extractorConfig := literal.DefaultConfig()
	extractorConfig.MaxLiterals = config.MaxLiterals

	prefixes := literal.New(extractorConfig).ExtractPrefixes(nodes)
	if prefixes.MinLen() < config.MinLiteralLen {
		prefixes = nil
	}

	builder := prefilter.NewBuilder(prefixes, literal.ExtractFirstBytes(nodes))
	if !endAnchored {
		if lit, ok := literal.ExactLiteral(nodes); ok {
			builder.WithExactLiteral(lit)
		}
	}
	return builder.Build()
}

// IsMatch reports whether the pattern matches anywhere in input.
func (e *Engine) IsMatch(input []byte) bool {
	if e.strategy == UseLiteral {
		atomic.AddUint64(&e.stats.Searches, 1)
		atomic.AddUint64(&e.stats.LiteralSearches, 1)
		return e.prefilter.Find(input, 0) >= 0
	}

	caps := e.captures.get()
	defer e.captures.put(caps)

	_, _, ok := e.search(input, caps)
	return ok
}

// FindSubmatch returns the first match in input with its captures, or nil.
//
// The first match is the one starting at the smallest offset; its extent is
// whatever the matcher consumed there.
func (e *Engine) FindSubmatch(input []byte) *Match {
	if e.strategy == UseLiteral && e.numCaptures == 0 {
		atomic.AddUint64(&e.stats.Searches, 1)
		atomic.AddUint64(&e.stats.LiteralSearches, 1)
		pos := e.prefilter.Find(input, 0)
		if pos < 0 {
			return nil
		}
		return &Match{Start: pos, End: pos + e.prefilter.LiteralLen()}
	}

	caps := e.captures.get()
	defer e.captures.put(caps)

	start, end, ok := e.search(input, caps)
	if !ok {
		return nil
	}
	return &Match{Start: start, End: end, Groups: caps.Values()}
}

// PrefilterInfo describes the candidate scanner of an engine.
type PrefilterInfo struct {
	// Name identifies the scanner, e.g. "memmem" or "aho-corasick".
	Name string

	// Complete is true when a candidate is a match by itself.
	Complete bool

	// Literals is the number of literals searched for. Scanners driven by a
	// byte class report 0.
	Literals int

	// HeapBytes is the heap memory held by the scanner.
	HeapBytes int
}

// PrefilterInfo describes the engine's prefilter. It returns false if the
// engine has none.
func (e *Engine) PrefilterInfo() (PrefilterInfo, bool) {
	if e.prefilter == nil {
		return PrefilterInfo{}, false
	}
	return PrefilterInfo{
		Name:      e.prefilter.Name(),
		Complete:  e.prefilter.IsComplete(),
		Literals:  prefilter.Literals(e.prefilter),
		HeapBytes: e.prefilter.HeapBytes(),
	}, true
}

// Pattern returns the source pattern, anchors included.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Strategy returns the execution strategy selected for this engine.
//
// Example:
//
//	strategy := engine.Strategy()
//	println(strategy.String()) // "UsePrefilter"
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Prefilter returns the candidate scanner, or nil if the engine has none.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// IsStartAnchored returns true if the pattern begins with ^.
func (e *Engine) IsStartAnchored() bool {
	return e.startAnchored
}

// IsEndAnchored returns true if the pattern ends with an unescaped $.
func (e *Engine) IsEndAnchored() bool {
	return e.endAnchored
}

// NumCaptures returns the number of capturing groups in the pattern.
func (e *Engine) NumCaptures() int {
	return e.numCaptures
}

// CaptureMode returns the backreference numbering the engine uses.
func (e *Engine) CaptureMode() backtrack.Mode {
	return e.config.CaptureMode
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:            atomic.LoadUint64(&e.stats.Searches),
		Attempts:            atomic.LoadUint64(&e.stats.Attempts),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterAbandoned:  atomic.LoadUint64(&e.stats.PrefilterAbandoned),
		LiteralSearches:     atomic.LoadUint64(&e.stats.LiteralSearches),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.Attempts, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterAbandoned, 0)
	atomic.StoreUint64(&e.stats.LiteralSearches, 0)
}
