package prefilter

// Tracker wraps a Prefilter with effectiveness tracking for one search.
//
// The tracker monitors how densely the prefilter reports candidates. Once
// they are denser than MaxDensity the scanner is retired and every offset
// is proposed from then on.
//
// Algorithm:
//  1. Track candidates and the number of offsets they were picked from
//  2. Every N candidates, check the density ratio
//  3. If density > threshold, disable the prefilter
//  4. Once disabled, never re-enable (for this search)
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	for start := 0; ; start++ {
//	    pos := tracker.Find(line, start)
//	    if pos == -1 {
//	        break
//	    }
//	    if matchesAt(line, pos) {
//	        return pos
//	    }
//	    start = pos
//	}
//
// A Tracker is not safe for concurrent use; create one per search.
type Tracker struct {
	inner Prefilter

	candidates uint64 // candidate positions returned
	scanned    uint64 // offsets covered by those candidates

	checkInterval  uint64
	maxDensity     float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in candidates).
	// Default: 32
	CheckInterval uint64

	// MaxDensity is the highest acceptable ratio of candidates to scanned
	// offsets. Above it the prefilter is disabled.
	// Default: 0.5
	MaxDensity float64

	// WarmupPeriod is the minimum number of candidates before checking.
	// Default: 64
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 32,
		MaxDensity:    0.5,
		WarmupPeriod:  64,
	}
}

// NewTracker creates a new tracker for the given prefilter with default config.
//
// Returns nil if the inner prefilter is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a new tracker with custom configuration.
//
// Returns nil if the inner prefilter is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}

	return &Tracker{
		inner:         inner,
		checkInterval: config.CheckInterval,
		maxDensity:    config.MaxDensity,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate position at or after start, or -1.
//
// Once the tracker is disabled it returns start itself while start is inside
// haystack.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		if start < 0 || start >= len(haystack) {
			return -1
		}
		return start
	}

	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.scanned += uint64(pos-start) + 1
		t.checkEffectiveness()
	}
	return pos
}

// IsActive returns true if the inner prefilter is still being used.
func (t *Tracker) IsActive() bool {
	return t.active
}

// IsComplete delegates to the inner prefilter while it is active.
func (t *Tracker) IsComplete() bool {
	return t.active && t.inner.IsComplete()
}

// Stats returns the current tracking statistics.
//
// Returns (candidates, scanned, density, active).
func (t *Tracker) Stats() (candidates, scanned uint64, density float64, active bool) {
	candidates = t.candidates
	scanned = t.scanned
	if scanned > 0 {
		density = float64(candidates) / float64(scanned)
	}
	active = t.active
	return
}

// Reset clears statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.scanned = 0
	t.lastCheckpoint = 0
	t.active = true
}

// Inner returns the underlying prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	density := float64(t.candidates) / float64(t.scanned)
	if density > t.maxDensity {
		t.active = false
	}
}
