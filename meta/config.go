// Package meta implements the driver that turns a pattern into a compiled
// engine and runs it over one line of input.
//
// The driver strips the line anchors, parses the remainder once and then
// tries the matcher at candidate start offsets in ascending order until one
// succeeds. Which offsets are tried is the engine's strategy:
//   - UseAnchored: only offset 0 (pattern starts with ^)
//   - UseLiteral: the pattern is a fixed string; a substring search decides
//   - UsePrefilter: offsets proposed by a literal prefilter
//   - UseScan: every character boundary, including the end of the line
//
// Every strategy returns exactly what UseScan would.
package meta

import "github.com/coregx/linematch/backtrack"

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.CaptureMode = backtrack.ByCompletion
//	engine, err := meta.CompileWithConfig(`(\w+) \1`, config)
type Config struct {
	// EnablePrefilter enables literal-based candidate search.
	// When false, unanchored patterns try every offset.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length for prefix literals to be used.
	// Shorter prefixes fall back to first-byte scanning.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits the number of alternative prefix literals extracted
	// for prefiltering.
	// Default: 64
	MaxLiterals int

	// CaptureMode selects how backreferences number groups.
	// Default: backtrack.BySlot
	CaptureMode backtrack.Mode

	// MaxPatternLen rejects patterns longer than this many bytes.
	// Zero means no limit.
	// Default: 0
	MaxPatternLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter: true,
		MinLiteralLen:   1,
		MaxLiterals:     64,
		CaptureMode:     backtrack.BySlot,
		MaxPatternLen:   0,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - CaptureMode: BySlot or ByCompletion
//   - MaxPatternLen: 0 or more
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.CaptureMode != backtrack.BySlot && c.CaptureMode != backtrack.ByCompletion {
		return &ConfigError{
			Field:   "CaptureMode",
			Message: "must be slot or completion",
		}
	}

	if c.MaxPatternLen < 0 {
		return &ConfigError{
			Field:   "MaxPatternLen",
			Message: "must not be negative",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "linematch: invalid config: " + e.Field + ": " + e.Message
}
