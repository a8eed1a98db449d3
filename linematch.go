// Package linematch decides whether a single line of text matches a pattern
// written in a small regular expression language.
//
// The language covers what a line-oriented grep needs:
//
//	c        literal character        .        any character
//	\d       ASCII digit              \w       ASCII letter, digit or _
//	[abc]    one of the characters    [^abc]   any other character
//	x?       zero or one              x*       zero or more
//	x+       one or more              (a|b)    capturing group, alternation
//	\1..\9   backreference            ^  $     start and end of line
//	\c       c taken literally
//
// Matching is backtracking with first-success commitment: quantifiers are
// greedy and never give characters back, and an alternation keeps the first
// branch that matches. Without ^ the pattern may match at any offset.
//
// Basic usage:
//
//	ok, err := linematch.MatchLine(`(\w+) \1`, "hello hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ok) // true
//
// Compile once to match many lines:
//
//	re := linematch.MustCompile(`^\d+-\d+$`)
//	for _, line := range lines {
//	    if re.MatchString(line) {
//	        fmt.Println(line)
//	    }
//	}
//
// Backreferences number groups by opening parenthesis. The numbering by
// order of group completion is available through Config.CaptureMode.
package linematch

import (
	"strings"

	"github.com/coregx/linematch/meta"
	"github.com/coregx/linematch/syntax"
)

// ParseError describes a malformed pattern.
type ParseError = syntax.Error

// ErrorCode identifies the kind of a ParseError. Codes work with errors.Is:
//
//	if errors.Is(err, linematch.ErrMissingParen) { ... }
type ErrorCode = syntax.ErrorCode

// Parse error codes.
const (
	ErrTrailingBackslash     = syntax.ErrTrailingBackslash
	ErrMissingBracket        = syntax.ErrMissingBracket
	ErrEmptyCharSet          = syntax.ErrEmptyCharSet
	ErrMissingParen          = syntax.ErrMissingParen
	ErrUnexpectedParen       = syntax.ErrUnexpectedParen
	ErrMissingRepeatArgument = syntax.ErrMissingRepeatArgument
)

// Config controls compilation. See meta.Config.
type Config = meta.Config

// Stats holds execution counters. See meta.Stats.
type Stats = meta.Stats

// PrefilterInfo describes the candidate scanner of a compiled pattern.
type PrefilterInfo = meta.PrefilterInfo

// MatchLine reports whether pattern matches input.
//
// The pattern is compiled for this call only; use Compile to match many
// lines against one pattern. A malformed pattern yields a *ParseError and
// false. No match is not an error.
func MatchLine(pattern, input string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(input), nil
}

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := linematch.MustCompile(`ca+ts`)
//	if re.MatchString("caaats") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a pattern with the default configuration.
//
// Example:
//
//	re, err := linematch.Compile(`(cat|dog)s?`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// Example:
//
//	var dateRegex = linematch.MustCompile(`\d\d\d\d-\d\d-\d\d`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("linematch: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := linematch.DefaultConfig()
//	config.CaptureMode = backtrack.ByCompletion
//	re, err := linematch.CompileWithConfig(`((a)b)\2`, config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a pattern that matches the text s literally.
//
// Example:
//
//	escaped := linematch.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte) bool {
	return strings.IndexByte(`\.+*?()|[]^$`, c) >= 0
}

// Match reports whether the line b contains a match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the line s contains a match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the text of the first match in b, or nil.
//
// Example:
//
//	re := linematch.MustCompile(`\d+`)
//	println(string(re.Find([]byte("age: 42")))) // "42"
func (r *Regex) Find(b []byte) []byte {
	m := r.engine.FindSubmatch(b)
	if m == nil {
		return nil
	}
	return b[m.Start:m.End:m.End]
}

// FindIndex returns the location of the first match in b as a two-element
// slice, or nil. The match is at b[loc[0]:loc[1]].
func (r *Regex) FindIndex(b []byte) []int {
	m := r.engine.FindSubmatch(b)
	if m == nil {
		return nil
	}
	return []int{m.Start, m.End}
}

// FindString returns the text of the first match in s, or "".
func (r *Regex) FindString(s string) string {
	m := r.engine.FindSubmatch([]byte(s))
	if m == nil {
		return ""
	}
	return s[m.Start:m.End]
}

// FindStringSubmatch returns the text of the first match in s followed by
// the captures, or nil if there is no match.
//
// With the default slot numbering, result[i] is the text of group i and is
// empty for groups that did not take part. With completion numbering, the
// captures follow in the order the groups completed.
//
// Example:
//
//	re := linematch.MustCompile(`(\w+)@(\w+)`)
//	m := re.FindStringSubmatch("mail bob@example now")
//	// m[0] = "bob@example"
//	// m[1] = "bob"
//	// m[2] = "example"
func (r *Regex) FindStringSubmatch(s string) []string {
	m := r.engine.FindSubmatch([]byte(s))
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Groups)+1)
	out = append(out, s[m.Start:m.End])
	return append(out, m.Groups...)
}

// NumSubexp returns the number of capturing groups in the pattern.
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures()
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Strategy returns the name of the search strategy, for diagnostics.
func (r *Regex) Strategy() string {
	return r.engine.Strategy().String()
}

// PrefilterInfo describes the scanner that proposes candidate offsets, for
// diagnostics. It returns false when every offset is tried, as for patterns
// starting with ^ or matching the empty string.
//
// Example:
//
//	re := linematch.MustCompile(`(cat|dog)s`)
//	info, _ := re.PrefilterInfo()
//	println(info.Name, info.Literals) // "aho-corasick 2"
func (r *Regex) PrefilterInfo() (PrefilterInfo, bool) {
	return r.engine.PrefilterInfo()
}

// Stats returns execution statistics.
func (r *Regex) Stats() Stats {
	return r.engine.Stats()
}

// ResetStats resets execution statistics to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}
