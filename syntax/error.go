package syntax

import "fmt"

// ErrorCode describes the kind of malformation found in a pattern.
// It implements error so callers can write errors.Is(err, syntax.ErrMissingParen).
type ErrorCode string

const (
	ErrTrailingBackslash     ErrorCode = "trailing backslash at end of pattern"
	ErrMissingBracket        ErrorCode = "missing closing ]"
	ErrEmptyCharSet          ErrorCode = "empty character set"
	ErrMissingParen          ErrorCode = "missing closing )"
	ErrUnexpectedParen       ErrorCode = "unexpected )"
	ErrMissingRepeatArgument ErrorCode = "missing argument to repetition operator"
)

func (c ErrorCode) Error() string { return string(c) }

func (c ErrorCode) String() string { return string(c) }

// Error is returned by Parse for a malformed pattern. It is never used to
// report that a pattern failed to match.
type Error struct {
	Code    ErrorCode
	Pattern string
	// Pos is the rune offset in Pattern where the problem was detected.
	Pos int
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("linematch: parse error at offset %d in %q: %s", e.Pos, e.Pattern, e.Code)
}

// Is reports whether target is the same ErrorCode as e.Code.
func (e *Error) Is(target error) bool {
	c, ok := target.(ErrorCode)
	return ok && c == e.Code
}
