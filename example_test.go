package linematch_test

import (
	"errors"
	"fmt"

	"github.com/coregx/linematch"
	"github.com/coregx/linematch/backtrack"
)

// ExampleMatchLine demonstrates a one-off match.
func ExampleMatchLine() {
	ok, err := linematch.MatchLine(`(cat) and \1`, "cat and cat")
	if err != nil {
		panic(err)
	}
	fmt.Println(ok)
	// Output: true
}

// ExampleMatchLine_error demonstrates inspecting a parse error.
func ExampleMatchLine_error() {
	_, err := linematch.MatchLine("(abc", "abc")
	fmt.Println(errors.Is(err, linematch.ErrMissingParen))

	var perr *linematch.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Pos)
	}
	// Output:
	// true
	// 0
}

// ExampleCompile demonstrates compiling once and matching many lines.
func ExampleCompile() {
	re, err := linematch.Compile(`^\d+-\d+$`)
	if err != nil {
		panic(err)
	}
	for _, line := range []string{"555-1234", "555-12x", "tel 555-1234"} {
		fmt.Println(line, re.MatchString(line))
	}
	// Output:
	// 555-1234 true
	// 555-12x false
	// tel 555-1234 false
}

// ExampleRegex_FindStringSubmatch demonstrates extracting captures.
func ExampleRegex_FindStringSubmatch() {
	re := linematch.MustCompile(`(\w+)@(\w+)`)
	fmt.Printf("%q\n", re.FindStringSubmatch("mail bob@example now"))
	// Output: ["bob@example" "bob" "example"]
}

// ExampleCompileWithConfig demonstrates completion-order backreferences.
func ExampleCompileWithConfig() {
	config := linematch.DefaultConfig()
	config.CaptureMode = backtrack.ByCompletion

	re, err := linematch.CompileWithConfig(`((a)b)-\2`, config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.MatchString("ab-ab"), re.MatchString("ab-a"))
	// Output: true false
}

// ExampleQuoteMeta demonstrates matching text literally.
func ExampleQuoteMeta() {
	pattern := linematch.QuoteMeta("1+1=2?")
	fmt.Println(pattern)
	fmt.Println(linematch.MustCompile(pattern).MatchString("is 1+1=2?"))
	// Output:
	// 1\+1=2\?
	// true
}
