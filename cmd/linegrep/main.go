// Command linegrep prints the lines of its input that match a pattern.
//
// Usage:
//
//	linegrep [-r] -E PATTERN [PATH...]
//
// With no PATH it reads standard input. The exit status is 0 if any line
// matched, 1 if none did, and 2 on a usage, pattern or I/O error.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

const (
	exitOK      = 0
	exitNoMatch = 1
	exitError   = 2
)

// options holds the parsed command line.
type options struct {
	pattern     string
	recursive   bool
	include     []string
	exclude     []string
	count       bool
	quiet       bool
	captureMode string
	noPrefilter bool
	debug       bool
}

func main() {
	// Missing .env is not an error.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes linegrep with args and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := exitOK
	cmd := newRootCmd(stdin, stdout, stderr, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "linegrep: %v\n", err)
		return exitError
	}
	return code
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "linegrep [-r] -E PATTERN [PATH...]",
		Short: "Print lines matching a pattern",
		Long: `linegrep searches each PATH, or standard input when none is given, and
prints every line matching PATTERN. With -r, directories are searched
recursively and --include/--exclude globs select which files are read.

Defaults for --capture-mode, --no-prefilter and --debug can be set with
LINEGREP_CAPTURE_MODE, LINEGREP_NO_PREFILTER and LINEGREP_DEBUG, in the
environment or in a .env file in the working directory.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(stderr, opts.debug)
			g, err := newGrep(opts, stdout, log)
			if err != nil {
				return err
			}
			*code = g.run(stdin, args)
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.pattern, "regexp", "E", "", "pattern to match (required)")
	f.BoolVarP(&opts.recursive, "recursive", "r", false, "search directories recursively")
	f.StringSliceVar(&opts.include, "include", nil, "with -r, only search files matching these globs")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "with -r, skip files matching these globs")
	f.BoolVarP(&opts.count, "count", "c", false, "print the number of matching lines per input")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "print nothing, stop at the first match")
	f.StringVar(&opts.captureMode, "capture-mode", envString("LINEGREP_CAPTURE_MODE", "slot"),
		"backreference numbering: slot or completion")
	f.BoolVar(&opts.noPrefilter, "no-prefilter", envBool("LINEGREP_NO_PREFILTER"), "disable literal prefiltering")
	f.BoolVar(&opts.debug, "debug", envBool("LINEGREP_DEBUG"), "enable debug logging")
	_ = cmd.MarkFlagRequired("regexp")

	return cmd
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
