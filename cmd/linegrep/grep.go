package main

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/coregx/linematch"
	"github.com/coregx/linematch/backtrack"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

const stdinName = "(standard input)"

// grep searches inputs for one compiled pattern and tracks the outcome.
type grep struct {
	re   *linematch.Regex
	opts *options
	out  *bufio.Writer
	log  *logger

	prefix  bool
	matched bool
	failed  bool
	files   int
}

func newGrep(opts *options, out io.Writer, log *logger) (*grep, error) {
	mode, ok := backtrack.ParseMode(opts.captureMode)
	if !ok {
		return nil, errors.Errorf("invalid --capture-mode %q: want slot or completion", opts.captureMode)
	}
	for _, glob := range append(append([]string(nil), opts.include...), opts.exclude...) {
		if !doublestar.ValidatePattern(glob) {
			return nil, errors.Errorf("invalid glob %q", glob)
		}
	}
	if !opts.recursive && len(opts.include)+len(opts.exclude) > 0 {
		log.Warnf("walk", "--include and --exclude have no effect without -r")
	}

	config := linematch.DefaultConfig()
	config.CaptureMode = mode
	config.EnablePrefilter = !opts.noPrefilter

	re, err := linematch.CompileWithConfig(opts.pattern, config)
	if err != nil {
		return nil, err
	}
	log.Debugf("compile", "pattern %q: strategy %s, %d groups, %s numbering",
		opts.pattern, re.Strategy(), re.NumSubexp(), mode)
	if info, ok := re.PrefilterInfo(); ok {
		log.Debugf("compile", "prefilter %s: %d literals, complete=%t, %d heap bytes",
			info.Name, info.Literals, info.Complete, info.HeapBytes)
	} else {
		log.Debugf("compile", "no prefilter, every offset is tried")
	}

	return &grep{
		re:   re,
		opts: opts,
		out:  bufio.NewWriter(out),
		log:  log,
	}, nil
}

// run searches paths, or stdin when paths is empty, and returns the exit code.
func (g *grep) run(stdin io.Reader, paths []string) int {
	if len(paths) == 0 && !g.opts.recursive {
		if err := g.scan(stdinName, stdin); err != nil {
			g.fail(err)
		}
	} else {
		if len(paths) == 0 {
			paths = []string{"."}
		}
		g.prefix = len(paths) > 1 || g.opts.recursive
		for _, path := range paths {
			if g.done() {
				break
			}
			if g.opts.recursive {
				g.walk(path)
			} else {
				g.scanFile(path)
			}
		}
		g.log.Infof("linegrep", "searched %d files", g.files)
	}

	stats := g.re.Stats()
	g.log.Debugf("stats", "searches=%d attempts=%d candidates=%d abandoned=%d literal=%d",
		stats.Searches, stats.Attempts, stats.PrefilterCandidates, stats.PrefilterAbandoned, stats.LiteralSearches)

	// Write errors are sticky in bufio.Writer and surface here.
	if err := g.out.Flush(); err != nil {
		g.fail(errors.Wrap(err, "writing output"))
		return exitError
	}
	return g.exitCode()
}

func (g *grep) walk(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			g.fail(errors.Wrap(err, "cannot search"))
			return nil
		}
		if g.done() {
			return filepath.SkipAll
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !g.selected(path) {
			g.log.Debugf("walk", "skipping %s", path)
			return nil
		}
		g.scanFile(path)
		return nil
	})
	if err != nil {
		g.fail(errors.Wrapf(err, "walking %s", root))
	}
}

// selected applies the --include and --exclude globs to path.
func (g *grep) selected(path string) bool {
	if len(g.opts.include) > 0 && !matchAny(g.opts.include, path) {
		return false
	}
	return !matchAny(g.opts.exclude, path)
}

// matchAny matches globs against the full path, and against the base name
// for globs without a separator.
func matchAny(globs []string, path string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.PathMatch(glob, path); err == nil && ok {
			return true
		}
		if !strings.Contains(glob, "/") {
			if ok, err := doublestar.PathMatch(glob, filepath.Base(path)); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func (g *grep) scanFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		g.fail(errors.Wrap(err, "cannot search"))
		return
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		g.fail(errors.Errorf("%s: is a directory", path))
		return
	}

	g.files++
	g.log.Debugf("scan", "reading %s", path)
	if err := g.scan(path, f); err != nil {
		g.fail(err)
	}
}

// scan matches every line of r and prints the result for source name.
func (g *grep) scan(name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if !g.re.Match(line) {
			continue
		}
		count++
		g.matched = true
		if g.opts.quiet {
			break
		}
		if !g.opts.count {
			g.writePrefix(name)
			g.out.Write(line)
			g.out.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	if g.opts.count && !g.opts.quiet {
		g.writePrefix(name)
		g.out.WriteString(strconv.Itoa(count))
		g.out.WriteByte('\n')
	}
	g.log.Debugf("scan", "%s: %d matching lines", name, count)
	return nil
}

func (g *grep) writePrefix(name string) {
	if g.prefix {
		g.out.WriteString(name)
		g.out.WriteByte(':')
	}
}

func (g *grep) fail(err error) {
	g.failed = true
	g.log.Errorf("linegrep", "%v", err)
}

// done reports whether a quiet search can stop.
func (g *grep) done() bool {
	return g.opts.quiet && g.matched
}

func (g *grep) exitCode() int {
	switch {
	case g.failed && !g.done():
		return exitError
	case g.matched:
		return exitOK
	default:
		return exitNoMatch
	}
}
