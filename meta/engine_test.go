package meta

import (
	"reflect"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/coregx/linematch/backtrack"
)

func mustCompile(t *testing.T, pattern string, config Config) *Engine {
	t.Helper()
	engine, err := CompileWithConfig(pattern, config)
	if err != nil {
		t.Fatalf("CompileWithConfig(%q): %v", pattern, err)
	}
	return engine
}

func configs() map[string]Config {
	noPrefilter := DefaultConfig()
	noPrefilter.EnablePrefilter = false
	completion := DefaultConfig()
	completion.CaptureMode = backtrack.ByCompletion
	return map[string]Config{
		"default":     DefaultConfig(),
		"noprefilter": noPrefilter,
		"completion":  completion,
	}
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"a*", "", true},
		{"a?", "", true},
		{"a+", "", false},
		{"a", "", false},
		{`\d`, "abc123", true},
		{`\d`, "abc", false},
		{"[^xyz]", "apple", true},
		{"[^xyz]", "xyz", false},
		{"ca+ts", "caaats", true},
		{"ca+ts", "cats", true},
		{"ca+ts", "cts", false},
		{`(cat) and \1`, "cat and cat", true},
		{`(cat) and \1`, "cat and dog", false},
		{"^log$", "log", true},
		{"^log$", "logs", false},
		{"log", "xlogx", true},
		{"$", "abc", true},
		{"^$", "", true},
		{"^$", "a", false},
		{"a$", "ba", true},
		{"a$", "ab", false},
		{`a\$`, "a$", true},
		{`a\$`, "a", false},
		{"hello", "say hello", true},
		{"hello", "hell", false},
		{"a*a", "aaa", false},
		{"(a|ab)c", "abc", false},
		{"(ab|a)c", "ac", true},
		{"é.", "café!", true},
		{"[^a]", "\x80", true},
		{"[^a]", "é", true},
		{"[^a]", "aaa", false},
		{`(\w+) \1`, "say hello hello", true},
		{`\d+-\d+`, "call 555-1234", true},
		{"(cat|dog)s", "hotdogs", true},
		{"(cat|dog)s", "hot dog", false},
		{"(north|south|east|west)wind", "a westwind blows", true},
		{`((a)x|ab)\2`, "aba", false},
		{"", "", true},
		{"", "anything", true},
	}

	for name, config := range configs() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.pattern+"/"+tt.input, func(t *testing.T) {
				engine := mustCompile(t, tt.pattern, config)
				if got := engine.IsMatch([]byte(tt.input)); got != tt.want {
					t.Errorf("IsMatch(%q) with %q = %v, want %v (strategy %s)",
						tt.input, tt.pattern, got, tt.want, engine.Strategy())
				}
			})
		}
	}
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		pattern  string
		config   func(*Config)
		strategy Strategy
	}{
		{"^log$", nil, UseAnchored},
		{"^", nil, UseAnchored},
		{"hello", nil, UseLiteral},
		{"(hello)", nil, UseLiteral},
		{"hello$", nil, UsePrefilter},
		{"(cat|dog)", nil, UsePrefilter},
		{"[^xyz]", nil, UsePrefilter},
		{`\d+`, nil, UsePrefilter},
		{"a*", nil, UseScan},
		{"", nil, UseScan},
		{".x", nil, UseScan},
		{"hello", func(c *Config) { c.EnablePrefilter = false }, UseScan},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			config := DefaultConfig()
			if tt.config != nil {
				tt.config(&config)
			}
			engine := mustCompile(t, tt.pattern, config)
			if got := engine.Strategy(); got != tt.strategy {
				t.Errorf("Strategy() = %s, want %s", got, tt.strategy)
			}
		})
	}
}

func TestStrategyString(t *testing.T) {
	for s, want := range map[Strategy]string{
		UseScan:      "UseScan",
		UseAnchored:  "UseAnchored",
		UsePrefilter: "UsePrefilter",
		UseLiteral:   "UseLiteral",
		Strategy(99): "Unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("Strategy(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

// TestStartAnchoredSingleAttempt verifies that only offset 0 is tried for
// patterns beginning with ^.
func TestStartAnchoredSingleAttempt(t *testing.T) {
	patterns := []string{"^a", "^", "^(a|b)*c", "^log$", `^\d+`}
	inputs := []string{"", "zzz", "abc", "xxxxxxxxxxlog", "123"}

	for _, pattern := range patterns {
		engine := mustCompile(t, pattern, DefaultConfig())
		for _, input := range inputs {
			engine.ResetStats()
			engine.IsMatch([]byte(input))
			if got := engine.Stats().Attempts; got != 1 {
				t.Errorf("%q on %q: Attempts = %d, want 1", pattern, input, got)
			}
		}
	}
}

func TestScanAttemptsEveryBoundary(t *testing.T) {
	config := DefaultConfig()
	config.EnablePrefilter = false
	engine := mustCompile(t, "z", config)

	engine.IsMatch([]byte("aéb"))
	// Offsets 0, 1, 3 and 4: the two bytes of é are a single character.
	if got := engine.Stats().Attempts; got != 4 {
		t.Errorf("Attempts = %d, want 4", got)
	}
}

// TestPrefilterDoesNotChangeResults compares engines with and without
// prefiltering over a grid of patterns and inputs.
func TestPrefilterDoesNotChangeResults(t *testing.T) {
	patterns := []string{
		"a", "abc", "ab?c", "a?b", "(cat|dog)", "(ab|a)c", "x*y", `\d\d`,
		`\w+-\d`, "[abc]+d", "(a|b|cd)e", "(hel+o|world)", `(ab)\1`, "a?a",
		"[^a]b", "[^a]", "é", "[é]x", "a$", `(\d+)\.\1$`, "�",
	}
	inputs := []string{
		"", "abc", "aaabbbccc", "ac abc abbc", "the cat and the dog",
		"aacabac", "xxxy yyy", "a1 22 333", "foo-1 bar_baz-9", "ccbad",
		"cde ae be", "hello hellllo world", "ababab", "aaa", "ab", "éx",
		"\x80b", "a\xc3", "12.12", "1.12", "x\xffy",
	}

	noPrefilter := DefaultConfig()
	noPrefilter.EnablePrefilter = false

	for _, pattern := range patterns {
		fast := mustCompile(t, pattern, DefaultConfig())
		slow := mustCompile(t, pattern, noPrefilter)
		for _, input := range inputs {
			b := []byte(input)
			if got, want := fast.IsMatch(b), slow.IsMatch(b); got != want {
				t.Errorf("%q on %q: IsMatch = %v with %s, %v without prefilter",
					pattern, input, got, fast.Strategy(), want)
			}
			if got, want := fast.FindSubmatch(b), slow.FindSubmatch(b); !reflect.DeepEqual(got, want) {
				t.Errorf("%q on %q: FindSubmatch = %+v with %s, %+v without prefilter",
					pattern, input, got, fast.Strategy(), want)
			}
		}
	}
}

func TestFindSubmatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		mode    backtrack.Mode
		want    *Match
	}{
		{`(\d+)-(\d+)`, "tel 12-345x", backtrack.BySlot, &Match{Start: 4, End: 10, Groups: []string{"12", "345"}}},
		{"((a)b)", "xab", backtrack.BySlot, &Match{Start: 1, End: 3, Groups: []string{"ab", "a"}}},
		{"((a)b)", "xab", backtrack.ByCompletion, &Match{Start: 1, End: 3, Groups: []string{"a", "ab"}}},
		{"b+", "abbbc", backtrack.BySlot, &Match{Start: 1, End: 4, Groups: []string{}}},
		{"hello", "oh hello", backtrack.BySlot, &Match{Start: 3, End: 8, Groups: []string{}}},
		{"$", "abc", backtrack.BySlot, &Match{Start: 3, End: 3, Groups: []string{}}},
		{"x", "abc", backtrack.BySlot, nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.pattern, func(t *testing.T) {
			config := DefaultConfig()
			config.CaptureMode = tt.mode
			got := mustCompile(t, tt.pattern, config).FindSubmatch([]byte(tt.input))
			if tt.want != nil && got != nil && len(tt.want.Groups) == 0 && len(got.Groups) == 0 {
				got.Groups = tt.want.Groups
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindSubmatch(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepeatedCallsIdentical(t *testing.T) {
	engine := mustCompile(t, `(\w+) (\w+) \2`, DefaultConfig())
	inputs := []string{"a b b", "one two one", "x y y z", "nope"}

	for _, input := range inputs {
		first := engine.FindSubmatch([]byte(input))
		second := engine.FindSubmatch([]byte(input))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("FindSubmatch(%q) changed between calls: %+v then %+v", input, first, second)
		}
	}
}

func TestLiteralStrategySkipsMatcher(t *testing.T) {
	engine := mustCompile(t, "needle", DefaultConfig())
	if !engine.IsMatch([]byte("haystack with a needle in it")) {
		t.Fatal("IsMatch = false")
	}
	stats := engine.Stats()
	if stats.LiteralSearches != 1 || stats.Attempts != 0 {
		t.Errorf("Stats = %+v, want one literal search and no attempts", stats)
	}

	engine.ResetStats()
	if got := engine.Stats(); got != (Stats{}) {
		t.Errorf("Stats after reset = %+v", got)
	}
}

func TestLiteralStrategyFindSubmatch(t *testing.T) {
	engine := mustCompile(t, "needle", DefaultConfig())
	m := engine.FindSubmatch([]byte("a needle, another needle"))
	if m == nil || m.Start != 2 || m.End != 8 || len(m.Groups) != 0 {
		t.Fatalf("FindSubmatch = %+v, want [2,8) without groups", m)
	}
	if engine.FindSubmatch([]byte("haystack")) != nil {
		t.Error("FindSubmatch found a missing literal")
	}
	stats := engine.Stats()
	if stats.LiteralSearches != 2 || stats.Attempts != 0 {
		t.Errorf("Stats = %+v, want two literal searches and no attempts", stats)
	}

	// Groups need the matcher to fill their captures.
	grouped := mustCompile(t, "ne(ed)le", DefaultConfig())
	m = grouped.FindSubmatch([]byte("a needle"))
	if m == nil || m.Start != 2 || m.End != 8 || !reflect.DeepEqual(m.Groups, []string{"ed"}) {
		t.Fatalf("FindSubmatch = %+v", m)
	}
	if grouped.Stats().Attempts == 0 {
		t.Error("grouped literal did not run the matcher")
	}
}

func TestPrefilterInfo(t *testing.T) {
	tests := []struct {
		pattern string
		want    PrefilterInfo
		ok      bool
	}{
		{"needle", PrefilterInfo{Name: "memmem", Complete: true, Literals: 1, HeapBytes: 6}, true},
		{`\d+`, PrefilterInfo{Name: "digit"}, true},
		{"[aeiou]", PrefilterInfo{Name: "table", HeapBytes: 256}, true},
		{"^needle", PrefilterInfo{}, false},
		{".*", PrefilterInfo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, ok := mustCompile(t, tt.pattern, DefaultConfig()).PrefilterInfo()
			if ok != tt.ok || got != tt.want {
				t.Errorf("PrefilterInfo() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	info, ok := mustCompile(t, "(north|south|east|west)", DefaultConfig()).PrefilterInfo()
	if !ok || info.Name != "aho-corasick" || info.Literals != 4 || info.HeapBytes <= 0 {
		t.Errorf("PrefilterInfo() = %+v, %v", info, ok)
	}
}

// TestStatsCacheLine checks that the counters do not share a cache line
// with the fields read on every search.
func TestStatsCacheLine(t *testing.T) {
	var e Engine
	gap := unsafe.Offsetof(e.pattern) - unsafe.Sizeof(e.stats)
	if gap < unsafe.Sizeof(cpu.CacheLinePad{}) {
		t.Errorf("read-only fields start %d bytes after the counters, want at least %d",
			gap, unsafe.Sizeof(cpu.CacheLinePad{}))
	}
}

func TestPrefilterCandidates(t *testing.T) {
	engine := mustCompile(t, "(cat|dog)s", DefaultConfig())
	if !engine.IsMatch([]byte("the dogs")) {
		t.Fatal("IsMatch = false")
	}
	stats := engine.Stats()
	if stats.PrefilterCandidates != 1 || stats.Attempts != 1 {
		t.Errorf("Stats = %+v, want a single candidate and attempt", stats)
	}
	if engine.Prefilter() == nil || engine.Prefilter().Name() != "aho-corasick" {
		t.Errorf("Prefilter() = %v", engine.Prefilter())
	}
}

func TestPrefilterAbandoned(t *testing.T) {
	engine := mustCompile(t, "[^b]x", DefaultConfig())
	input := strings.Repeat("a", 500)

	if engine.IsMatch([]byte(input)) {
		t.Fatal("IsMatch = true without any x")
	}
	if got := engine.Stats().PrefilterAbandoned; got != 1 {
		t.Errorf("PrefilterAbandoned = %d, want 1", got)
	}
	if !engine.IsMatch([]byte(input + "x")) {
		t.Error("IsMatch = false after the prefilter was abandoned")
	}
}

func TestOnBoundary(t *testing.T) {
	input := []byte("a\xc3\xa9\x80b")
	want := map[int]bool{0: true, 1: true, 2: false, 3: true, 4: true, 5: true}
	for pos, w := range want {
		if got := onBoundary(input, pos); got != w {
			t.Errorf("onBoundary(%d) = %v, want %v", pos, got, w)
		}
	}
}

func TestEngineAccessors(t *testing.T) {
	config := DefaultConfig()
	config.CaptureMode = backtrack.ByCompletion
	engine := mustCompile(t, "^(a)(b)$", config)

	if engine.Pattern() != "^(a)(b)$" {
		t.Errorf("Pattern() = %q", engine.Pattern())
	}
	if !engine.IsStartAnchored() || !engine.IsEndAnchored() {
		t.Error("anchors not detected")
	}
	if engine.NumCaptures() != 2 {
		t.Errorf("NumCaptures() = %d", engine.NumCaptures())
	}
	if engine.CaptureMode() != backtrack.ByCompletion {
		t.Errorf("CaptureMode() = %v", engine.CaptureMode())
	}
	if engine.Prefilter() != nil {
		t.Error("anchored engine should not build a prefilter")
	}
}

// TestConcurrentMatch tests that one Engine can be shared by goroutines.
func TestConcurrentMatch(t *testing.T) {
	engine := mustCompile(t, `(\w+)@(\w+)\.\2`, DefaultConfig())
	inputs := map[string]bool{
		"mail bob@example.example now": true,
		"mail bob@example.com now":     false,
		"x@y.y":                        true,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for input, want := range inputs {
					if got := engine.IsMatch([]byte(input)); got != want {
						t.Errorf("IsMatch(%q) = %v, want %v", input, got, want)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkIsMatch(b *testing.B) {
	line := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 20) + "error code 42")
	for _, pattern := range []string{"error", `code \d+`, "(warn|error)", `\d+$`} {
		engine, err := Compile(pattern)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(pattern, func(b *testing.B) {
			b.SetBytes(int64(len(line)))
			for i := 0; i < b.N; i++ {
				engine.IsMatch(line)
			}
		})
	}
}
