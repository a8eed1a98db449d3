package meta

import "testing"

func TestStripAnchors(t *testing.T) {
	tests := []struct {
		pattern string
		body    string
		start   bool
		end     bool
	}{
		{"abc", "abc", false, false},
		{"^abc", "abc", true, false},
		{"abc$", "abc", false, true},
		{"^abc$", "abc", true, true},
		{"^", "", true, false},
		{"$", "", false, true},
		{"^$", "", true, true},
		{`cost\$`, `cost\$`, false, false},
		{`a\\$`, `a\\`, false, true},
		{`a\\\$`, `a\\\$`, false, false},
		{`\^a`, `\^a`, false, false},
		{"a^b", "a^b", false, false},
		{"a$b", "a$b", false, false},
		{"^^a", "^a", true, false},
		{"a$$", "a$", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			body, start, end := StripAnchors(tt.pattern)
			if body != tt.body || start != tt.start || end != tt.end {
				t.Errorf("StripAnchors(%q) = %q, %v, %v; want %q, %v, %v",
					tt.pattern, body, start, end, tt.body, tt.start, tt.end)
			}
		})
	}
}
