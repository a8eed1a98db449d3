package meta

import "strings"

// StripAnchors removes a leading '^' and a trailing unescaped '$' from
// pattern and reports which were present.
//
// A '$' preceded by an odd number of backslashes is an escaped literal and
// stays in the body:
//
//	StripAnchors(`^a$`)   // "a", true, true
//	StripAnchors(`cost\$`) // `cost\$`, false, false
//	StripAnchors(`a\\$`)  // `a\\`, false, true
func StripAnchors(pattern string) (body string, start, end bool) {
	body = pattern
	if strings.HasPrefix(body, "^") {
		body = body[1:]
		start = true
	}
	if strings.HasSuffix(body, "$") && !escaped(body, len(body)-1) {
		body = body[:len(body)-1]
		end = true
	}
	return body, start, end
}

// escaped reports whether the byte at i is preceded by an odd run of
// backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
