// Package escape implements the tea-expression escaping grammar used
// by both the query compiler and the option parser: '#', '(', ')',
// ',', '[', ']' and '\' are backslash-prefixed inside literal text
// arguments, e.g. #term[m,,ja](kan\(ji\)).
package escape

import "strings"

const specialChars = `#(),[]\`

// Encode backslash-escapes every tea-expression special character in s.
func Encode(s string) string {
	if !strings.ContainsAny(s, specialChars) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if strings.ContainsRune(specialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decode reverses Encode. A trailing lone backslash is kept literally,
// matching the permissive behavior of the original grammar.
func Decode(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
