package helper

import (
	"regexp"
	"strings"
	"unicode"
)

var reDash = regexp.MustCompile(`-+`)

// GenerateSlug normalizes free text into a slug:
// lower-case, non-alnum → "-", collapse runs, trim ends.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	out = reDash.ReplaceAllString(out, "-")
	if out == "" {
		out = "org"
	}
	return out
}
