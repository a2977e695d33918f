package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize canonicalizes free text for all downstream matching:
// NFKD unicode normalization, lowercase, dash/ellipsis unification,
// unicode spaces mapped to plain spaces, whitespace runs collapsed.
// Total function: any input yields a valid result.
func Normalize(s string) string {
	s = norm.NFKD.String(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "–", "-") // en dash
	s = strings.ReplaceAll(s, "—", "-") // em dash
	s = strings.ReplaceAll(s, "…", "...")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Slug derives a fact-language constant from free text.
// Non-alphanumeric runs collapse to a single underscore, a leading digit
// is escaped with "x_", and the empty result maps to "x" so every source
// phrase yields a usable constant. Distinct phrases that slug identically
// are the same constant on purpose.
func Slug(s string) string {
	s = strings.ToLower(s)
	s = strings.Trim(nonSlugRun.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "x"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "x_" + s
	}
	return s
}
