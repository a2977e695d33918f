package ingest

import (
	"regexp"
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// tokenPattern matches a run of letters with at most one internal apostrophe.
var tokenPattern = regexp.MustCompile(`[a-z]+(?:'[a-z]+)?`)

// TermExtractor finds candidate terms in normalized text: configured
// multi-word phrases matched as exact substrings, plus single alphabetic
// tokens. Phrases are checked before tokenization so multi-word concepts
// survive as whole terms; a phrase and its component tokens can both appear
// in the result ("google account" alongside "google").
type TermExtractor struct {
	phrases []string
}

// NewTermExtractor creates an extractor for the given phrase list.
// Phrases are normalized once at construction.
func NewTermExtractor(phrases []string) *TermExtractor {
	normalized := make([]string, 0, len(phrases))
	for _, ph := range phrases {
		if n := textnorm.Normalize(ph); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &TermExtractor{phrases: normalized}
}

// Extract returns the set of candidate terms in text.
// Single tokens of length <= 2 are discarded.
func (e *TermExtractor) Extract(text string) map[string]struct{} {
	t := textnorm.Normalize(text)

	terms := make(map[string]struct{})
	for _, ph := range e.phrases {
		if strings.Contains(t, ph) {
			terms[ph] = struct{}{}
		}
	}

	for _, tok := range tokenPattern.FindAllString(t, -1) {
		if len(tok) <= 2 {
			continue
		}
		terms[tok] = struct{}{}
	}

	return terms
}
