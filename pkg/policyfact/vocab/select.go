package vocab

import (
	"sort"
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// SelectPredicates returns the catalog entries active for a document, in
// catalog order. An entry is active when any of its trigger keywords occurs
// as a substring of the normalized text joined with the sorted term set.
// If nothing triggers, the fallback pair is returned instead.
func SelectPredicates(text string, terms map[string]struct{}, catalog []CatalogEntry) []Signature {
	sorted := make([]string, 0, len(terms))
	for term := range terms {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)
	joined := textnorm.Normalize(text) + " " + strings.Join(sorted, " ")

	var selected []Signature
	for _, entry := range catalog {
		for _, trigger := range entry.Triggers {
			if strings.Contains(joined, textnorm.Normalize(trigger)) {
				selected = append(selected, entry.Signature)
				break
			}
		}
	}

	if len(selected) == 0 {
		return FallbackSignatures()
	}
	return selected
}
