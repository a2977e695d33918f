package ingest

import (
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// OtherCategory is the catch-all bucket for terms no category claims.
const OtherCategory = "other"

// Category pairs a category name with its ordered keyword list.
// Declaration order is a contract: categories are tried in table order and
// keywords in list order, and the first match wins.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy assigns each term to exactly one semantic category using an
// ordered category table. A term matches a keyword if they are equal, or if
// the keyword is multi-word and occurs as a substring of the term.
type Taxonomy struct {
	categories []Category
}

// NewTaxonomy creates a taxonomy from an ordered category table.
// Keywords are normalized once at construction.
func NewTaxonomy(categories []Category) *Taxonomy {
	normalized := make([]Category, len(categories))
	for i, cat := range categories {
		keywords := make([]string, len(cat.Keywords))
		for j, kw := range cat.Keywords {
			keywords[j] = textnorm.Normalize(kw)
		}
		normalized[i] = Category{Name: cat.Name, Keywords: keywords}
	}
	return &Taxonomy{categories: normalized}
}

// Names returns the category names in table order, with the catch-all
// category appended last.
func (t *Taxonomy) Names() []string {
	names := make([]string, 0, len(t.categories)+1)
	for _, cat := range t.categories {
		names = append(names, cat.Name)
	}
	return append(names, OtherCategory)
}

// Categorize places every term into exactly one category. The union of the
// returned sets equals the input term set; unmatched terms land in "other".
func (t *Taxonomy) Categorize(terms map[string]struct{}) map[string]map[string]struct{} {
	categorized := make(map[string]map[string]struct{}, len(t.categories)+1)
	for _, name := range t.Names() {
		categorized[name] = make(map[string]struct{})
	}

	for term := range terms {
		categorized[t.assign(term)][term] = struct{}{}
	}
	return categorized
}

// assign returns the first category claiming term, or OtherCategory.
func (t *Taxonomy) assign(term string) string {
	for _, cat := range t.categories {
		for _, kw := range cat.Keywords {
			if term == kw || (strings.Contains(kw, " ") && strings.Contains(term, kw)) {
				return cat.Name
			}
		}
	}
	return OtherCategory
}
