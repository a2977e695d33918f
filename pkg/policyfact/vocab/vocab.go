package vocab

import (
	"sort"
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/ingest"
)

// Sources records where the vocabulary was derived from.
type Sources struct {
	Paragraph string `json:"paragraph"`
	Questions string `json:"questions,omitempty"`
}

// Document is the vocabulary artifact: categorized constants plus the active
// predicate signatures. It is a pure projection of the extraction phase and
// is never mutated after Compile returns.
type Document struct {
	Sources         Sources             `json:"source_files"`
	ConstantsByType map[string][]string `json:"constants_by_type"`
	Predicates      []Signature         `json:"predicates"`

	categoryOrder []string
}

// Compiler wires term extraction, categorization and predicate selection
// into vocabulary documents.
type Compiler struct {
	extractor *ingest.TermExtractor
	taxonomy  *ingest.Taxonomy
	catalog   []CatalogEntry
}

// NewCompiler builds a compiler from the given tables.
func NewCompiler(phrases []string, categories []ingest.Category, catalog []CatalogEntry) *Compiler {
	return &Compiler{
		extractor: ingest.NewTermExtractor(phrases),
		taxonomy:  ingest.NewTaxonomy(categories),
		catalog:   catalog,
	}
}

// NewDefaultCompiler builds a compiler over the default tables.
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultPhrases(), DefaultCategories(), DefaultCatalog())
}

// Compile derives a vocabulary document from the paragraph text plus the
// optional questions text. Both feed term extraction and predicate selection,
// matching how a reader would use policy and questions together.
func (c *Compiler) Compile(paragraph, questions string) *Document {
	combined := paragraph
	if questions != "" {
		combined += "\n" + questions
	}

	terms := c.extractor.Extract(combined)
	categorized := c.taxonomy.Categorize(terms)
	predicates := SelectPredicates(combined, terms, c.catalog)

	constants := make(map[string][]string, len(categorized))
	for name, set := range categorized {
		constants[name] = sortTerms(set)
	}

	return &Document{
		ConstantsByType: constants,
		Predicates:      predicates,
		categoryOrder:   c.taxonomy.Names(),
	}
}

// Categories returns the category names in fixed rendering order.
func (d *Document) Categories() []string {
	if d.categoryOrder != nil {
		return d.categoryOrder
	}
	// Document reloaded from JSON: fall back to sorted names.
	names := make([]string, 0, len(d.ConstantsByType))
	for name := range d.ConstantsByType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortTerms orders a term set by word count, then lexicographically, giving
// every category list a fixed total ordering.
func sortTerms(set map[string]struct{}) []string {
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		wi, wj := len(strings.Fields(terms[i])), len(strings.Fields(terms[j]))
		if wi != wj {
			return wi < wj
		}
		return terms[i] < terms[j]
	})
	return terms
}
