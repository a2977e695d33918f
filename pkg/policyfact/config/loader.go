package config

import (
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/ingest"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/vocab"
)

// Components holds the configured pipeline components.
type Components struct {
	Compiler *vocab.Compiler
}

// Build constructs pipeline components from the configuration, applying
// table overrides where present.
func (p *Pipeline) Build() *Components {
	phrases := vocab.DefaultPhrases()
	if len(p.Overrides.Phrases) > 0 {
		phrases = p.Overrides.Phrases
	}

	categories := vocab.DefaultCategories()
	if len(p.Overrides.Categories) > 0 {
		categories = make([]ingest.Category, len(p.Overrides.Categories))
		for i, c := range p.Overrides.Categories {
			categories[i] = ingest.Category{Name: c.Name, Keywords: c.Keywords}
		}
	}

	return &Components{
		Compiler: vocab.NewCompiler(phrases, categories, vocab.DefaultCatalog()),
	}
}
