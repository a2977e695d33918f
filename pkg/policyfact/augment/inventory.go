package augment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/internalerr"
)

// SenseEntry describes one sense in the offline inventory: its identifier,
// the lemma names sharing the sense, and the identifiers of parent senses.
type SenseEntry struct {
	ID        string   `yaml:"id"`
	Lemmas    []string `yaml:"lemmas"`
	Hypernyms []string `yaml:"hypernyms"`
}

// Inventory is a file-backed SenseLinker: a static sense catalog standing
// in for WordNet so the augmentation pass runs without external corpora.
type Inventory struct {
	senses map[string]SenseEntry
}

type inventoryFile struct {
	Senses []SenseEntry `yaml:"senses"`
}

// LoadInventory reads a YAML sense inventory.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrMissingInput, path)
	}

	var f inventoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	inv := &Inventory{senses: make(map[string]SenseEntry, len(f.Senses))}
	for _, s := range f.Senses {
		inv.senses[s.ID] = s
	}
	return inv, nil
}

// NewInventory builds an inventory from entries directly (used in tests and
// by callers that assemble inventories programmatically).
func NewInventory(entries []SenseEntry) *Inventory {
	senses := make(map[string]SenseEntry, len(entries))
	for _, s := range entries {
		senses[s.ID] = s
	}
	return &Inventory{senses: senses}
}

// Synonyms returns the lemma names of a sense.
func (inv *Inventory) Synonyms(sense string) ([]string, error) {
	s, ok := inv.senses[sense]
	if !ok {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrUnknownSense, sense)
	}
	return s.Lemmas, nil
}

// Hypernyms resolves the parent concept names of a sense: the first lemma
// of each referenced parent sense. A parent reference missing from the
// inventory is skipped, not an error.
func (inv *Inventory) Hypernyms(sense string) ([]string, error) {
	s, ok := inv.senses[sense]
	if !ok {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrUnknownSense, sense)
	}

	var parents []string
	for _, id := range s.Hypernyms {
		parent, ok := inv.senses[id]
		if !ok || len(parent.Lemmas) == 0 {
			continue
		}
		parents = append(parents, parent.Lemmas[0])
	}
	return parents, nil
}
