// Package augment is the boundary to the external word-sense-disambiguation
// collaborator. The core never computes or validates senses; it consumes
// predicted (lemma, sense) pairs through a narrow interface and merges the
// resulting synonym/hierarchy facts into an auxiliary fact list by the same
// line-based contract as the primary knowledge base.
package augment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/internalerr"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// SenseLinker exposes the sense inventory the external models predict into.
// Implementations may wrap WordNet, a trained classifier, or a static file.
type SenseLinker interface {
	// Synonyms returns the lemma names of a sense.
	Synonyms(sense string) ([]string, error)

	// Hypernyms returns the parent concept names of a sense.
	Hypernyms(sense string) ([]string, error)
}

// Prediction is one disambiguated lemma from the collaborator's output.
// Sense prefers the trained-model prediction and falls back to the
// most-frequent-sense baseline.
type Prediction struct {
	Lemma string `json:"lemma"`
	Model string `json:"model"`
	MFS   string `json:"mfs"`
}

// Sense returns the effective sense identifier for the prediction.
func (p Prediction) Sense() string {
	if p.Model != "" {
		return p.Model
	}
	return p.MFS
}

type predictionFile struct {
	Predictions []Prediction `json:"predictions"`
}

// LoadPredictions reads the collaborator's prediction artifact.
func LoadPredictions(path string) ([]Prediction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (run the WSD prediction step first)", internalerr.ErrMissingInput, path)
	}
	var pf predictionFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse predictions %s: %w", path, err)
	}
	return pf.Predictions, nil
}

// Facts derives synonym/2 and is_a/2 fact lines from predictions.
// A prediction whose sense the linker does not recognize is skipped; a
// single malformed upstream reference never aborts the run. Facts are
// deduplicated by rendered form, first occurrence wins.
func Facts(linker SenseLinker, preds []Prediction) []string {
	var facts []string
	seen := make(map[string]struct{})
	emit := func(f string) {
		if _, dup := seen[f]; !dup {
			seen[f] = struct{}{}
			facts = append(facts, f)
		}
	}

	for _, p := range preds {
		sense := p.Sense()
		if sense == "" {
			continue
		}

		synonyms, err := linker.Synonyms(sense)
		if err != nil {
			continue
		}
		term := textnorm.Slug(p.Lemma)

		for _, l := range synonyms {
			emit(fmt.Sprintf("synonym(%s, %s).", term, textnorm.Slug(l)))
		}

		hypernyms, err := linker.Hypernyms(sense)
		if err != nil {
			continue
		}
		for _, h := range hypernyms {
			emit(fmt.Sprintf("is_a(%s, %s).", term, textnorm.Slug(h)))
		}
	}
	return facts
}

// Write writes the auxiliary fact-file artifact.
func Write(path string, facts []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	lines := []string{
		"% kb_aug.pl (auto-generated WordNet augmentation)",
		"% Provides: synonym/2, is_a/2",
	}
	lines = append(lines, facts...)
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}
