// Package config loads the pipeline configuration: input paths, artifact
// directories, and optional overrides for the phrase list and category table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/internalerr"
)

// Pipeline is the top-level configuration file.
type Pipeline struct {
	Inputs    Inputs    `yaml:"inputs"`
	Artifacts Artifacts `yaml:"artifacts"`
	Overrides Overrides `yaml:"overrides"`
}

// Inputs names the source files the pipeline reads.
type Inputs struct {
	Paragraph   string `yaml:"paragraph"`
	Questions   string `yaml:"questions"`
	Predictions string `yaml:"predictions"`
	Inventory   string `yaml:"inventory"`
}

// Artifacts names the directories the pipeline writes into.
type Artifacts struct {
	VocabDir   string `yaml:"vocab_dir"`
	KBDir      string `yaml:"kb_dir"`
	ResultsDir string `yaml:"results_dir"`
}

// Overrides replaces built-in tables when present. Order is preserved
// from the file; matching is first hit wins, so order matters.
type Overrides struct {
	Phrases    []string   `yaml:"phrases"`
	Categories []Category `yaml:"categories"`
}

// Category is one entry of the ordered category table.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Default returns the configuration used when no file is given.
func Default() *Pipeline {
	return &Pipeline{
		Inputs: Inputs{
			Paragraph:   "data/paragraph.txt",
			Questions:   "data/question.txt",
			Predictions: "out/wsd_predictions.json",
			Inventory:   "data/senses.yaml",
		},
		Artifacts: Artifacts{
			VocabDir:   "out",
			KBDir:      "kb",
			ResultsDir: "results",
		},
	}
}

// Load reads a YAML pipeline configuration. Fields left empty in the file
// fall back to the defaults.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrMissingInput, path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (p *Pipeline) fillDefaults() {
	def := Default()
	if p.Inputs.Paragraph == "" {
		p.Inputs.Paragraph = def.Inputs.Paragraph
	}
	if p.Inputs.Questions == "" {
		p.Inputs.Questions = def.Inputs.Questions
	}
	if p.Inputs.Predictions == "" {
		p.Inputs.Predictions = def.Inputs.Predictions
	}
	if p.Inputs.Inventory == "" {
		p.Inputs.Inventory = def.Inputs.Inventory
	}
	if p.Artifacts.VocabDir == "" {
		p.Artifacts.VocabDir = def.Artifacts.VocabDir
	}
	if p.Artifacts.KBDir == "" {
		p.Artifacts.KBDir = def.Artifacts.KBDir
	}
	if p.Artifacts.ResultsDir == "" {
		p.Artifacts.ResultsDir = def.Artifacts.ResultsDir
	}
}

// KBPath is the primary fact-file artifact path.
func (p *Pipeline) KBPath() string { return filepath.Join(p.Artifacts.KBDir, "kb.pl") }

// AuxPath is the auxiliary (augmentation) fact-file artifact path.
func (p *Pipeline) AuxPath() string { return filepath.Join(p.Artifacts.KBDir, "kb_aug.pl") }

// SummaryPath is the human-readable statement summary path.
func (p *Pipeline) SummaryPath() string { return filepath.Join(p.Artifacts.KBDir, "kb_fol.md") }
