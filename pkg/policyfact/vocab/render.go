package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// RenderJSON returns the structured rendering of the document.
func (d *Document) RenderJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// MarshalJSON emits constants_by_type in category-table order rather than
// the alphabetical order a Go map would marshal with, keeping the JSON
// artifact aligned with the markdown and fact renderings.
func (d *Document) MarshalJSON() ([]byte, error) {
	var constants bytes.Buffer
	constants.WriteByte('{')
	for i, cat := range d.Categories() {
		if i > 0 {
			constants.WriteByte(',')
		}
		key, err := json.Marshal(cat)
		if err != nil {
			return nil, err
		}
		items := d.ConstantsByType[cat]
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		constants.Write(key)
		constants.WriteByte(':')
		constants.Write(val)
	}
	constants.WriteByte('}')

	return json.Marshal(struct {
		Sources         Sources         `json:"source_files"`
		ConstantsByType json.RawMessage `json:"constants_by_type"`
		Predicates      []Signature     `json:"predicates"`
	}{
		Sources:         d.Sources,
		ConstantsByType: constants.Bytes(),
		Predicates:      d.Predicates,
	})
}

// RenderMarkdown returns the human-readable rendering.
func (d *Document) RenderMarkdown() string {
	var b strings.Builder
	b.WriteString("FOL Vocabulary & Predicate Schema\n\n")

	b.WriteString("## Constants / Terms by Category\n\n")
	for _, cat := range d.Categories() {
		fmt.Fprintf(&b, "### %s\n\n", cat)
		items := d.ConstantsByType[cat]
		if len(items) == 0 {
			b.WriteString("_None_\n\n")
			continue
		}
		for _, item := range items {
			fmt.Fprintf(&b, "- `%s`\n", item)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Predicate Signatures\n\n")
	for _, p := range d.Predicates {
		fmt.Fprintf(&b, "- `%s/%d`: %s\n", p.Name, p.Arity, p.Template)
	}
	return b.String()
}

// RenderProlog returns the fact-language declarations: one entity_type/2
// fact per slugged constant and one predicate_signature/2 fact per active
// predicate.
func (d *Document) RenderProlog() string {
	var b strings.Builder
	b.WriteString("% Auto-generated vocabulary\n")
	b.WriteString("% Entities (constants) by type\n")
	for _, cat := range d.Categories() {
		for _, item := range d.ConstantsByType[cat] {
			fmt.Fprintf(&b, "entity_type(%s, %s).\n", textnorm.Slug(item), textnorm.Slug(cat))
		}
	}

	b.WriteString("\n% Predicate signatures\n")
	for _, p := range d.Predicates {
		fmt.Fprintf(&b, "predicate_signature(%s, %d).\n", p.Name, p.Arity)
	}
	return b.String()
}

// Write emits all three artifact renderings under outDir:
// vocabulary.json, vocabulary.md and vocab.pl.
func (d *Document) Write(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	data, err := d.RenderJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "vocabulary.json"), data, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "vocabulary.md"), []byte(d.RenderMarkdown()), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "vocab.pl"), []byte(d.RenderProlog()), 0o644)
}
