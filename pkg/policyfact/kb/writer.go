package kb

import (
	"os"
	"path/filepath"
	"strings"
)

// derivedRules is the fixed block appended after the raw facts. Rules range
// over the same predicates the extractor emits.
var derivedRules = []string{
	"",
	"% --- derived relations (optional) ---",
	"technology(T) :- uses_technology(google, T).",
}

// RenderKB returns the fact-file content: a comment header, one fact per
// line in canonical form, then the derived-rule block.
func RenderKB(facts []Fact) string {
	lines := make([]string, 0, len(facts)+len(derivedRules)+1)
	lines = append(lines, "% kb.pl (auto-generated)")
	for _, f := range facts {
		lines = append(lines, f.Render())
	}
	lines = append(lines, derivedRules...)
	return strings.Join(lines, "\n") + "\n"
}

// RenderSummary returns the human-readable statement document.
func RenderSummary(statements []string) string {
	lines := []string{
		"Manual Translation Summary (FOL-ish)",
		"",
		"## Statements derived from the paragraph",
		"",
	}
	lines = append(lines, statements...)
	return strings.Join(lines, "\n") + "\n"
}

// WriteKB writes the fact-file artifact, replacing prior content wholesale.
func WriteKB(path string, facts []Fact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenderKB(facts)), 0o644)
}

// WriteSummary writes the statement summary artifact.
func WriteSummary(path string, statements []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenderSummary(statements)), 0o644)
}
