package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RenderMarkdown renders the answer batch as a review document.
func RenderMarkdown(answers []Answer) string {
	var b strings.Builder
	b.WriteString("# Query Answers\n")
	for _, a := range answers {
		fmt.Fprintf(&b, "\n## %s %s\n\n", a.ID, a.Question)
		fmt.Fprintf(&b, "- Query: `%s`\n", a.Expression)
		if !a.Mapped {
			b.WriteString("- Not mapped; no evaluation.\n")
			continue
		}
		fmt.Fprintf(&b, "- Holds: %t\n", a.Holds)
		for _, row := range a.Bindings {
			parts := make([]string, 0, len(row))
			for _, v := range a.Variables {
				if val, ok := row[v]; ok {
					parts = append(parts, fmt.Sprintf("%s = %s", v, val))
				}
			}
			sort.Strings(parts)
			fmt.Fprintf(&b, "  - %s\n", strings.Join(parts, ", "))
		}
	}
	return b.String()
}

// RenderJSON renders the answer batch as the machine-readable artifact.
func RenderJSON(answers []Answer) ([]byte, error) {
	return json.MarshalIndent(answers, "", "  ")
}

// WriteAnswers writes answers.md and answers.json into the results
// directory, wholesale like every other artifact.
func WriteAnswers(resultsDir string, answers []Answer) error {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "answers.md"), []byte(RenderMarkdown(answers)), 0o644); err != nil {
		return err
	}
	data, err := RenderJSON(answers)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(resultsDir, "answers.json"), append(data, '\n'), 0o644)
}
