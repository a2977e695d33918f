package queries

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderProgram emits a runnable SWI-Prolog script that loads the fact-file
// and executes every mapped query: enumerate all bindings first, and only
// when enumeration is empty degrade to a yes/no truth check. Unmapped
// queries get a placeholder diagnostic line.
func RenderProgram(queries []Query, kbPath string) string {
	lines := []string{
		"% queries.pl (auto-generated)",
		":- initialization(main).",
		"",
		"main :-",
		fmt.Sprintf("  consult('%s'),", kbPath),
		"  format('Loaded KB.~n', []),",
		"  run_all,",
		"  halt.",
		"",
		"run_all :-",
	}

	for _, q := range queries {
		if !q.Mapped() {
			lines = append(lines, fmt.Sprintf("  format('~n[%s] TODO mapping.~n', []),", q.ID))
			continue
		}
		expr := strings.TrimSuffix(strings.TrimSpace(q.Expression), ".")
		lines = append(lines,
			fmt.Sprintf("  format('~n[%s] %s~n', []),", q.ID, q.Question),
			fmt.Sprintf("  ( findall(X, (%s), Xs), Xs \\= [] -> format('  Answers: ~w~n', [Xs])", expr),
			fmt.Sprintf("  ; ( call((%s)) -> format('  true.~n', []) ; format('  false / no answers.~n', []) ) ),", expr),
		)
	}

	lines = append(lines, "  true.")
	return strings.Join(lines, "\n") + "\n"
}

// RenderMarkdown returns the mapping as a display table.
func RenderMarkdown(queries []Query) string {
	lines := []string{
		"Question → Prolog Query Mapping",
		"",
		"| QID | Question | Prolog Query | Answer shape |",
		"|---|---|---|---|",
	}
	for _, q := range queries {
		lines = append(lines, fmt.Sprintf("| %s | %s | `%s` | %s |", q.ID, q.Question, q.Expression, q.AnswerShape))
	}
	return strings.Join(lines, "\n") + "\n"
}

// RenderJSON returns the machine-readable query list.
func RenderJSON(queries []Query) ([]byte, error) {
	return json.MarshalIndent(queries, "", "  ")
}

// WriteAll writes queries.pl, queries.json and queries.md under outDir.
// kbPath is the consult path embedded in the generated program, relative to
// where the script will run.
func WriteAll(outDir string, queries []Query, kbPath string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	data, err := RenderJSON(queries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "queries.json"), data, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "queries.md"), []byte(RenderMarkdown(queries)), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "queries.pl"), []byte(RenderProgram(queries, kbPath)), 0o644)
}
