// Package adhoc executes free-form query strings against the generated
// fact-file artifacts. The executor is stateless per call: it re-reads the
// fact files on every invocation, so it is only as stale as the last
// compiler run and concurrent calls are trivially safe.
package adhoc

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// auxDisplayLimit caps results when the auxiliary augmented list is
// consulted, which can be large.
const auxDisplayLimit = 20

// dontCare is the conventional placeholder argument discarded during the
// fuzzy fallback. Matched by name, not by position.
const dontCare = "x"

// auxPredicates are the relations additionally looked up in the augmented
// fact list.
var auxPredicates = map[string]struct{}{
	"synonym": {},
	"is_a":    {},
}

// Result is the outcome of one query. An empty Results list is a valid,
// non-error outcome.
type Result struct {
	Query     string   `json:"query"`
	Predicate string   `json:"predicate"`
	Results   []string `json:"results"`
	Count     int      `json:"count"`
	Note      string   `json:"note"`
}

// Executor scans fact-file lines for predicate-prefix matches with a
// substring-based fuzzy fallback.
type Executor struct {
	kbPath  string
	auxPath string
}

// NewExecutor creates an executor over the given fact-file and auxiliary
// augmented fact-file paths. A missing file reads as an empty fact list.
func NewExecutor(kbPath, auxPath string) *Executor {
	return &Executor{kbPath: kbPath, auxPath: auxPath}
}

// Execute runs one free-form query string. Steps: isolate the predicate
// before the first "(", collect exact case-insensitive "predicate(" prefix
// matches from the primary list (and, for the synonym/hierarchy relations,
// the auxiliary list up to the display cap), and only when that yields
// nothing degrade to an AND-of-substrings match over the parsed arguments.
func (e *Executor) Execute(query string) Result {
	q := strings.ToLower(strings.TrimSpace(query))

	predicate := q
	if i := strings.Index(q, "("); i >= 0 {
		predicate = strings.TrimSpace(q[:i])
	}

	kbFacts := ReadFactLines(e.kbPath)

	var results []string
	for _, fact := range kbFacts {
		if strings.HasPrefix(strings.ToLower(fact), predicate+"(") {
			results = append(results, fact)
		}
	}

	if _, aux := auxPredicates[predicate]; aux {
		for _, fact := range ReadFactLines(e.auxPath) {
			if strings.HasPrefix(strings.ToLower(fact), predicate+"(") {
				results = append(results, fact)
				if len(results) >= auxDisplayLimit {
					break
				}
			}
		}
	}

	// Looser best-effort fallback: every remaining argument must occur
	// somewhere in the fact line. With no remaining arguments the AND is
	// vacuously true and every primary fact matches.
	if len(results) == 0 && strings.Contains(q, "(") {
		args := parseArgs(q)
		for _, fact := range kbFacts {
			if containsAll(strings.ToLower(fact), args) {
				results = append(results, fact)
			}
		}
	}

	note := "No exact match found"
	if len(results) > 0 {
		note = fmt.Sprintf("Matched predicate: %s/N", predicate)
	}

	return Result{
		Query:     query,
		Predicate: predicate,
		Results:   results,
		Count:     len(results),
		Note:      note,
	}
}

// parseArgs extracts the parenthesized argument list, dropping empties and
// the don't-care placeholder.
func parseArgs(q string) []string {
	raw := q[strings.Index(q, "(")+1:]
	raw = strings.TrimRight(raw, ").")
	var args []string
	for _, a := range strings.Split(raw, ",") {
		a = strings.TrimSpace(a)
		if a != "" && a != dontCare {
			args = append(args, a)
		}
	}
	return args
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// ReadFactLines loads a fact file as a list of fact lines, skipping blank
// lines and % comments. A missing or unreadable file reads as empty: the
// executor degrades, it does not fail.
func ReadFactLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
