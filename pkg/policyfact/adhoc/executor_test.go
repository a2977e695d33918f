package adhoc

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeFacts(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteBarePredicate(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "% kb.pl (auto-generated)\ncollects(google, information).\nactor(user).\n")
	ex := NewExecutor(kb, filepath.Join(dir, "missing.pl"))

	res := ex.Execute("collects")

	if res.Predicate != "collects" || res.Count != 1 {
		t.Fatalf("got %+v", res)
	}
	if res.Results[0] != "collects(google, information)." {
		t.Errorf("result = %q", res.Results[0])
	}
	if res.Note != "Matched predicate: collects/N" {
		t.Errorf("note = %q", res.Note)
	}
}

func TestExecutePrefixIsExact(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "collects(google, information).\ncollects_tech_data(google, ip_address).\n")
	ex := NewExecutor(kb, "")

	res := ex.Execute("collects")

	// "collects_tech_data(" must not match the "collects(" prefix
	if res.Count != 1 {
		t.Fatalf("expected exact prefix match only, got %v", res.Results)
	}
}

func TestExecuteFuzzyFallback(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "collects_tech_data(google, technical_data).\nactor(user).\n")
	ex := NewExecutor(kb, "")

	// No exact "collects(" prefix; "X" is discarded as don't-care and the
	// remaining arg "google" matches by substring.
	res := ex.Execute("collects(google, X)")

	if res.Count != 1 || res.Results[0] != "collects_tech_data(google, technical_data)." {
		t.Fatalf("fuzzy fallback failed: %+v", res)
	}
}

func TestExecuteFuzzyAllDontCareMatchesEverything(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "collects(google, information).\nactor(user).\n")
	ex := NewExecutor(kb, "")

	// Every argument is the don't-care token, so after discarding them the
	// fuzzy match has nothing left to require and returns the whole base.
	res := ex.Execute("nonexistent(x, x)")

	if res.Count != 2 {
		t.Fatalf("expected all primary facts, got %+v", res)
	}
}

func TestExecuteNoParenNoFuzzy(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "collects_tech_data(google, technical_data).\n")
	ex := NewExecutor(kb, "")

	// Bare predicate with no "(": fuzzy fallback must not kick in.
	res := ex.Execute("google")

	if res.Count != 0 {
		t.Fatalf("expected no results, got %v", res.Results)
	}
	if res.Note != "No exact match found" {
		t.Errorf("note = %q", res.Note)
	}
}

func TestExecuteAuxPredicatesCapped(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "actor(user).\n")
	var aux string
	for i := 0; i < 30; i++ {
		aux += fmt.Sprintf("synonym(term%d, other%d).\n", i, i)
	}
	auxPath := writeFacts(t, dir, "kb_aug.pl", aux)
	ex := NewExecutor(kb, auxPath)

	res := ex.Execute("synonym")

	if res.Count != auxDisplayLimit {
		t.Errorf("aux results should cap at %d, got %d", auxDisplayLimit, res.Count)
	}
}

func TestExecuteAuxNotConsultedForOtherPredicates(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "actor(user).\n")
	auxPath := writeFacts(t, dir, "kb_aug.pl", "collects(google, something).\n")
	ex := NewExecutor(kb, auxPath)

	res := ex.Execute("collects")

	if res.Count != 0 {
		t.Errorf("aux list must only serve synonym/is_a, got %v", res.Results)
	}
}

func TestExecuteMissingKBIsEmptyNotError(t *testing.T) {
	ex := NewExecutor("/nonexistent/kb.pl", "/nonexistent/aux.pl")

	res := ex.Execute("collects(google, X)")

	if res.Count != 0 || res.Results != nil {
		t.Fatalf("missing files must read as empty, got %+v", res)
	}
}

func TestExecuteCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	kb := writeFacts(t, dir, "kb.pl", "collects(google, information).\n")
	ex := NewExecutor(kb, "")

	res := ex.Execute("  Collects  ")

	if res.Count != 1 || res.Predicate != "collects" {
		t.Fatalf("got %+v", res)
	}
}
