package queries

import (
	"strings"
	"testing"
)

func TestMapQuestionKnownPatterns(t *testing.T) {
	cases := []struct {
		question string
		expr     string
		shape    string
	}{
		{"What information does Google collect?",
			"collects(google, X).", "X (all collected data types)"},
		{"Why does Google use my data?",
			"uses_for(google, Purpose).", "Purpose (all purposes)"},
		{"Does collection depend on my privacy controls?",
			"varies_by(data_collection, privacy_controls).", "true/false"},
		{"What happens when I'm not signed in, with identifiers?",
			"stores_under_identifier(google, unique_identifier, not_signed_in, Purpose).", "Purpose"},
		{"Which technologies like cookies are used?",
			"uses_technology(google, Tech).", "Tech"},
		{"How long is data retained and can I delete it?",
			"retains(google, data, Policy), allows_setting(google, delete), (allows_setting(google, auto_delete) ; true).",
			"Policy + delete/auto-delete availability"},
	}
	for _, c := range cases {
		expr, shape := MapQuestion(c.question)
		if expr != c.expr || shape != c.shape {
			t.Errorf("MapQuestion(%q) = (%q, %q), want (%q, %q)", c.question, expr, shape, c.expr, c.shape)
		}
	}
}

func TestMapQuestionFirstRuleWins(t *testing.T) {
	// Satisfies both rule 1 ("what information" + "collect") and rule 2
	// ("why" + "collect"); rule 1 is earlier and must win.
	expr, _ := MapQuestion("What information do you collect and why do you collect it?")
	if expr != "collects(google, X)." {
		t.Errorf("expected first matching rule's expression, got %q", expr)
	}
}

func TestMapQuestionUnmappedSentinel(t *testing.T) {
	expr, shape := MapQuestion("Is the moon made of cheese?")
	if expr != UnmappedExpression || shape != UnmappedShape {
		t.Errorf("unmapped question should get the sentinel pair, got (%q, %q)", expr, shape)
	}
}

func TestMapQuestionDeterministic(t *testing.T) {
	q := "Why does Google collect data?"
	e1, s1 := MapQuestion(q)
	e2, s2 := MapQuestion(q)
	if e1 != e2 || s1 != s2 {
		t.Error("remapping the same question must yield the same pair")
	}
}

func TestParseQuestionsIDs(t *testing.T) {
	content := "Q1 What information does Google collect?\n\nsome unlabeled question\nq7 Why?\n"
	got := ParseQuestions(content)

	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	if got[0].ID != "Q1" || got[0].Question != "What information does Google collect?" {
		t.Errorf("first question parsed wrong: %+v", got[0])
	}
	if got[1].ID != "Q2" {
		t.Errorf("unlabeled line should be numbered by position, got %s", got[1].ID)
	}
	if got[2].ID != "Q7" {
		t.Errorf("lowercase qid should be uppercased, got %s", got[2].ID)
	}
}

func TestMapAllPreservesOrder(t *testing.T) {
	qs := ParseQuestions("Q1 What information do you collect?\nQ2 nonsense question\n")
	mapped := MapAll(qs)

	if mapped[0].ID != "Q1" || mapped[1].ID != "Q2" {
		t.Fatal("order not preserved")
	}
	if !mapped[0].Mapped() {
		t.Error("Q1 should map")
	}
	if mapped[1].Mapped() {
		t.Error("Q2 should carry the sentinel")
	}
}

func TestRenderProgramFallbackShape(t *testing.T) {
	mapped := MapAll(ParseQuestions("Q1 What information do you collect?\nQ2 gibberish\n"))
	prog := RenderProgram(mapped, "../kb/kb.pl")

	if !strings.Contains(prog, "consult('../kb/kb.pl')") {
		t.Error("program must load the fact-file")
	}
	if !strings.Contains(prog, "findall(X, (collects(google, X)), Xs)") {
		t.Error("mapped query should enumerate bindings first")
	}
	if !strings.Contains(prog, "call((collects(google, X)))") {
		t.Error("mapped query should fall back to a yes/no call")
	}
	if !strings.Contains(prog, "[Q2] TODO mapping.") {
		t.Error("unmapped query should emit a placeholder diagnostic")
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	mapped := MapAll(ParseQuestions("Q1 What information do you collect?\n"))
	md := RenderMarkdown(mapped)

	if !strings.Contains(md, "| Q1 | What information do you collect? | `collects(google, X).` | X (all collected data types) |") {
		t.Errorf("table row missing:\n%s", md)
	}
}
