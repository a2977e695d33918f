package policyfact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/config"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/internalerr"
)

const samplePolicy = `We collect information to provide better services to all our users.
When you are signed in to your Google Account, we store information with your account.
We use cookies and server logs, including your IP address. You can delete data, and
auto-delete controls are available. Some data we retain for longer periods when required
for legitimate business or legal purposes.`

const sampleQuestions = `Q1 What information does Google collect?
Q2 Why does Google collect data?
Q3 What technologies does Google use, such as cookies?
`

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Inputs.Paragraph = filepath.Join(dir, "data", "paragraph.txt")
	cfg.Inputs.Questions = filepath.Join(dir, "data", "questions.txt")
	cfg.Artifacts.VocabDir = filepath.Join(dir, "out")
	cfg.Artifacts.KBDir = filepath.Join(dir, "kb")
	cfg.Artifacts.ResultsDir = filepath.Join(dir, "results")

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Inputs.Paragraph, []byte(samplePolicy), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Inputs.Questions, []byte(sampleQuestions), 0o644); err != nil {
		t.Fatal(err)
	}

	return New(cfg, nil)
}

func TestRunAllProducesArtifacts(t *testing.T) {
	p := testPipeline(t)

	if err := p.RunAll(); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{
		filepath.Join(p.Config().Artifacts.VocabDir, "vocabulary.json"),
		filepath.Join(p.Config().Artifacts.VocabDir, "vocabulary.md"),
		filepath.Join(p.Config().Artifacts.VocabDir, "vocab.pl"),
		p.Config().KBPath(),
		p.Config().SummaryPath(),
		filepath.Join(p.Config().Artifacts.ResultsDir, "queries.pl"),
		filepath.Join(p.Config().Artifacts.ResultsDir, "queries.json"),
		filepath.Join(p.Config().Artifacts.ResultsDir, "queries.md"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact %s: %v", path, err)
		}
	}
}

func TestRunAllIdempotent(t *testing.T) {
	p := testPipeline(t)

	if err := p.RunAll(); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(p.Config().KBPath())
	if err != nil {
		t.Fatal(err)
	}

	if err := p.RunAll(); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(p.Config().KBPath())
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("re-running on unchanged inputs should reproduce artifacts byte for byte")
	}
}

func TestMissingParagraphFailsBeforeWriting(t *testing.T) {
	p := testPipeline(t)
	if err := os.Remove(p.Config().Inputs.Paragraph); err != nil {
		t.Fatal(err)
	}

	err := p.BuildKB()
	if !errors.Is(err, internalerr.ErrMissingInput) {
		t.Fatalf("Expected ErrMissingInput, got %v", err)
	}
	if _, statErr := os.Stat(p.Config().KBPath()); !os.IsNotExist(statErr) {
		t.Error("no artifact should be written when the input is missing")
	}
}

func TestQueryAfterBuild(t *testing.T) {
	p := testPipeline(t)
	if err := p.BuildKB(); err != nil {
		t.Fatal(err)
	}

	res := p.Query("collects(google, X)")
	if res.Count == 0 {
		t.Errorf("Expected collects results, got %+v", res)
	}
	if !strings.Contains(res.Note, "collects") {
		t.Errorf("Note = %q", res.Note)
	}
}

func TestEvalAnswersQuestions(t *testing.T) {
	p := testPipeline(t)
	if err := p.RunAll(); err != nil {
		t.Fatal(err)
	}

	answers, err := p.Eval()
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 3 {
		t.Fatalf("Expected 3 answers, got %d", len(answers))
	}
	if !answers[0].Holds {
		t.Errorf("collects query should hold: %+v", answers[0])
	}

	if _, err := os.Stat(filepath.Join(p.Config().Artifacts.ResultsDir, "answers.md")); err != nil {
		t.Errorf("answers artifact missing: %v", err)
	}
}

func TestEvalWithoutKB(t *testing.T) {
	p := testPipeline(t)

	_, err := p.Eval()
	if !errors.Is(err, internalerr.ErrMissingInput) {
		t.Fatalf("Expected ErrMissingInput, got %v", err)
	}
}
