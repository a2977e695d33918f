// Package policyfact turns a privacy-policy paragraph into a small
// first-order fact base and answers questions against it. The facade wires
// the pipeline stages together; each stage reads its inputs fresh and
// rewrites its artifacts wholesale, so any stage can be re-run alone.
package policyfact

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/adhoc"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/augment"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/config"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/engine"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/internalerr"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/kb"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/queries"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/runid"
)

// Pipeline is the main facade over the compilation stages.
type Pipeline struct {
	cfg  *config.Pipeline
	comp *config.Components
	log  *zap.Logger
	ids  *runid.Generator
}

// New creates a pipeline over the given configuration. A nil logger
// disables logging.
func New(cfg *config.Pipeline, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:  cfg,
		comp: cfg.Build(),
		log:  logger,
		ids:  runid.New(),
	}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *config.Pipeline {
	return p.cfg
}

// BuildVocab compiles the vocabulary artifacts from the paragraph and the
// optional questions file.
func (p *Pipeline) BuildVocab() error {
	paragraph, err := p.readParagraph()
	if err != nil {
		return err
	}
	questions := p.readOptionalQuestions()

	doc := p.comp.Compiler.Compile(paragraph, questions)
	doc.Sources.Paragraph = p.cfg.Inputs.Paragraph
	if questions != "" {
		doc.Sources.Questions = p.cfg.Inputs.Questions
	}

	if err := doc.Write(p.cfg.Artifacts.VocabDir); err != nil {
		return err
	}
	p.log.Info("vocabulary built",
		zap.String("run", p.ids.Next()),
		zap.Int("predicates", len(doc.Predicates)),
		zap.String("dir", p.cfg.Artifacts.VocabDir))
	return nil
}

// BuildKB extracts facts from the paragraph and writes the fact base and
// its statement summary.
func (p *Pipeline) BuildKB() error {
	paragraph, err := p.readParagraph()
	if err != nil {
		return err
	}

	result := kb.NewExtractor().Extract(paragraph)
	if err := kb.WriteKB(p.cfg.KBPath(), result.Facts); err != nil {
		return err
	}
	if err := kb.WriteSummary(p.cfg.SummaryPath(), result.Statements); err != nil {
		return err
	}
	p.log.Info("knowledge base built",
		zap.String("run", p.ids.Next()),
		zap.Int("facts", len(result.Facts)),
		zap.String("path", p.cfg.KBPath()))
	return nil
}

// GenQueries maps the question file and writes the query artifacts.
func (p *Pipeline) GenQueries() error {
	qs, err := p.loadQuestions()
	if err != nil {
		return err
	}

	if err := queries.WriteAll(p.cfg.Artifacts.ResultsDir, qs, p.cfg.KBPath()); err != nil {
		return err
	}
	mapped := 0
	for _, q := range qs {
		if q.Mapped() {
			mapped++
		}
	}
	p.log.Info("queries generated",
		zap.String("run", p.ids.Next()),
		zap.Int("questions", len(qs)),
		zap.Int("mapped", mapped),
		zap.String("dir", p.cfg.Artifacts.ResultsDir))
	return nil
}

// RunAll runs vocabulary, fact extraction and query generation in order.
func (p *Pipeline) RunAll() error {
	if err := p.BuildVocab(); err != nil {
		return err
	}
	if err := p.BuildKB(); err != nil {
		return err
	}
	return p.GenQueries()
}

// Augment merges the external sense predictions into the auxiliary fact
// file using the configured sense inventory.
func (p *Pipeline) Augment() error {
	inv, err := augment.LoadInventory(p.cfg.Inputs.Inventory)
	if err != nil {
		return err
	}
	preds, err := augment.LoadPredictions(p.cfg.Inputs.Predictions)
	if err != nil {
		return err
	}

	facts := augment.Facts(inv, preds)
	if err := augment.Write(p.cfg.AuxPath(), facts); err != nil {
		return err
	}
	p.log.Info("augmentation written",
		zap.String("run", p.ids.Next()),
		zap.Int("facts", len(facts)),
		zap.String("path", p.cfg.AuxPath()))
	return nil
}

// Query runs one ad hoc query against the current fact files.
func (p *Pipeline) Query(expr string) adhoc.Result {
	return adhoc.NewExecutor(p.cfg.KBPath(), p.cfg.AuxPath()).Execute(expr)
}

// Eval maps the question file and answers every query in process,
// writing the answer artifacts.
func (p *Pipeline) Eval() ([]engine.Answer, error) {
	qs, err := p.loadQuestions()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p.cfg.KBPath()); err != nil {
		return nil, fmt.Errorf("%w: %s (run build-kb first)", internalerr.ErrMissingInput, p.cfg.KBPath())
	}

	eng := engine.New()
	if err := eng.LoadFactFile(p.cfg.KBPath()); err != nil {
		return nil, err
	}
	if err := eng.LoadFactFile(p.cfg.AuxPath()); err != nil {
		return nil, err
	}

	answers, err := eng.Evaluate(qs)
	if err != nil {
		return nil, err
	}
	if err := engine.WriteAnswers(p.cfg.Artifacts.ResultsDir, answers); err != nil {
		return nil, err
	}
	p.log.Info("queries evaluated",
		zap.String("run", p.ids.Next()),
		zap.Int("answers", len(answers)))
	return answers, nil
}

func (p *Pipeline) readParagraph() (string, error) {
	data, err := os.ReadFile(p.cfg.Inputs.Paragraph)
	if err != nil {
		return "", fmt.Errorf("%w: %s (save the policy paragraph or run fetch first)",
			internalerr.ErrMissingInput, p.cfg.Inputs.Paragraph)
	}
	return string(data), nil
}

func (p *Pipeline) readOptionalQuestions() string {
	data, err := os.ReadFile(p.cfg.Inputs.Questions)
	if err != nil {
		return ""
	}
	return string(data)
}

func (p *Pipeline) loadQuestions() ([]queries.Query, error) {
	data, err := os.ReadFile(p.cfg.Inputs.Questions)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (write one question per line first)",
			internalerr.ErrMissingInput, p.cfg.Inputs.Questions)
	}
	return queries.MapAll(queries.ParseQuestions(string(data))), nil
}
