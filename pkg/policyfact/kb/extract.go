package kb

import (
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// Result holds the ordered, deduplicated fact list and the parallel
// human-readable statement lines. Statements keep duplicates: they are
// exposition, not facts.
type Result struct {
	Facts      []Fact
	Statements []string
}

// emitter is the deduplicating output buffer shared by all rules in a run.
// A fact is appended only if its canonical rendering has not been seen;
// first occurrence fixes its position.
type emitter struct {
	seen       map[string]struct{}
	facts      []Fact
	statements []string
}

func newEmitter() *emitter {
	return &emitter{seen: make(map[string]struct{})}
}

func (em *emitter) fact(f Fact) {
	key := f.Render()
	if _, dup := em.seen[key]; dup {
		return
	}
	em.seen[key] = struct{}{}
	em.facts = append(em.facts, f)
}

func (em *emitter) statement(s string) {
	em.statements = append(em.statements, s)
}

// Extractor applies the trigger battery to normalized document text.
type Extractor struct {
	rules []triggerRule
}

// NewExtractor returns an extractor with the default rule battery.
func NewExtractor() *Extractor {
	return &Extractor{rules: defaultRules()}
}

// Extract normalizes text and runs every rule in declaration order.
// Individual rules never fail; a rule that does not match simply emits
// nothing, so empty text yields only the unconditional baseline facts.
func (x *Extractor) Extract(text string) Result {
	t := textnorm.Normalize(text)

	em := newEmitter()
	for _, rule := range x.rules {
		rule.fire(t, em)
	}
	return Result{Facts: em.facts, Statements: em.statements}
}
