// Package engine answers mapped queries in process with Google Mangle.
// The fact file stays the portable artifact; this wrapper loads its lines,
// declares every predicate it sees, installs the derived relations, and
// evaluates each query with the same two-phase strategy the generated
// script uses: enumerate bindings first, fall back to a ground yes/no check.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"github.com/google/mangle/unionfind"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/adhoc"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/queries"
)

// Answer is the evaluated outcome of one mapped query.
type Answer struct {
	ID         string              `json:"qid"`
	Question   string              `json:"question"`
	Expression string              `json:"expression"`
	Variables  []string            `json:"variables,omitempty"`
	Bindings   []map[string]string `json:"bindings,omitempty"`
	Holds      bool                `json:"holds"`
	Mapped     bool                `json:"mapped"`
}

// Engine accumulates fact lines and evaluates query batches against them.
type Engine struct {
	facts []literal
}

// literal is one parsed atom: a predicate applied to argument tokens.
// A token starting with an upper-case letter or underscore is a variable,
// anything else a constant.
type literal struct {
	pred string
	args []string
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{}
}

// LoadFactFile reads a fact file and adds its fact lines. A missing file
// adds nothing; the auxiliary list is optional.
func (e *Engine) LoadFactFile(path string) error {
	return e.AddFactLines(adhoc.ReadFactLines(path))
}

// AddFactLines parses and adds rendered fact lines. Rule lines (those
// containing ":-") are skipped; derived relations are installed by the
// engine itself.
func (e *Engine) AddFactLines(lines []string) error {
	for _, line := range lines {
		if strings.Contains(line, ":-") {
			continue
		}
		lit, err := parseLiteral(strings.TrimSuffix(strings.TrimSpace(line), "."))
		if err != nil {
			return fmt.Errorf("fact line %q: %w", line, err)
		}
		for _, a := range lit.args {
			if isVariable(a) {
				return fmt.Errorf("fact line %q: variable argument %s", line, a)
			}
		}
		e.facts = append(e.facts, lit)
	}
	return nil
}

// Evaluate answers every query in the batch. Unmapped queries pass through
// with Mapped false; a malformed expression is an error, since mapped
// expressions come from the fixed rule table.
func (e *Engine) Evaluate(qs []queries.Query) ([]Answer, error) {
	prog, targets, answers, err := e.plan(qs)
	if err != nil {
		return nil, err
	}

	queryContext, store, err := compile(prog)
	if err != nil {
		return nil, err
	}

	for i := range answers {
		t := targets[i]
		if t == nil {
			continue
		}

		if len(t.vars) == 0 {
			holds, err := holdsGround(store, t.literals)
			if err != nil {
				return nil, err
			}
			answers[i].Holds = holds
			continue
		}

		bindings, err := enumerate(queryContext, t.goal, t.vars)
		if err != nil {
			return nil, err
		}
		answers[i].Variables = t.vars
		answers[i].Bindings = bindings
		answers[i].Holds = len(bindings) > 0
	}
	return answers, nil
}

// Facts returns the argument rows of a predicate after evaluation, derived
// relations included. Used for inspection and tests.
func (e *Engine) Facts(pred string, arity int) ([][]string, error) {
	prog, _, _, err := e.plan(nil)
	if err != nil {
		return nil, err
	}
	_, store, err := compile(prog)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	sym := ast.PredicateSym{Symbol: pred, Arity: arity}
	err = store.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
		row := make([]string, len(atom.Args))
		for i, arg := range atom.Args {
			row[i] = termValue(arg)
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// target is the compiled form of one mapped query: the literals to check
// and, when variables are present, the goal atom to enumerate.
type target struct {
	literals []literal
	vars     []string
	goal     literal
}

// plan translates the query batch into one Mangle program: declarations
// for every predicate in play, the facts, the derived relations, and a
// synthesized goal rule per query with variables.
func (e *Engine) plan(qs []queries.Query) (string, []*target, []Answer, error) {
	arities := make(map[string]int)
	declare := func(lit literal) error {
		if prev, ok := arities[lit.pred]; ok && prev != len(lit.args) {
			return fmt.Errorf("predicate %s used with arity %d and %d", lit.pred, prev, len(lit.args))
		}
		arities[lit.pred] = len(lit.args)
		return nil
	}

	for _, f := range e.facts {
		if err := declare(f); err != nil {
			return "", nil, nil, err
		}
	}
	for _, lit := range derivedRelations() {
		if err := declare(lit); err != nil {
			return "", nil, nil, err
		}
	}

	var rules []string
	targets := make([]*target, len(qs))
	answers := make([]Answer, len(qs))

	for i, q := range qs {
		answers[i] = Answer{ID: q.ID, Question: q.Question, Expression: q.Expression, Mapped: q.Mapped()}
		if !q.Mapped() {
			continue
		}

		lits, err := parseExpression(q.Expression)
		if err != nil {
			return "", nil, nil, fmt.Errorf("query %s: %w", q.ID, err)
		}
		for _, lit := range lits {
			if err := declare(lit); err != nil {
				return "", nil, nil, fmt.Errorf("query %s: %w", q.ID, err)
			}
		}

		t := &target{literals: lits, vars: variablesOf(lits)}
		if len(t.vars) > 0 {
			// Query evaluation walks rules, not stored facts, so even a
			// single literal over a base predicate gets a goal rule.
			head := literal{pred: fmt.Sprintf("answers_%s", strings.ToLower(q.ID)), args: t.vars}
			if err := declare(head); err != nil {
				return "", nil, nil, fmt.Errorf("query %s: %w", q.ID, err)
			}
			rules = append(rules, renderRule(head, lits))
			t.goal = head
		}
		targets[i] = t
	}

	var b strings.Builder
	for pred, arity := range arities {
		b.WriteString(renderDecl(pred, arity))
		b.WriteByte('\n')
	}
	for _, f := range e.facts {
		b.WriteString(renderLiteral(f))
		b.WriteString(".\n")
	}
	for _, r := range derivedRules() {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	for _, r := range rules {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return b.String(), targets, answers, nil
}

// compile parses, analyzes and evaluates the program to fixed point.
func compile(src string) (*mengine.QueryContext, factstore.FactStore, error) {
	unit, err := parse.Unit(strings.NewReader(src))
	if err != nil {
		return nil, nil, fmt.Errorf("parse program: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	if _, err := mengine.EvalProgramWithStats(programInfo, store); err != nil {
		return nil, nil, fmt.Errorf("evaluate program: %w", err)
	}

	predToDecl := make(map[ast.PredicateSym]*ast.Decl, len(programInfo.Decls))
	for sym, decl := range programInfo.Decls {
		predToDecl[sym] = decl
	}
	predToRules := make(map[ast.PredicateSym][]ast.Clause)
	for _, clause := range programInfo.Rules {
		predToRules[clause.Head.Predicate] = append(predToRules[clause.Head.Predicate], clause)
	}

	queryContext := &mengine.QueryContext{
		PredToRules: predToRules,
		PredToDecl:  predToDecl,
		Store:       store,
	}
	return queryContext, store, nil
}

// enumerate collects the variable bindings of a goal atom.
func enumerate(queryContext *mengine.QueryContext, goal literal, vars []string) ([]map[string]string, error) {
	sym := ast.PredicateSym{Symbol: goal.pred, Arity: len(goal.args)}
	decl, ok := queryContext.PredToDecl[sym]
	if !ok {
		return nil, fmt.Errorf("predicate %s/%d is not declared", goal.pred, len(goal.args))
	}
	if len(decl.Modes()) == 0 {
		return nil, fmt.Errorf("predicate %s has no modes declared", goal.pred)
	}
	mode := decl.Modes()[0]

	varIndex := make(map[int]string, len(vars))
	args := make([]ast.BaseTerm, len(goal.args))
	for i, a := range goal.args {
		if isVariable(a) {
			varIndex[i] = a
			args[i] = ast.Variable{Symbol: a}
			continue
		}
		name, err := ast.Name("/" + a)
		if err != nil {
			return nil, fmt.Errorf("constant %q: %w", a, err)
		}
		args[i] = name
	}

	var bindings []map[string]string
	err := queryContext.EvalQuery(ast.Atom{Predicate: sym, Args: args}, mode, unionfind.New(), func(fact ast.Atom) error {
		row := make(map[string]string, len(varIndex))
		for idx, name := range varIndex {
			if idx < len(fact.Args) {
				row[name] = termValue(fact.Args[idx])
			}
		}
		bindings = append(bindings, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Store iteration order is not stable; fix it so the answer artifacts
	// come out byte-identical across runs.
	sort.Slice(bindings, func(i, j int) bool {
		return bindingKey(bindings[i], vars) < bindingKey(bindings[j], vars)
	})
	return bindings, nil
}

func bindingKey(row map[string]string, vars []string) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = row[v]
	}
	return strings.Join(parts, "\x00")
}

// holdsGround checks a ground conjunction fact by fact against the
// evaluated store.
func holdsGround(store factstore.FactStore, lits []literal) (bool, error) {
	for _, lit := range lits {
		sym := ast.PredicateSym{Symbol: lit.pred, Arity: len(lit.args)}
		args := make([]ast.BaseTerm, len(lit.args))
		for i, a := range lit.args {
			name, err := ast.Name("/" + a)
			if err != nil {
				return false, fmt.Errorf("constant %q: %w", a, err)
			}
			args[i] = name
		}
		if !store.Contains(ast.Atom{Predicate: sym, Args: args}) {
			return false, nil
		}
	}
	return true, nil
}

// derivedRules are the relations computed from base facts, mirroring the
// derived block the fact-file writer appends.
func derivedRules() []string {
	return []string{"technology(T) :- uses_technology(/google, T)."}
}

// derivedRelations lists every predicate the derived rules mention, head
// and body alike, so the rules analyze even against a fact base that never
// populates them.
func derivedRelations() []literal {
	return []literal{
		{pred: "technology", args: []string{"T"}},
		{pred: "uses_technology", args: []string{"A", "T"}},
	}
}

// parseExpression splits a query expression into its literals. A trailing
// parenthesized disjunction with "true" is an optional group: it is
// satisfied vacuously and dropped.
func parseExpression(expr string) ([]literal, error) {
	expr = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(expr), "."))
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}

	var lits []literal
	for _, part := range splitTopLevel(expr) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "(") {
			if strings.Contains(part, ";") && strings.Contains(part, "true") {
				continue
			}
			return nil, fmt.Errorf("unsupported group %q", part)
		}
		lit, err := parseLiteral(part)
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
	}
	if len(lits) == 0 {
		return nil, fmt.Errorf("no literals in %q", expr)
	}
	return lits, nil
}

// splitTopLevel splits on commas outside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func parseLiteral(s string) (literal, error) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return literal{}, fmt.Errorf("malformed literal %q", s)
	}
	pred := strings.TrimSpace(s[:open])
	if pred == "" {
		return literal{}, fmt.Errorf("malformed literal %q", s)
	}

	inner := s[open+1 : len(s)-1]
	var args []string
	for _, a := range strings.Split(inner, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			return literal{}, fmt.Errorf("malformed literal %q", s)
		}
		args = append(args, a)
	}
	return literal{pred: pred, args: args}, nil
}

// variablesOf returns the distinct variables in first-occurrence order.
func variablesOf(lits []literal) []string {
	var vars []string
	seen := make(map[string]struct{})
	for _, lit := range lits {
		for _, a := range lit.args {
			if !isVariable(a) {
				continue
			}
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			vars = append(vars, a)
		}
	}
	return vars
}

func isVariable(token string) bool {
	if token == "" {
		return false
	}
	c := token[0]
	return (c >= 'A' && c <= 'Z') || c == '_'
}

func renderDecl(pred string, arity int) string {
	vars := make([]string, arity)
	modes := make([]string, arity)
	for i := range vars {
		vars[i] = fmt.Sprintf("X%d", i)
		modes[i] = `"-"`
	}
	return fmt.Sprintf("Decl %s(%s) descr [mode(%s)].", pred, strings.Join(vars, ", "), strings.Join(modes, ", "))
}

func renderLiteral(lit literal) string {
	args := make([]string, len(lit.args))
	for i, a := range lit.args {
		if isVariable(a) {
			args[i] = a
		} else {
			args[i] = "/" + a
		}
	}
	return fmt.Sprintf("%s(%s)", lit.pred, strings.Join(args, ", "))
}

func renderRule(head literal, body []literal) string {
	parts := make([]string, len(body))
	for i, lit := range body {
		parts[i] = renderLiteral(lit)
	}
	return fmt.Sprintf("%s :- %s.", renderLiteral(head), strings.Join(parts, ", "))
}

func termValue(term ast.BaseTerm) string {
	if c, ok := term.(ast.Constant); ok {
		return strings.TrimPrefix(c.Symbol, "/")
	}
	return term.String()
}
