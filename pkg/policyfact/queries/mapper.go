// Package queries maps natural-language questions onto canonical query
// expressions and generates the batch query artifacts.
package queries

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact/textnorm"
)

// Sentinel values for questions no rule claims. Not an error: the marker
// flows transparently through every downstream artifact.
const (
	UnmappedExpression = "% TODO: add mapping rule for this question."
	UnmappedShape      = "N/A"
)

// Query is one mapped question. Created once, immutable thereafter.
type Query struct {
	ID          string `json:"qid"`
	Question    string `json:"question"`
	Expression  string `json:"prolog_query"`
	AnswerShape string `json:"answer_shape"`
}

// Mapped reports whether the query carries a real expression rather than
// the sentinel marker.
func (q Query) Mapped() bool {
	return !strings.HasPrefix(strings.TrimSpace(q.Expression), "% TODO")
}

// mapRule matches a question when every trigger group has at least one
// member occurring in the normalized question (a conjunction of any-of
// substring groups). Rules are tried in declaration order and the first
// match wins; ordering is a deliberate tie-break policy, not an accident.
type mapRule struct {
	groups      [][]string
	expression  string
	answerShape string
}

func (r mapRule) matches(t string) bool {
	for _, group := range r.groups {
		hit := false
		for _, kw := range group {
			if strings.Contains(t, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// mapRules is the fixed, ordered question → query table.
var mapRules = []mapRule{
	{[][]string{{"what information"}, {"collect"}},
		"collects(google, X).",
		"X (all collected data types)"},
	{[][]string{{"why"}, {"collect", "use"}},
		"uses_for(google, Purpose).",
		"Purpose (all purposes)"},
	{[][]string{{"depend"}, {"privacy control"}},
		"varies_by(data_collection, privacy_controls).",
		"true/false"},
	{[][]string{{"not signed"}, {"identifier"}},
		"stores_under_identifier(google, unique_identifier, not_signed_in, Purpose).",
		"Purpose"},
	{[][]string{{"google account"}, {"what", "information"}},
		"purpose(google, personal_information, create_or_use_account).",
		"true/false"},
	{[][]string{{"content"}, {"create", "upload", "collect"}},
		"collects_content(google, X).",
		"X (content type)"},
	{[][]string{{"technology", "technologies"}, {"cookie", "server log", "logs"}},
		"uses_technology(google, Tech).",
		"Tech"},
	{[][]string{{"how long", "retain", "keep data"}, {"delete", "auto"}},
		"retains(google, data, Policy), allows_setting(google, delete), (allows_setting(google, auto_delete) ; true).",
		"Policy + delete/auto-delete availability"},
}

// MapQuestion maps one question to its query expression and answer shape.
// Unmatched questions get the sentinel pair.
func MapQuestion(question string) (expression, answerShape string) {
	t := textnorm.Normalize(question)
	for _, rule := range mapRules {
		if rule.matches(t) {
			return rule.expression, rule.answerShape
		}
	}
	return UnmappedExpression, UnmappedShape
}

var qidPattern = regexp.MustCompile(`(?i)^(q\d+)\s+(.*)$`)

// ParseQuestions reads one question per non-empty line. A leading "Qn"
// token becomes the question ID; other lines are numbered by position.
func ParseQuestions(content string) []Query {
	var out []Query
	n := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n++
		id, text := fmt.Sprintf("Q%d", n), line
		if m := qidPattern.FindStringSubmatch(line); m != nil {
			id, text = strings.ToUpper(m[1]), strings.TrimSpace(m[2])
		}
		out = append(out, Query{ID: id, Question: text})
	}
	return out
}

// MapAll maps every parsed question, preserving input order.
func MapAll(questions []Query) []Query {
	out := make([]Query, len(questions))
	for i, q := range questions {
		q.Expression, q.AnswerShape = MapQuestion(q.Question)
		out[i] = q
	}
	return out
}
