// Package kb compiles normalized policy text into ground facts and writes
// the knowledge-base artifacts. Fact identity is the exact canonical
// rendering; the extractor deduplicates on it while preserving first-seen
// order.
package kb

import (
	"fmt"
	"strings"
)

// Fact is a ground predicate application over constant arguments.
type Fact struct {
	Predicate string
	Args      []string
}

// F is shorthand for constructing a fact.
func F(predicate string, args ...string) Fact {
	return Fact{Predicate: predicate, Args: args}
}

// Render returns the canonical textual form "predicate(arg1, arg2, ...).".
// This form is used both for deduplication and for prefix-based retrieval.
func (f Fact) Render() string {
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(f.Args, ", "))
}
