// Package runid issues unique identifiers for pipeline runs. Run IDs go to
// logs and reporting only; artifacts stay byte-identical across runs.
package runid

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Generator produces monotonic ULIDs, safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a run ID generator.
func New() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next returns a new run identifier.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
