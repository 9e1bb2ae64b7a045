package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator yields run ids "<prefix>-1", "<prefix>-2", ... without end.
//
// It satisfies engine.RunIDGenerator. Use it where the number of import
// runs is not known up front.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator with the given prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next id in the sequence.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
