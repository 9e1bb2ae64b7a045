package engine

import (
	"sync"

	"github.com/google/uuid"
)

// RunIDGenerator names each ImportBatch call. The id tags every log line
// of the run and is returned in its Report.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator is the default. Its ids start with a millisecond
// timestamp, so runs listed by id come out in the order they started.
type UUIDv7Generator struct{}

// Generate returns a new run id.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator hands out a fixed list of run ids, one per import.
// It panics once the list runs out.
type FixedGenerator struct {
	mu   sync.Mutex
	ids  []string
	next int
}

func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next == len(g.ids) {
		panic("engine: no run ids left")
	}
	id := g.ids[g.next]
	g.next++
	return id
}
