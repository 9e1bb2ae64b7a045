package engine

import (
	"context"
	"log/slog"

	"github.com/roach88/inventory/internal/product"
	"github.com/roach88/inventory/internal/store"
)

// Store is the subset of the inventory store the engine writes through.
type Store interface {
	Create(ctx context.Context, p product.Product) (store.CreateResult, error)
	Save(ctx context.Context, p product.Product) error
}

// Decision is the outcome of reconciling one candidate.
type Decision int

const (
	// DecisionInserted means no record had the name; one was created.
	DecisionInserted Decision = iota + 1
	// DecisionUpdated means the stored record was overwritten.
	DecisionUpdated
	// DecisionSkipped means the stored record was kept and the candidate dropped.
	DecisionSkipped
)

func (d Decision) String() string {
	switch d {
	case DecisionInserted:
		return "inserted"
	case DecisionUpdated:
		return "updated"
	case DecisionSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Rule reports whether a candidate dated candidate replaces a stored record dated stored.
type Rule func(stored, candidate product.Date) bool

// NewerWins is the batch rule: stored < candidate.
func NewerWins(stored, candidate product.Date) bool {
	return stored.Before(candidate)
}

// NotOlderWins is the interactive rule: stored <= candidate.
func NotOlderWins(stored, candidate product.Date) bool {
	return !stored.After(candidate)
}

// Report summarizes one ImportBatch call.
type Report struct {
	RunID    string
	Inserted int
	Updated  int
	Skipped  int
}

// Total returns the number of candidates processed.
func (r Report) Total() int {
	return r.Inserted + r.Updated + r.Skipped
}

func (r *Report) count(d Decision) {
	switch d {
	case DecisionInserted:
		r.Inserted++
	case DecisionUpdated:
		r.Updated++
	case DecisionSkipped:
		r.Skipped++
	}
}

// Engine applies candidates to a Store.
type Engine struct {
	store  Store
	clock  Clock
	runGen RunIDGenerator
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for "today" on the interactive path.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithRunIDGenerator sets the generator for import run ids.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runGen = g
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine writing through s.
//
// Defaults: SystemClock, UUIDv7Generator, slog.Default().
func New(s Store, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		clock:  SystemClock{},
		runGen: UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ImportBatch reconciles feed candidates in input order using NewerWins.
//
// On a store failure the returned Report counts the candidates applied
// before the failure; those stay committed.
func (e *Engine) ImportBatch(ctx context.Context, candidates []product.Candidate) (Report, error) {
	report := Report{RunID: e.runGen.Generate()}
	logger := e.logger.With("run_id", report.RunID)
	logger.Info("import started", "candidates", len(candidates))

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		decision, _, err := e.reconcile(ctx, c, NewerWins)
		if err != nil {
			logger.Error("import aborted", "row", i+1, "product", c.Name, "error", err)
			return report, err
		}
		report.count(decision)

		if decision != DecisionSkipped {
			logger.Debug("candidate applied", "product", c.Name, "decision", decision)
		}
	}

	logger.Info("import finished",
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
	)
	return report, nil
}

// UpsertInteractive reconciles an operator-entered record dated today using NotOlderWins.
// Returns the decision and the record as it now stands in the store.
func (e *Engine) UpsertInteractive(ctx context.Context, name string, priceCents, quantity int64) (Decision, product.Product, error) {
	c := product.Candidate{
		Name:       name,
		PriceCents: priceCents,
		Quantity:   quantity,
		Date:       e.clock.Today(),
	}

	decision, record, err := e.reconcile(ctx, c, NotOlderWins)
	if err != nil {
		return 0, product.Product{}, err
	}

	e.logger.Debug("interactive upsert", "product", c.Name, "decision", decision)
	return decision, record, nil
}

// reconcile applies a single candidate. Each call touches one row.
func (e *Engine) reconcile(ctx context.Context, c product.Candidate, wins Rule) (Decision, product.Product, error) {
	c.Name = product.NormalizeName(c.Name)
	if err := validateCandidate(c); err != nil {
		return 0, product.Product{}, err
	}

	res, err := e.store.Create(ctx, c.Product())
	if err != nil {
		return 0, product.Product{}, NewStoreError(c.Name, "create", err)
	}

	switch res.Outcome {
	case store.Inserted:
		return DecisionInserted, res.Record, nil
	case store.Conflicted:
		existing := res.Record
		if !wins(existing.LastUpdated, c.Date) {
			return DecisionSkipped, existing, nil
		}
		updated := c.Apply(existing)
		if err := e.store.Save(ctx, updated); err != nil {
			return 0, product.Product{}, NewStoreError(c.Name, "save", err)
		}
		return DecisionUpdated, updated, nil
	default:
		return 0, product.Product{}, NewStoreError(c.Name, "create", errUnknownOutcome(res.Outcome))
	}
}

func validateCandidate(c product.Candidate) error {
	switch {
	case product.IsBlankName(c.Name):
		return NewInvalidCandidateError(c.Name, "name is empty")
	case c.PriceCents < 0:
		return NewInvalidCandidateError(c.Name, "price is negative")
	case c.Quantity < 0:
		return NewInvalidCandidateError(c.Name, "quantity is negative")
	case c.Date.IsZero():
		return NewInvalidCandidateError(c.Name, "date is missing")
	}
	return nil
}
