package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/inventory/internal/engine"
	"github.com/roach88/inventory/internal/feed"
	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
	"github.com/roach88/inventory/internal/store"
	"github.com/roach88/inventory/internal/testutil"
)

// feedHeader is prepended to every import step.
var feedHeader = strings.Join(feed.Columns, ",") + "\n"

// Harness executes one scenario against a private store.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	clock  *testutil.FixedClock
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh database in a temporary directory.
// An error is returned only when the scenario cannot be executed at all;
// failed expectations and assertions are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	today, err := product.ParseISODate(scenario.Today)
	if err != nil {
		return nil, fmt.Errorf("invalid today: %w", err)
	}

	dir, err := os.MkdirTemp("", "inventory-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "scenario.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	defer st.Close()

	clock := testutil.NewFixedClock(today)
	h := &Harness{
		store: st,
		engine: engine.New(st,
			engine.WithClock(clock),
			engine.WithRunIDGenerator(testutil.NewSequenceGenerator("run")),
			engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs
		),
		clock: clock,
	}

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	state, err := st.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	result.State = state

	for _, msg := range EvaluateAssertions(state, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// executeSetup writes setup rows straight to the store.
func (h *Harness) executeSetup(ctx context.Context, setup []ProductRow) error {
	for i, row := range setup {
		cents, err := money.ParseFeed(row.Price)
		if err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		date, err := product.ParseISODate(row.Date)
		if err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}

		res, err := h.store.Create(ctx, product.Product{
			Name:        product.NormalizeName(row.Name),
			PriceCents:  cents,
			Quantity:    row.Quantity,
			LastUpdated: date,
		})
		if err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if res.Outcome != store.Inserted {
			return fmt.Errorf("setup[%d]: duplicate product %q", i, row.Name)
		}
	}
	return nil
}

// executeFlow replays flow steps in order. Step failures are recorded in the
// result and the flow continues.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		n := i + 1
		var err error
		switch {
		case step.Import != "":
			h.executeImport(ctx, n, step, result)
		case step.Upsert != nil:
			err = h.executeUpsert(ctx, n, step, result)
		default:
			h.clock.Advance(step.AdvanceDays)
			result.AddTrace(TraceEvent{Step: n, Op: OpAdvance, Today: h.clock.Today().String()})
		}
		if err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}
	return nil
}

func (h *Harness) executeImport(ctx context.Context, n int, step FlowStep, result *Result) {
	event := TraceEvent{Step: n, Op: OpImport}
	defer func() { result.AddTrace(event) }()

	candidates, err := feed.Read(strings.NewReader(feedHeader + step.Import))
	if err != nil {
		event.Error = err.Error()
		checkError(n, step.Expect, err, result)
		return
	}

	report, err := h.engine.ImportBatch(ctx, candidates)
	event.RunID = report.RunID
	event.Counts = &ImportCounts{
		Inserted: report.Inserted,
		Updated:  report.Updated,
		Skipped:  report.Skipped,
	}
	if err != nil {
		event.Error = err.Error()
	}
	checkError(n, step.Expect, err, result)

	if e := step.Expect; e != nil {
		checkCount(n, "inserted", e.Inserted, report.Inserted, result)
		checkCount(n, "updated", e.Updated, report.Updated, result)
		checkCount(n, "skipped", e.Skipped, report.Skipped, result)
	}
}

// executeUpsert returns an error only for an unparseable scenario price.
func (h *Harness) executeUpsert(ctx context.Context, n int, step FlowStep, result *Result) error {
	u := step.Upsert
	cents, err := money.ParseInput(u.Price)
	if err != nil {
		return err
	}

	event := TraceEvent{Step: n, Op: OpUpsert, Product: product.NormalizeName(u.Name)}
	decision, _, err := h.engine.UpsertInteractive(ctx, event.Product, cents, u.Quantity)
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Decision = decision.String()
	}
	result.AddTrace(event)

	checkError(n, step.Expect, err, result)
	if e := step.Expect; e != nil && e.Decision != "" && err == nil && e.Decision != event.Decision {
		result.AddError(fmt.Sprintf("step %d: expected decision %s, got %s", n, e.Decision, event.Decision))
	}
	return nil
}

// checkError compares a step error against the expected error kind.
func checkError(n int, expect *ExpectClause, err error, result *Result) {
	want := ""
	if expect != nil {
		want = expect.Error
	}

	switch {
	case err == nil && want != "":
		result.AddError(fmt.Sprintf("step %d: expected %s error, got none", n, want))
	case err != nil && want == "":
		result.AddError(fmt.Sprintf("step %d: unexpected error: %v", n, err))
	case err != nil && want == ErrorFormat && !feed.IsFormatError(err):
		result.AddError(fmt.Sprintf("step %d: expected format error, got: %v", n, err))
	}
}

func checkCount(n int, field string, want *int, got int, result *Result) {
	if want != nil && *want != got {
		result.AddError(fmt.Sprintf("step %d: expected %d %s, got %d", n, *want, field, got))
	}
}
