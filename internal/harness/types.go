package harness

import "github.com/roach88/inventory/internal/product"

// Trace operations.
const (
	OpImport  = "import"
	OpUpsert  = "upsert"
	OpAdvance = "advance"
)

// TraceEvent records one flow step and its outcome.
type TraceEvent struct {
	Step     int           `json:"step"` // 1-based position in the flow
	Op       string        `json:"op"`
	RunID    string        `json:"run_id,omitempty"`
	Counts   *ImportCounts `json:"counts,omitempty"`
	Product  string        `json:"product,omitempty"`
	Decision string        `json:"decision,omitempty"`
	Today    string        `json:"today,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ImportCounts mirrors engine.Report without the run id.
type ImportCounts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final inventory in id order.
	State []product.Product `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
