package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/inventory/internal/product"
)

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario errors: %v", result.Errors)
		})
	}
}

func intPtr(n int) *int { return &n }

func TestRun_ReportsFailedExpectations(t *testing.T) {
	s := &Scenario{
		Name:        "wrong_counts",
		Description: "expectations that do not hold",
		Today:       "2018-08-20",
		Flow: []FlowStep{
			{Import: "Widget,$3.19,100,08/19/2018\n", Expect: &ExpectClause{Inserted: intPtr(5)}},
			{Upsert: &UpsertStep{Name: "Widget", Price: "1.00", Quantity: 1}, Expect: &ExpectClause{Decision: "inserted"}},
		},
		Assertions: []Assertion{{Type: AssertCount, Count: 2}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors, "step 1: expected 5 inserted, got 1")
	assert.Contains(t, result.Errors, "step 2: expected decision inserted, got updated")
	assert.Contains(t, result.Errors, "assertion 1 (count): expected 2 products, got 1")
}

func TestRun_UnexpectedImportError(t *testing.T) {
	s := &Scenario{
		Name:        "unexpected_error",
		Description: "malformed feed without an error expectation",
		Today:       "2018-08-20",
		Flow:        []FlowStep{{Import: "Widget,3.19,100,08/19/2018\n"}},
		Assertions:  []Assertion{{Type: AssertCount, Count: 0}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "step 1: unexpected error")
	require.Len(t, result.Trace, 1)
	assert.Nil(t, result.Trace[0].Counts)
}

func TestRun_MissingExpectedError(t *testing.T) {
	s := &Scenario{
		Name:        "missing_error",
		Description: "well-formed feed expected to fail",
		Today:       "2018-08-20",
		Flow: []FlowStep{
			{Import: "Widget,$3.19,100,08/19/2018\n", Expect: &ExpectClause{Error: ErrorAny}},
		},
		Assertions: []Assertion{{Type: AssertCount, Count: 1}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"step 1: expected any error, got none"}, result.Errors)
}

func TestRun_BadScenarioData(t *testing.T) {
	base := Scenario{
		Name:        "bad",
		Description: "bad",
		Today:       "2018-08-20",
		Flow:        []FlowStep{{AdvanceDays: 1}},
		Assertions:  []Assertion{{Type: AssertCount}},
	}

	s := base
	s.Today = "08/20/2018"
	_, err := Run(&s)
	assert.Error(t, err)

	s = base
	s.Setup = []ProductRow{{Name: "Widget", Price: "3.19", Date: "2018-08-20"}}
	_, err = Run(&s)
	assert.Error(t, err)

	s = base
	s.Setup = []ProductRow{
		{Name: "Widget", Price: "$3.19", Date: "2018-08-20"},
		{Name: "Widget", Price: "$3.19", Date: "2018-08-20"},
	}
	_, err = Run(&s)
	assert.ErrorContains(t, err, "duplicate product")

	s = base
	s.Flow = []FlowStep{{Upsert: &UpsertStep{Name: "Widget", Price: "cheap"}}}
	_, err = Run(&s)
	assert.Error(t, err)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := map[string]struct {
		content string
		errMsg  string
	}{
		"unknown field": {
			content: "name: x\ndescription: y\ntoday: 2018-08-20\nflow:\n  - advance_days: 1\nassertion:\n  - type: count\n",
			errMsg:  "failed to parse YAML",
		},
		"missing today": {
			content: "name: x\ndescription: y\nflow:\n  - advance_days: 1\nassertions:\n  - type: count\n",
			errMsg:  "today is required",
		},
		"two step kinds": {
			content: "name: x\ndescription: y\ntoday: 2018-08-20\nflow:\n  - advance_days: 1\n    import: \"a\"\nassertions:\n  - type: count\n",
			errMsg:  "exactly one of",
		},
		"empty step": {
			content: "name: x\ndescription: y\ntoday: 2018-08-20\nflow:\n  - expect: { inserted: 1 }\nassertions:\n  - type: count\n",
			errMsg:  "exactly one of",
		},
		"unknown assertion": {
			content: "name: x\ndescription: y\ntoday: 2018-08-20\nflow:\n  - advance_days: 1\nassertions:\n  - type: trace_order\n",
			errMsg:  "unknown assertion type",
		},
		"final_state without expect": {
			content: "name: x\ndescription: y\ntoday: 2018-08-20\nflow:\n  - advance_days: 1\nassertions:\n  - type: final_state\n    name: Widget\n",
			errMsg:  "requires name and expect",
		},
		"unknown error kind": {
			content: "name: x\ndescription: y\ntoday: 2018-08-20\nflow:\n  - import: \"a\"\n    expect: { error: store }\nassertions:\n  - type: count\n",
			errMsg:  "unknown expected error",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEvaluateAssertions(t *testing.T) {
	state := []product.Product{
		{ID: 1, Name: "Widget", PriceCents: 319, Quantity: 100, LastUpdated: product.NewDate(2018, time.August, 19)},
	}
	id := int64(1)
	wrongID := int64(2)
	qty := int64(100)

	assert.Empty(t, EvaluateAssertions(state, []Assertion{
		{Type: AssertFinalState, Name: "Widget", Expect: &ProductExpect{ID: &id, Price: "$3.19", Quantity: &qty, Date: "2018-08-19"}},
		{Type: AssertFinalState, Name: "Widget", Expect: &ProductExpect{}},
		{Type: AssertAbsent, Name: "Gadget"},
		{Type: AssertCount, Count: 1},
	}))

	failures := EvaluateAssertions(state, []Assertion{
		{Type: AssertFinalState, Name: "Widget", Expect: &ProductExpect{ID: &wrongID}},
		{Type: AssertFinalState, Name: "Widget", Expect: &ProductExpect{Price: "$3.20"}},
		{Type: AssertFinalState, Name: "Gadget", Expect: &ProductExpect{}},
		{Type: AssertAbsent, Name: "Widget"},
		{Type: AssertCount, Count: 0},
	})
	assert.Equal(t, []string{
		`assertion 1 (final_state): product "Widget": id = 1, expected 2`,
		`assertion 2 (final_state): product "Widget": price = $3.19, expected $3.20`,
		`assertion 3 (final_state): product "Gadget" not found`,
		`assertion 4 (absent): product "Widget" present with id 1`,
		`assertion 5 (count): expected 0 products, got 1`,
	}, failures)
}

func TestSnapshot_Marshal(t *testing.T) {
	result := NewResult()
	result.AddTrace(TraceEvent{Step: 1, Op: OpAdvance, Today: "2018-08-21"})

	data, err := NewSnapshot("empty", result).Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{
  "scenario_name": "empty",
  "trace": [
    {
      "step": 1,
      "op": "advance",
      "today": "2018-08-21"
    }
  ],
  "final_state": []
}
`, string(data))
}
