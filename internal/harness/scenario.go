package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a reconciliation scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Today pins the interactive clock (YYYY-MM-DD).
	Today string `yaml:"today"`

	// Setup seeds the store directly, bypassing the engine.
	Setup []ProductRow `yaml:"setup,omitempty"`

	// Flow is replayed in order through the engine.
	Flow []FlowStep `yaml:"flow"`

	// Assertions check the final inventory.
	Assertions []Assertion `yaml:"assertions"`
}

// ProductRow is a stored product as written in a scenario.
type ProductRow struct {
	Name     string `yaml:"name"`
	Price    string `yaml:"price"` // feed format, e.g. "$3.19"
	Quantity int64  `yaml:"quantity"`
	Date     string `yaml:"date"` // YYYY-MM-DD
}

// FlowStep is exactly one of an import, an upsert or a clock advance.
type FlowStep struct {
	// Import holds feed rows without the header.
	Import string `yaml:"import,omitempty"`

	// Upsert is an operator entry dated today.
	Upsert *UpsertStep `yaml:"upsert,omitempty"`

	// AdvanceDays moves the clock forward.
	AdvanceDays int `yaml:"advance_days,omitempty"`

	// Expect validates the step's outcome. Optional.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// UpsertStep is an operator entry. Price uses the interactive grammar.
type UpsertStep struct {
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity int64  `yaml:"quantity"`
}

// ExpectClause specifies the expected outcome of a flow step.
// Nil counts are not checked.
type ExpectClause struct {
	Decision string `yaml:"decision,omitempty"` // upsert: inserted | updated | skipped
	Inserted *int   `yaml:"inserted,omitempty"`
	Updated  *int   `yaml:"updated,omitempty"`
	Skipped  *int   `yaml:"skipped,omitempty"`
	Error    string `yaml:"error,omitempty"` // "format" | "any"
}

// Assertion validates the final inventory.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Name selects the product (final_state, absent).
	Name string `yaml:"name,omitempty"`

	// Expect lists the fields to compare (final_state). Subset match.
	Expect *ProductExpect `yaml:"expect,omitempty"`

	// Count is the expected number of products (count).
	Count int `yaml:"count,omitempty"`
}

// ProductExpect holds expected field values; empty fields are not compared.
type ProductExpect struct {
	ID       *int64 `yaml:"id,omitempty"`
	Price    string `yaml:"price,omitempty"`
	Quantity *int64 `yaml:"quantity,omitempty"`
	Date     string `yaml:"date,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState = "final_state"
	AssertAbsent     = "absent"
	AssertCount      = "count"
)

// Expected error kinds.
const (
	ErrorFormat = "format"
	ErrorAny    = "any"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Today == "" {
		return fmt.Errorf("today is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, row := range s.Setup {
		if row.Name == "" {
			return fmt.Errorf("setup[%d]: name is required", i)
		}
		if row.Price == "" || row.Date == "" {
			return fmt.Errorf("setup[%d]: price and date are required", i)
		}
	}

	for i, step := range s.Flow {
		kinds := 0
		if step.Import != "" {
			kinds++
		}
		if step.Upsert != nil {
			kinds++
		}
		if step.AdvanceDays != 0 {
			kinds++
		}
		if kinds != 1 {
			return fmt.Errorf("flow[%d]: exactly one of import, upsert or advance_days is required", i)
		}
		if step.AdvanceDays < 0 {
			return fmt.Errorf("flow[%d]: advance_days must be positive", i)
		}
		if e := step.Expect; e != nil && e.Error != "" && e.Error != ErrorFormat && e.Error != ErrorAny {
			return fmt.Errorf("flow[%d]: unknown expected error %q", i, e.Error)
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertFinalState:
			if a.Name == "" || a.Expect == nil {
				return fmt.Errorf("assertions[%d]: final_state requires name and expect", i)
			}
		case AssertAbsent:
			if a.Name == "" {
				return fmt.Errorf("assertions[%d]: absent requires name", i)
			}
		case AssertCount:
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
	}

	return nil
}
