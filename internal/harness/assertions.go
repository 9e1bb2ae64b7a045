package harness

import (
	"fmt"

	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
)

// EvaluateAssertions checks assertions against the final inventory and
// returns one message per failure.
func EvaluateAssertions(state []product.Product, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertFinalState:
			err = assertFinalState(state, a)
		case AssertAbsent:
			err = assertAbsent(state, a)
		case AssertCount:
			if len(state) != a.Count {
				err = fmt.Errorf("expected %d products, got %d", a.Count, len(state))
			}
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %v", i+1, a.Type, err))
		}
	}
	return failures
}

func findProduct(state []product.Product, name string) (product.Product, bool) {
	name = product.NormalizeName(name)
	for _, p := range state {
		if p.Name == name {
			return p, true
		}
	}
	return product.Product{}, false
}

func assertFinalState(state []product.Product, a Assertion) error {
	p, ok := findProduct(state, a.Name)
	if !ok {
		return fmt.Errorf("product %q not found", a.Name)
	}

	e := a.Expect
	if e.ID != nil && *e.ID != p.ID {
		return fmt.Errorf("product %q: id = %d, expected %d", a.Name, p.ID, *e.ID)
	}
	if e.Price != "" && e.Price != money.Format(p.PriceCents) {
		return fmt.Errorf("product %q: price = %s, expected %s", a.Name, money.Format(p.PriceCents), e.Price)
	}
	if e.Quantity != nil && *e.Quantity != p.Quantity {
		return fmt.Errorf("product %q: quantity = %d, expected %d", a.Name, p.Quantity, *e.Quantity)
	}
	if e.Date != "" && e.Date != p.LastUpdated.String() {
		return fmt.Errorf("product %q: date = %s, expected %s", a.Name, p.LastUpdated, e.Date)
	}
	return nil
}

func assertAbsent(state []product.Product, a Assertion) error {
	if p, ok := findProduct(state, a.Name); ok {
		return fmt.Errorf("product %q present with id %d", a.Name, p.ID)
	}
	return nil
}
