package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/inventory/internal/product"
)

var testDrivers = []string{DriverCGO, DriverPureGo}

// createTestStore creates a new temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	return createTestStoreWithDriver(t, DriverCGO)
}

func createTestStoreWithDriver(t *testing.T, driver string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenWithDriver(driver, path)
	if err != nil {
		t.Fatalf("OpenWithDriver(%q) failed: %v", driver, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// forEachDriver runs fn as a subtest against a fresh store for every supported driver.
func forEachDriver(t *testing.T, fn func(t *testing.T, s *Store)) {
	t.Helper()
	for _, driver := range testDrivers {
		t.Run(driver, func(t *testing.T) {
			fn(t, createTestStoreWithDriver(t, driver))
		})
	}
}

// createTestProduct creates a product with the given name and date.
func createTestProduct(name string, priceCents, quantity int64, y int, m time.Month, d int) product.Product {
	return product.Product{
		Name:        name,
		PriceCents:  priceCents,
		Quantity:    quantity,
		LastUpdated: product.NewDate(y, m, d),
	}
}
