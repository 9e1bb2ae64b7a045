// Package store provides SQLite-backed durable storage for the product inventory.
//
// The store holds a single products table:
//   - id: surrogate key, AUTOINCREMENT so ids are never reused
//   - name: business key, UNIQUE
//   - price_cents, quantity: non-negative integers (CHECK constraints)
//   - last_updated: ISO calendar date (YYYY-MM-DD)
//
// # Create semantics
//
// Create never surfaces a uniqueness violation. It runs
// INSERT .. ON CONFLICT(name) DO NOTHING and, when no row was inserted,
// selects the existing record in the same transaction. Callers branch on
// CreateResult.Outcome.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
//
// Two drivers are supported: "sqlite3" (github.com/mattn/go-sqlite3, cgo)
// and "sqlite" (modernc.org/sqlite, pure Go).
package store
