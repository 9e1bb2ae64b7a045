package store

import (
	"context"
	"fmt"

	"github.com/roach88/inventory/internal/product"
)

// Outcome tags the result of Create.
type Outcome int

const (
	// Inserted means a new record was created from the given values.
	Inserted Outcome = iota + 1
	// Conflicted means a record with the same name already existed and was left unchanged.
	Conflicted
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Conflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}

// CreateResult is the tagged result of Create.
// Record is the new record when Outcome is Inserted, and the existing record
// when Outcome is Conflicted.
type CreateResult struct {
	Outcome Outcome
	Record  product.Product
}

// Create inserts a product keyed by name.
//
// Uses ON CONFLICT(name) DO NOTHING so a duplicate name is not an error: the
// existing record is selected in the same transaction and returned with
// Outcome Conflicted. Other constraint violations (e.g., negative price)
// still return errors. p.ID is ignored.
func (s *Store) Create(ctx context.Context, p product.Product) (CreateResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create product: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO products
		(name, price_cents, quantity, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`,
		p.Name,
		p.PriceCents,
		p.Quantity,
		p.LastUpdated.String(),
	)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create product: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return CreateResult{}, fmt.Errorf("create product: rows affected: %w", err)
	}

	var created CreateResult
	if rowsAffected > 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return CreateResult{}, fmt.Errorf("create product: last insert id: %w", err)
		}
		p.ID = id
		created = CreateResult{Outcome: Inserted, Record: p}
	} else {
		existing, err := scanProduct(tx.QueryRowContext(ctx, selectProduct+` WHERE name = ?`, p.Name))
		if err != nil {
			return CreateResult{}, fmt.Errorf("create product: select existing: %w", err)
		}
		created = CreateResult{Outcome: Conflicted, Record: existing}
	}

	if err := tx.Commit(); err != nil {
		return CreateResult{}, fmt.Errorf("create product: commit: %w", err)
	}

	return created, nil
}

// Save overwrites every mutable field of the record identified by p.ID.
// Returns ErrNotFound if no record has that id.
func (s *Store) Save(ctx context.Context, p product.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, price_cents = ?, quantity = ?, last_updated = ?
		WHERE id = ?
	`,
		p.Name,
		p.PriceCents,
		p.Quantity,
		p.LastUpdated.String(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("save product %d: %w", p.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save product %d: rows affected: %w", p.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("save product %d: %w", p.ID, ErrNotFound)
	}

	return nil
}
