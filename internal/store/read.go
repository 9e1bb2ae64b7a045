package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/inventory/internal/product"
)

const selectProduct = `
		SELECT id, name, price_cents, quantity, last_updated
		FROM products`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get retrieves a product by name.
// Returns ErrNotFound if no product has that name.
func (s *Store) Get(ctx context.Context, name string) (product.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, selectProduct+` WHERE name = ?`, name))
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %q: %w", name, err)
	}
	return p, nil
}

// GetByID retrieves a product by its surrogate id.
// Returns ErrNotFound if no product has that id.
func (s *Store) GetByID(ctx context.Context, id int64) (product.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, id))
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// MaxID returns the largest id currently assigned, or 0 for an empty store.
func (s *Store) MaxID(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM products`).Scan(&id); err != nil {
		return 0, fmt.Errorf("max product id: %w", err)
	}
	return id.Int64, nil
}

// ListAll returns every product ordered by id.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListAll(ctx context.Context) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx, selectProduct+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// scanProduct scans a single products row.
// sql.ErrNoRows is translated to ErrNotFound.
func scanProduct(row rowScanner) (product.Product, error) {
	var p product.Product
	var lastUpdated string

	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Quantity, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, ErrNotFound
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("scan product: %w", err)
	}

	p.LastUpdated, err = product.ParseISODate(lastUpdated)
	if err != nil {
		return product.Product{}, fmt.Errorf("scan product %d: %w", p.ID, err)
	}

	return p, nil
}
