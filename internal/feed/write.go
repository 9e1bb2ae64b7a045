package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
)

// Write renders products as a backup CSV: header first, one row per product.
func Write(w io.Writer, products []product.Product) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.Name,
			money.Format(p.PriceCents),
			strconv.FormatInt(p.Quantity, 10),
			p.LastUpdated.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write product %d: %w", p.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush backup: %w", err)
	}
	return nil
}

// WriteFile writes a backup to path.
//
// The file is written to a temporary sibling and renamed into place, so an
// existing backup is only replaced by a complete one.
func WriteFile(path string, products []product.Product) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op after a successful rename

	if err := Write(tmp, products); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace backup: %w", err)
	}
	return nil
}
