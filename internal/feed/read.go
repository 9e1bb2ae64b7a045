package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
)

// Column names.
const (
	ColumnName     = "product_name"
	ColumnPrice    = "product_price"
	ColumnQuantity = "product_quantity"
	ColumnDate     = "date_updated"
)

// Columns lists the feed columns in file order.
var Columns = []string{ColumnName, ColumnPrice, ColumnQuantity, ColumnDate}

var (
	// ErrEmptyFeed is returned when the input has no header row.
	ErrEmptyFeed = errors.New("feed is empty")

	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMissingValue is returned when a row is shorter than the header.
	ErrMissingValue = errors.New("missing value")
)

// RowError locates a failure in the feed.
type RowError struct {
	Line   int    // 1-based line in the file; the header is line 1
	Column string // column name, empty if not column-specific
	Err    error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err stems from malformed price, date or count text.
func IsFormatError(err error) bool {
	var me *money.FormatError
	var de *product.DateError
	var fe *product.FieldError
	return errors.As(err, &me) || errors.As(err, &de) || errors.As(err, &fe)
}

// HeaderIndex maps lowercased column names to their position.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(cleanHeader(h))
		idx[key] = i
	}
	return idx
}

// cleanHeader trims whitespace, a leading byte-order mark and stray quotes
// from a header cell. Data cells never pass through here: quotes inside a
// product name are part of the name.
func cleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	return strings.Trim(s, `"'`)
}

// ReadFile reads all candidates from the feed at path.
func ReadFile(path string) ([]product.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	candidates, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", path, err)
	}
	return candidates, nil
}

// Read parses every row of a feed into candidates, in file order.
// The first malformed row aborts the read.
func Read(r io.Reader) ([]product.Candidate, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &RowError{Line: 1, Err: ErrEmptyFeed}
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	idx := MakeHeaderIndex(header)
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, &RowError{Line: 1, Column: col, Err: ErrMissingColumn}
		}
	}

	candidates := []product.Candidate{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse feed: %w", err)
		}

		line, _ := cr.FieldPos(0)
		c, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

func parseRow(row []string, idx HeaderIndex, line int) (product.Candidate, error) {
	cell := func(col string) (string, error) {
		pos := idx[col]
		if pos >= len(row) {
			return "", &RowError{Line: line, Column: col, Err: ErrMissingValue}
		}
		return strings.TrimSpace(row[pos]), nil
	}

	var c product.Candidate

	name, err := cell(ColumnName)
	if err != nil {
		return c, err
	}
	if product.IsBlankName(name) {
		return c, &RowError{Line: line, Column: ColumnName, Err: ErrMissingValue}
	}
	c.Name = product.NormalizeName(name)

	price, err := cell(ColumnPrice)
	if err != nil {
		return c, err
	}
	if c.PriceCents, err = money.ParseFeed(price); err != nil {
		return c, &RowError{Line: line, Column: ColumnPrice, Err: err}
	}

	qty, err := cell(ColumnQuantity)
	if err != nil {
		return c, err
	}
	if c.Quantity, err = product.ParseQuantity(qty); err != nil {
		return c, &RowError{Line: line, Column: ColumnQuantity, Err: err}
	}

	date, err := cell(ColumnDate)
	if err != nil {
		return c, err
	}
	if c.Date, err = product.ParseFeedDate(date); err != nil {
		return c, &RowError{Line: line, Column: ColumnDate, Err: err}
	}

	return c, nil
}
