package engine

import (
	"time"

	"github.com/roach88/inventory/internal/product"
)

// Clock supplies the implicit date for interactive entries.
type Clock interface {
	Today() product.Date
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Today returns the current local calendar day.
func (SystemClock) Today() product.Date {
	return product.DateOf(time.Now())
}
