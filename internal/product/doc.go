// Package product defines the inventory record and the values that flow into it.
//
// A Product is keyed by its Name. Dates carry no time component; they are
// compared as calendar days and rendered in ISO form (2006-01-02) for storage
// and backups. Feed files use the US layout (01/02/2006).
package product
