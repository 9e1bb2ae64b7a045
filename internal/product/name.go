package product

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the canonical form of a product name: NFC with
// surrounding whitespace removed. Feed rows and operator entries both pass
// through it, so the same product typed either way lands on one record.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// IsBlankName reports whether name has no visible content.
func IsBlankName(name string) bool {
	return strings.TrimSpace(name) == ""
}
