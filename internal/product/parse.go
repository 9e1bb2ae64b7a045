package product

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var digitsPattern = regexp.MustCompile(`^\d+$`)

// FieldError reports text that cannot be parsed into a field value.
type FieldError struct {
	Field  string
	Input  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// ParseQuantity parses a non-negative, digits-only count.
func ParseQuantity(s string) (int64, error) {
	return parseCount("quantity", s)
}

// ParseID parses a digits-only record identifier.
func ParseID(s string) (int64, error) {
	return parseCount("id", s)
}

func parseCount(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !digitsPattern.MatchString(s) {
		return 0, &FieldError{Field: field, Input: s, Reason: "must be a whole number"}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Input: s, Reason: "number is too large"}
	}
	return n, nil
}
