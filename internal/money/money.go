// Package money converts between price text and integer cents.
//
// Two grammars are accepted. Feed prices are fixed-format "$D.DD". Operator
// input is one or more integer digits, a decimal point and one or two
// fractional digits, optionally prefixed with the unit symbol. One fractional
// digit is right-padded ("1.5" is 150 cents).
package money

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Symbol is the monetary unit symbol.
const Symbol = "$"

var (
	feedPattern  = regexp.MustCompile(`^\$(\d)\.(\d\d)$`)
	inputPattern = regexp.MustCompile(`^(\d+)(?:\.(\d*))?$`)
)

// Reasons attached to a FormatError.
const (
	ReasonNotANumber     = "not a price"
	ReasonMissingCents   = "cents are required, e.g. 1.23"
	ReasonTooManyDecimal = "only two decimal places are allowed"
	ReasonOutOfRange     = "price is too large"
)

// FormatError reports price text that does not match the expected grammar.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid price %q: %s", e.Input, e.Reason)
}

// ParseFeed converts a feed price such as "$3.19" into cents.
func ParseFeed(s string) (int64, error) {
	m := feedPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Input: s, Reason: ReasonNotANumber}
	}
	whole, _ := strconv.ParseInt(m[1], 10, 64)
	frac, _ := strconv.ParseInt(m[2], 10, 64)
	return whole*100 + frac, nil
}

// ParseInput converts operator-entered price text into cents.
func ParseInput(s string) (int64, error) {
	s = strings.TrimSpace(s)
	m := inputPattern.FindStringSubmatch(strings.TrimPrefix(s, Symbol))
	if m == nil {
		return 0, &FormatError{Input: s, Reason: ReasonNotANumber}
	}

	fracText := m[2]
	switch {
	case fracText == "":
		return 0, &FormatError{Input: s, Reason: ReasonMissingCents}
	case len(fracText) > 2:
		return 0, &FormatError{Input: s, Reason: ReasonTooManyDecimal}
	case len(fracText) == 1:
		fracText += "0"
	}

	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || whole > (maxCents-99)/100 {
		return 0, &FormatError{Input: s, Reason: ReasonOutOfRange}
	}
	frac, _ := strconv.ParseInt(fracText, 10, 64)
	return whole*100 + frac, nil
}

const maxCents = int64(^uint64(0) >> 1)

// Format renders cents as "$D.DD".
func Format(cents int64) string {
	return fmt.Sprintf("%s%d.%02d", Symbol, cents/100, cents%100)
}
