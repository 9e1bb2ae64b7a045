package product

import (
	"fmt"
	"time"
)

// Date layouts.
const (
	FeedLayout = "01/02/2006"
	ISOLayout  = "2006-01-02"
)

// Date is a calendar day. The zero value is not a valid date.
type Date struct {
	t time.Time // always midnight UTC
}

// DateError reports text that is not a date in the expected layout.
type DateError struct {
	Input  string
	Layout string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: want layout %s", e.Input, e.Layout)
}

// NewDate returns the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseFeedDate parses a MM/DD/YYYY date.
func ParseFeedDate(s string) (Date, error) {
	return parseDate(s, FeedLayout)
}

// ParseISODate parses a YYYY-MM-DD date.
func ParseISODate(s string) (Date, error) {
	return parseDate(s, ISOLayout)
}

func parseDate(s, layout string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, &DateError{Input: s, Layout: layout}
	}
	return DateOf(t), nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String renders the date in ISO layout.
func (d Date) String() string {
	return d.t.Format(ISOLayout)
}

// AddDays returns the day n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}
