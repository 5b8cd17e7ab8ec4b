// Package daterange holds the date parsing and range policy used by both the
// history endpoint and the dashboard client, so the two sides reject the same inputs.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

// DefaultMaxSpanDays is the widest history window a caller may request.
const DefaultMaxSpanDays = 30

const dateLayout = "2006-01-02"

var (
	ErrRangeReversed = errors.New("from date is after to date")
	ErrRangeTooLarge = errors.New("date range is too large")
)

// Date is a parsed query bound.
type Date struct {
	Time time.Time
	// DateOnly is set when the input carried no time of day.
	DateOnly bool
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse accepts a calendar date (UTC midnight) or an ISO 8601 date-time.
// Date-times without an offset are read as UTC.
func Parse(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t, DateOnly: true}, nil
	}

	var lastErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Date{Time: t.UTC()}, nil
		}
		lastErr = err
	}

	return Date{}, fmt.Errorf("failed to parse date '%s': %w", s, lastErr)
}

// SpanDays returns (to - from) in days, fractional and possibly negative.
func SpanDays(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

// Check enforces from <= to and a span of at most maxDays.
func Check(from, to time.Time, maxDays int) error {
	span := SpanDays(from, to)
	if span < 0 {
		return ErrRangeReversed
	}
	if span > float64(maxDays) {
		return ErrRangeTooLarge
	}
	return nil
}

// UpperBound is the inclusive end instant for a query ending at d: a bare date
// covers its whole day.
func UpperBound(d Date) time.Time {
	if d.DateOnly {
		return d.Time.Add(24*time.Hour - time.Nanosecond)
	}
	return d.Time
}
