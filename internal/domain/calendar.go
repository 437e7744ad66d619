package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and query format for ledger dates.
const DateLayout = "2006-01-02"

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the first day of the month and the first day of the
// following month, suitable for a half-open [from, to) filter.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s)}
	}
	return t, nil
}

// ValidPeriod checks that month is in 1..12.
func ValidPeriod(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidPeriod, month)
	}
	return nil
}

// ValidRange checks that start is not after end.
func ValidRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}

func monthOf(m int) time.Month { return time.Month(m) }
