package utils

import (
	"fmt"
	"time"
)

// DayLayout is the wire format for calendar dates in API requests.
const DayLayout = "2006-01-02"

// MonthLayout is the wire format for month keys ("YYYY-MM").
const MonthLayout = "2006-01"

// Day truncates a timestamp to UTC midnight. All period arithmetic operates
// on whole nights, so every date entering the engine goes through this.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses an API date string into a UTC midnight time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return Day(t), nil
}

// ParseMonth parses a "YYYY-MM" month key into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q (want YYYY-MM): %w", s, err)
	}
	return Day(t), nil
}

// DaysBetween returns the whole-day difference b - a. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// MonthRange returns the first and last night of the calendar month
// containing t.
func MonthRange(t time.Time) (first, last time.Time) {
	y, m, _ := t.UTC().Date()
	first = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}
