package domain

import (
	"fmt"
	"time"
)

// ParseDay parses a canonical day string at UTC midnight.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad day %q", ErrInvalidEntry, day)
	}
	return t, nil
}

// AddDays shifts a day string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DayFormat), nil
}

// DaysBetween returns the whole-day difference to minus from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
