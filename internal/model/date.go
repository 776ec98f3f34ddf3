package model

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey is a calendar day in the reference zone, formatted YYYY-MM-DD.
// String order matches chronological order.
type DateKey string

func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKeyOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseDateKey(raw string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return DateKeyOf(t), nil
}

func (d DateKey) IsValid() bool {
	_, err := time.Parse(dateKeyLayout, string(d))
	return err == nil
}

// Time returns local midnight of d in loc.
func (d DateKey) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(dateKeyLayout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays moves by calendar days, independent of DST.
func (d DateKey) AddDays(n int) DateKey {
	t, err := time.Parse(dateKeyLayout, string(d))
	if err != nil {
		return d
	}
	return DateKeyOf(t.AddDate(0, 0, n))
}

func (d DateKey) Before(other DateKey) bool { return d < other }

func (d DateKey) After(other DateKey) bool { return d > other }

func (d DateKey) String() string { return string(d) }
