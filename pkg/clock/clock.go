// Package clock holds the calendar arithmetic used by the tracker: dates are
// civil days in "YYYY-MM-DD" form and "today" comes from an injectable Clock.
package clock

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

const day = 24 * time.Hour

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Tests use it to pin "today".
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// FixedOn pins the clock to noon of the given date.
func FixedOn(date string) FixedClock {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return FixedClock{T: t.Add(12 * time.Hour)}
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar date of c in its own location.
func Today(c Clock) string {
	return FormatDate(c.Now())
}

// AddDays shifts a date string by n whole days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysBetween counts whole calendar days from `from` to `to`; negative when `to` is earlier.
func DaysBetween(from string, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(float64(t.Sub(f)) / float64(day))), nil
}

// DaysSince counts whole days elapsed between date and today.
func DaysSince(date string, c Clock) (int, error) {
	return DaysBetween(date, Today(c))
}
