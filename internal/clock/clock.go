// Package clock provides the time source and the date formats shared by the
// storage backends and the loan workflow.
package clock

import (
	"fmt"
	"time"
)

// Wire formats for persisted timestamps.
const (
	// DateTimeLayout is the timestamp format used in CSV files.
	DateTimeLayout = "2006-01-02 15:04:05"

	// DateLayout is the day-only format used in user-facing messages.
	DateLayout = "2006-01-02"
)

// Clock abstracts the time source so workflows can be tested against a
// fixed point in time.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation of Clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Midnight truncates t to local midnight.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns local midnight of the clock's current day.
func Today(c Clock) time.Time {
	return Midnight(c.Now())
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// FormatDateTime renders t in the persisted timestamp format.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatDate renders t as a day-only string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateTime parses a persisted timestamp in the local timezone.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
