package holiday

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk and user-facing date format.
const DateLayout = "2006-01-02"

// parseLayout also accepts unpadded month and day, as in 2024-3-14.
const parseLayout = "2006-1-2"

type Holiday struct {
	Name string
	Date time.Time // midnight UTC
}

// New builds a Holiday for the given calendar day. Out-of-range components
// (Feb 30, month 13) are rejected instead of being normalised by time.Date.
func New(name string, year int, month time.Month, day int) (Holiday, error) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return Holiday{}, &ValidationError{Year: year, Month: int(month), Day: day}
	}
	return Holiday{Name: name, Date: d}, nil
}

// On builds a Holiday from the calendar day of t, dropping the clock.
func On(name string, t time.Time) Holiday {
	return Holiday{Name: name, Date: Day(t)}
}

// Parse builds a Holiday from a YYYY-MM-DD string.
func Parse(name, date string) (Holiday, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Holiday{}, err
	}
	return Holiday{Name: name, Date: d}, nil
}

// ParseDate parses a YYYY-MM-DD string into a midnight UTC time. Month and
// day may be unpadded.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(parseLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return d, nil
}

// Day truncates t to its calendar day in UTC, keeping t's wall date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (h Holiday) Same(name string, date time.Time) bool {
	return h.Name == name && h.Date.Equal(Day(date))
}

// DateString returns the date as YYYY-MM-DD.
func (h Holiday) DateString() string {
	return h.Date.Format(DateLayout)
}

func (h Holiday) String() string {
	return fmt.Sprintf("%s (%s)", h.Name, h.DateString())
}
