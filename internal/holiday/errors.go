package holiday

import (
	"errors"
	"fmt"
)

// ErrDuplicate marks a record whose name and date already exist in a List.
var ErrDuplicate = errors.New("holiday already exists")

// ValidationError reports date components that do not form a calendar date.
type ValidationError struct {
	Year, Month, Day int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// ParseError reports a date string that is not in YYYY-MM-DD form.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed date %q: expected YYYY-MM-DD", e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Issue describes one record that Load skipped.
type Issue struct {
	Index int
	Name  string
	Date  string
	Err   error
}

func (i Issue) Error() string {
	return fmt.Sprintf("record %d (%s %s): %v", i.Index, i.Name, i.Date, i.Err)
}

func (i Issue) Unwrap() error { return i.Err }

// Duplicate reports whether the issue is a skipped duplicate rather than bad data.
func (i Issue) Duplicate() bool { return errors.Is(i.Err, ErrDuplicate) }
