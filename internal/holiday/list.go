package holiday

import (
	"fmt"
	"slices"
	"time"
)

// List is an ordered set of holidays keyed by name and date. Entries are
// kept sorted by date; entries on the same date keep insertion order.
// A List is not safe for concurrent use.
type List struct {
	items []Holiday
}

func NewList() *List {
	return &List{}
}

// Add inserts h unless an entry with the same name and date exists. The
// date is reduced to its calendar day first.
func (l *List) Add(h Holiday) bool {
	h.Date = Day(h.Date)
	if _, ok := l.FindOn(h.Name, h.Date); ok {
		return false
	}
	l.items = append(l.items, h)
	slices.SortStableFunc(l.items, func(a, b Holiday) int {
		return a.Date.Compare(b.Date)
	})
	return true
}

// Remove deletes the entry matching name and date.
func (l *List) Remove(name string, date time.Time) bool {
	i := slices.IndexFunc(l.items, func(h Holiday) bool { return h.Same(name, date) })
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Find returns the earliest entry with the given name.
func (l *List) Find(name string) (Holiday, bool) {
	for _, h := range l.items {
		if h.Name == name {
			return h, true
		}
	}
	return Holiday{}, false
}

// FindOn returns the entry with the given name on the given day.
func (l *List) FindOn(name string, date time.Time) (Holiday, bool) {
	for _, h := range l.items {
		if h.Same(name, date) {
			return h, true
		}
	}
	return Holiday{}, false
}

// FilterByWeek returns the entries falling in ISO week (year, week).
func (l *List) FilterByWeek(year, week int) []Holiday {
	var out []Holiday
	for _, h := range l.items {
		y, w := h.Date.ISOWeek()
		if y == year && w == week {
			out = append(out, h)
		}
	}
	return out
}

// Between returns the entries with from <= date <= to.
func (l *List) Between(from, to time.Time) []Holiday {
	from, to = Day(from), Day(to)
	var out []Holiday
	for _, h := range l.items {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out
}

// Next returns the first entry on or after t.
func (l *List) Next(t time.Time) (Holiday, bool) {
	day := Day(t)
	for _, h := range l.items {
		if !h.Date.Before(day) {
			return h, true
		}
	}
	return Holiday{}, false
}

func (l *List) Len() int { return len(l.items) }

// All returns a copy of the entries in date order.
func (l *List) All() []Holiday {
	return slices.Clone(l.items)
}

// Years counts entries per calendar year.
func (l *List) Years() map[int]int {
	out := make(map[int]int)
	for _, h := range l.items {
		out[h.Date.Year()]++
	}
	return out
}

// Document serialises the list in date order.
func (l *List) Document() Document {
	doc := Document{Holidays: make([]Record, 0, len(l.items))}
	for _, h := range l.items {
		doc.Holidays = append(doc.Holidays, Record{Name: h.Name, Date: h.DateString()})
	}
	return doc
}

// Load adds every record of doc. Records with a malformed date or that are
// already present are skipped and reported; the rest are still loaded.
func (l *List) Load(doc Document) []Issue {
	var issues []Issue
	for i, r := range doc.Holidays {
		h, err := Parse(r.Name, r.Date)
		if err != nil {
			issues = append(issues, Issue{Index: i, Name: r.Name, Date: r.Date, Err: err})
			continue
		}
		if !l.Add(h) {
			issues = append(issues, Issue{
				Index: i,
				Name:  r.Name,
				Date:  r.Date,
				Err:   fmt.Errorf("%s: %w", h, ErrDuplicate),
			})
		}
	}
	return issues
}
