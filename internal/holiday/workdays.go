package holiday

import "time"

// WorkingDays counts Monday-Friday days in [from, to] that are not holidays
// in l. Returns 0 when to is before from.
func WorkingDays(l *List, from, to time.Time) int {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return 0
	}
	off := make(map[string]struct{})
	for _, h := range l.Between(from, to) {
		off[h.DateString()] = struct{}{}
	}
	n := 0
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if _, isHoliday := off[cur.Format(DateLayout)]; isHoliday {
			continue
		}
		n++
	}
	return n
}

// WeekWorkingDays counts working days in ISO week (year, week).
func WeekWorkingDays(l *List, year, week int) int {
	start := WeekStart(year, week)
	return WorkingDays(l, start, start.AddDate(0, 0, 6))
}
