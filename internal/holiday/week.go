package holiday

import "time"

// WeekStart returns the Monday of ISO week (year, week).
func WeekStart(year, week int) time.Time {
	// Jan 4 is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(week-1)*7)
}

// WeekDays returns Monday through Sunday of ISO week (year, week).
func WeekDays(year, week int) []time.Time {
	start := WeekStart(year, week)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeeksInYear returns 52 or 53.
func WeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

func ValidWeek(year, week int) bool {
	return week >= 1 && week <= WeeksInYear(year)
}
