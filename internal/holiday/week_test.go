package holiday_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"holiday-manager/internal/holiday"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		year, week int
		want       string
	}{
		{2024, 1, "2024-01-01"},
		{2024, 52, "2024-12-23"},
		{2025, 1, "2024-12-30"},
		{2021, 1, "2021-01-04"},
		{2020, 53, "2020-12-28"},
	}
	for _, tc := range cases {
		got := holiday.WeekStart(tc.year, tc.week)
		require.Equal(t, tc.want, got.Format(holiday.DateLayout), "%d-W%02d", tc.year, tc.week)
		require.Equal(t, time.Monday, got.Weekday())
		y, w := got.ISOWeek()
		require.Equal(t, [2]int{tc.year, tc.week}, [2]int{y, w})
	}
}

func TestWeekDays(t *testing.T) {
	days := holiday.WeekDays(2024, 1)
	require.Len(t, days, 7)
	require.Equal(t, "2024-01-01", days[0].Format(holiday.DateLayout))
	require.Equal(t, "2024-01-07", days[6].Format(holiday.DateLayout))
}

func TestWeeksInYear(t *testing.T) {
	require.Equal(t, 53, holiday.WeeksInYear(2020))
	require.Equal(t, 52, holiday.WeeksInYear(2024))
	require.Equal(t, 53, holiday.WeeksInYear(2026))
	require.True(t, holiday.ValidWeek(2026, 53))
	require.False(t, holiday.ValidWeek(2024, 53))
	require.False(t, holiday.ValidWeek(2024, 0))
}

func TestWeekWorkingDays(t *testing.T) {
	l := holiday.NewList()
	l.Add(mustParse(t, "New Year", "2024-01-01"))
	l.Add(mustParse(t, "Weekend Party", "2024-01-06"))
	require.Equal(t, 4, holiday.WeekWorkingDays(l, 2024, 1))
	require.Equal(t, 5, holiday.WeekWorkingDays(l, 2024, 2))

	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 0, holiday.WorkingDays(l, from, from.AddDate(0, 0, -1)))
}
