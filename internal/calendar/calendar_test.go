package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestDayIndex(t *testing.T) {
	// 2025-03-03 is a Monday.
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, DayIndex(date(2025, time.March, 3+i)))
	}
}

func TestWeekStartKey(t *testing.T) {
	cases := map[string]WeekKey{
		"2025-03-03": "2025-03-03", // Monday
		"2025-03-05": "2025-03-03", // Wednesday
		"2025-03-09": "2025-03-03", // Sunday belongs to the previous Monday
		"2025-03-10": "2025-03-10",
		"2026-01-01": "2025-12-29", // crosses a year boundary
		"2024-03-01": "2024-02-26", // leap year
	}
	for in, want := range cases {
		d, err := ParseDateKey(in, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, want, WeekStartKey(d), in)
	}
}

func TestWeekStartIsAlwaysMonday(t *testing.T) {
	start := date(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		idx := DayIndex(d)
		require.GreaterOrEqual(t, idx, 0)
		require.LessOrEqual(t, idx, 6)

		ws, err := ParseDateKey(WeekStartKey(d).String(), time.UTC)
		require.NoError(t, err)
		require.Equal(t, time.Monday, ws.Weekday(), d)
		require.Equal(t, idx, int(StartOfDay(d).Sub(ws).Hours()/24), d)
	}
}

func TestFormatDateKeyUsesOwnLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 23:30 UTC on the 4th is already the 5th in Paris.
	utc := time.Date(2025, time.March, 4, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-04", FormatDateKey(utc))
	assert.Equal(t, "2025-03-05", FormatDateKey(utc.In(paris)))
}

func TestFormatDateKeyZeroPads(t *testing.T) {
	assert.Equal(t, "0999-01-02", FormatDateKey(time.Date(999, time.January, 2, 0, 0, 0, 0, time.UTC)))
}

func TestAddDaysAcrossDST(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// Clocks go forward on 2025-03-30.
	d := time.Date(2025, time.March, 29, 0, 0, 0, 0, paris)
	next := AddDays(d, 1)
	assert.Equal(t, "2025-03-30", FormatDateKey(next))
	assert.Equal(t, "2025-03-31", FormatDateKey(AddDays(next, 1)))
	assert.Equal(t, 0, next.Hour())
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(date(2025, time.March, 6), 0)
	assert.Equal(t, "2025-03-03", FormatDateKey(dates[0]))
	assert.Equal(t, "2025-03-09", FormatDateKey(dates[6]))

	prev := WeekDates(date(2025, time.March, 6), -1)
	assert.Equal(t, "2025-02-24", FormatDateKey(prev[0]))
}

func TestWeekRangeLabel(t *testing.T) {
	assert.Equal(t, "Mar 3 – 9, 2025", WeekRangeLabel(WeekDates(date(2025, time.March, 4), 0)))
	assert.Equal(t, "Mar 31 – Apr 6, 2025", WeekRangeLabel(WeekDates(date(2025, time.April, 1), 0)))
	assert.Equal(t, "Dec 29, 2025 – Jan 4, 2026", WeekRangeLabel(WeekDates(date(2026, time.January, 1), 0)))
}

func TestParseDateKeyInvalid(t *testing.T) {
	_, err := ParseDateKey("2025-13-01", time.UTC)
	assert.Error(t, err)
}

func TestShortDayName(t *testing.T) {
	assert.Equal(t, "Mon", ShortDayName(date(2025, time.March, 3)))
	assert.Equal(t, "Sun", ShortDayName(date(2025, time.March, 9)))
}
