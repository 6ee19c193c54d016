// Package calendar maps calendar dates to the week and day keys used by the
// study ledger. Every function works on the calendar date of t in t's own
// location; callers pass local time so keys match across the application.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the layout of day and week keys.
const DateLayout = "2006-01-02"

// WeekKey identifies a week by the date of its Monday.
type WeekKey string

func (k WeekKey) String() string { return string(k) }

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping it at midnight. Safe across
// daylight-saving transitions.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// DayIndex returns 0 for Monday through 6 for Sunday.
func DayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// WeekStart returns midnight of the Monday that starts t's week.
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	offset := 1 - wd
	if wd == 0 {
		offset = -6
	}
	return AddDays(t, offset)
}

// WeekStartKey returns the key of the week containing t.
func WeekStartKey(t time.Time) WeekKey {
	return WeekKey(FormatDateKey(WeekStart(t)))
}

// FormatDateKey formats t's calendar date as zero-padded YYYY-MM-DD.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", s, err)
	}
	return t, nil
}

// WeekDates returns Monday through Sunday of the week offsetWeeks away from
// the week containing t.
func WeekDates(t time.Time, offsetWeeks int) [7]time.Time {
	monday := AddDays(WeekStart(t), 7*offsetWeeks)
	var dates [7]time.Time
	for i := range dates {
		dates[i] = AddDays(monday, i)
	}
	return dates
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return FormatDateKey(a) == FormatDateKey(b)
}

// ShortDayName returns "Mon".."Sun".
func ShortDayName(t time.Time) string {
	return t.Weekday().String()[:3]
}

// WeekRangeLabel renders a human label for a Monday..Sunday range, e.g.
// "Mar 3 – 9, 2025" or "Dec 29, 2025 – Jan 4, 2026".
func WeekRangeLabel(dates [7]time.Time) string {
	start, end := dates[0], dates[6]
	switch {
	case start.Month() == end.Month() && start.Year() == end.Year():
		return fmt.Sprintf("%s %d – %d, %d", start.Month().String()[:3], start.Day(), end.Day(), end.Year())
	case start.Year() == end.Year():
		return fmt.Sprintf("%s %d – %s %d, %d", start.Month().String()[:3], start.Day(), end.Month().String()[:3], end.Day(), end.Year())
	default:
		return fmt.Sprintf("%s %d, %d – %s %d, %d",
			start.Month().String()[:3], start.Day(), start.Year(),
			end.Month().String()[:3], end.Day(), end.Year())
	}
}
