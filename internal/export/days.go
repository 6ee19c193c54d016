package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/sadopc/itineris/internal/study"
)

// Day is one calendar day of study history.
type Day struct {
	Date     string
	Weekday  string
	Minutes  float64
	Sessions int
}

// Days flattens the ledger and the session counter into one row per day
// that has study minutes or sessions, oldest first. Ledger weeks whose key
// is not a valid date are skipped.
func Days(l *study.Ledger, s *study.Sessions) []Day {
	byDate := make(map[string]*Day)
	get := func(key string, date time.Time) *Day {
		d, ok := byDate[key]
		if !ok {
			d = &Day{Date: key, Weekday: date.Weekday().String()}
			byDate[key] = d
		}
		return d
	}

	if l != nil {
		for _, wk := range l.Weeks() {
			monday, err := calendar.ParseDateKey(string(wk), time.UTC)
			if err != nil {
				continue
			}
			for i, m := range l.Week(wk) {
				if m <= 0 {
					continue
				}
				date := calendar.AddDays(monday, i)
				get(calendar.FormatDateKey(date), date).Minutes += m
			}
		}
	}
	if s != nil {
		for _, key := range s.Days() {
			n := s.Count(key)
			if n <= 0 {
				continue
			}
			date, err := calendar.ParseDateKey(key, time.UTC)
			if err != nil {
				continue
			}
			get(key, date).Sessions += n
		}
	}

	out := make([]Day, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// formatDuration renders minutes as hh:mm:ss.
func formatDuration(minutes float64) string {
	secs := int64(minutes*60 + 0.5)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
