package study

import (
	"time"

	"github.com/sadopc/itineris/internal/calendar"
)

// MaxStreakDays bounds how far back ComputeStreak looks.
const MaxStreakDays = 365

// ComputeStreak counts consecutive days with studied minutes, walking back
// from today. An empty today does not break the streak; any earlier empty day
// ends it.
func ComputeStreak(l *Ledger, today time.Time) int {
	day := calendar.StartOfDay(today)
	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		if l.MinutesOnDate(calendar.AddDays(day, -i)) > 0 {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}
