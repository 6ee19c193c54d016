package store

import "time"

type Setting struct {
	Key   string
	Value string
}

// Countdown is one completed timer run, kept as history next to the
// aggregated ledger.
type Countdown struct {
	ID          int64
	UserID      string
	Mode        string
	Minutes     int
	CompletedAt time.Time
}

// Setting keys seeded by the first migration.
const (
	SettingDisplayName       = "display_name"
	SettingWeeklyGoalMinutes = "weekly_goal_minutes"
	SettingFocusMinutes      = "focus_minutes"
	SettingShortBreakMinutes = "short_break_minutes"
	SettingLongBreakMinutes  = "long_break_minutes"
)
