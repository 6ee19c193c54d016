package study

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-03 is a Monday.
var monday = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

// ============================================================
// Ledger
// ============================================================

func TestAddMinutesAccumulates(t *testing.T) {
	l := NewLedger()
	l.AddMinutes(monday, 30)
	l.AddMinutes(monday, 15)

	assert.Equal(t, 45.0, l.MinutesOnDate(monday))
	assert.Equal(t, 45.0, l.TotalForWeek(calendar.WeekStartKey(monday)))
}

func TestAddMinutesIgnoresNonPositive(t *testing.T) {
	l := NewLedger()
	l.AddMinutes(monday, 0)
	l.AddMinutes(monday, -5)
	l.AddMinutes(monday, math.NaN())
	l.AddMinutes(monday, math.Inf(1))

	assert.Equal(t, 0.0, l.MinutesOnDate(monday))
	assert.Equal(t, 0, l.Len())
}

func TestAddMinutesIsMonotonic(t *testing.T) {
	l := NewLedger()
	amounts := []float64{1, -3, 0.5, 0, 12, -100, 0.01}
	prev := 0.0
	for _, m := range amounts {
		l.AddMinutes(monday, m)
		got := l.MinutesOnDate(monday)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestTotalForWeekSpansDays(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 7; i++ {
		l.AddMinutes(calendar.AddDays(monday, i), float64(i+1))
	}
	// The following Monday belongs to another week.
	l.AddMinutes(calendar.AddDays(monday, 7), 100)

	key := calendar.WeekStartKey(monday)
	assert.Equal(t, 28.0, l.TotalForWeek(key))
	assert.Equal(t, 28.0, l.TotalForWeek(key), "reads are idempotent")
	assert.Equal(t, 7.0, l.Week(key)[6])
	assert.Equal(t, 0.0, l.TotalForWeek("1999-01-04"))
}

func TestEnsureWeek(t *testing.T) {
	l := NewLedger()
	l.EnsureWeek(monday)
	assert.Equal(t, []calendar.WeekKey{"2025-03-03"}, l.Weeks())

	l.AddMinutes(monday, 5)
	l.EnsureWeek(monday)
	assert.Equal(t, 5.0, l.MinutesOnDate(monday), "existing week untouched")
}

func TestNewLedgerFromSanitizes(t *testing.T) {
	l := NewLedgerFrom(map[calendar.WeekKey]Week{
		"2025-03-03": {1, -2, math.NaN(), 4, 0, 0, math.Inf(1)},
	})
	assert.Equal(t, Week{1, 0, 0, 4, 0, 0, 0}, l.Week("2025-03-03"))
}

func TestLedgerMergeKeepsMax(t *testing.T) {
	a := NewLedger()
	a.AddMinutes(monday, 10)
	b := NewLedger()
	b.AddMinutes(monday, 4)
	b.AddMinutes(calendar.AddDays(monday, 1), 7)
	b.AddMinutes(calendar.AddDays(monday, -7), 3)

	a.Merge(b)
	assert.Equal(t, 10.0, a.MinutesOnDate(monday))
	assert.Equal(t, 7.0, a.MinutesOnDate(calendar.AddDays(monday, 1)))
	assert.Equal(t, 3.0, a.MinutesOnDate(calendar.AddDays(monday, -7)))
	a.Merge(nil)
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	l := NewLedger()
	l.AddMinutes(monday, 1)
	c := l.Clone()
	c.AddMinutes(monday, 1)
	assert.Equal(t, 1.0, l.MinutesOnDate(monday))
	assert.Equal(t, 2.0, c.MinutesOnDate(monday))
}

func TestLedgerJSON(t *testing.T) {
	l := NewLedger()
	l.AddMinutes(monday, 12.5)

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-03-03":[12.5,0,0,0,0,0,0]}`, string(data))

	var decoded Ledger
	require.NoError(t, json.Unmarshal([]byte(`{"2025-03-03":[1,2,-3],"2025-03-10":[0,0,0,0,0,0,0,9]}`), &decoded))
	assert.Equal(t, Week{1, 2, 0, 0, 0, 0, 0}, decoded.Week("2025-03-03"))
	assert.Equal(t, Week{}, decoded.Week("2025-03-10"))

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &decoded))
}

// ============================================================
// Sessions
// ============================================================

func TestRecordSession(t *testing.T) {
	s := NewSessions()
	assert.Equal(t, 0, s.SessionsOn(monday))

	s.RecordSession(monday)
	s.RecordSession(monday.Add(3 * time.Hour))
	s.RecordSession(calendar.AddDays(monday, 1))

	assert.Equal(t, 2, s.SessionsOn(monday))
	assert.Equal(t, 1, s.SessionsOn(calendar.AddDays(monday, 1)))
	assert.Equal(t, []string{"2025-03-03", "2025-03-04"}, s.Days())
	assert.Equal(t, 2, s.Count("2025-03-03"))
}

func TestSessionsMergeAndJSON(t *testing.T) {
	a := NewSessionsFrom(map[string]int{"2025-03-03": 2, "2025-03-04": -1})
	assert.Equal(t, []string{"2025-03-03"}, a.Days())

	a.Merge(NewSessionsFrom(map[string]int{"2025-03-03": 1, "2025-03-05": 4}))
	assert.Equal(t, 2, a.Count("2025-03-03"))
	assert.Equal(t, 4, a.Count("2025-03-05"))

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-03-03":2,"2025-03-05":4}`, string(data))

	var decoded Sessions
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 4, decoded.Count("2025-03-05"))
}

// ============================================================
// Streak
// ============================================================

func TestStreakSkipsEmptyToday(t *testing.T) {
	today := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	l := NewLedger()
	l.AddMinutes(calendar.AddDays(today, -1), 20)
	l.AddMinutes(calendar.AddDays(today, -2), 5)
	// today-3 is empty
	l.AddMinutes(calendar.AddDays(today, -4), 60)

	assert.Equal(t, 2, ComputeStreak(l, today))
}

func TestStreakTenDays(t *testing.T) {
	today := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	l := NewLedger()
	for i := 0; i < 10; i++ {
		l.AddMinutes(calendar.AddDays(today, -i), 1)
	}
	assert.Equal(t, 10, ComputeStreak(l, today))
}

func TestStreakGapYesterdayEnds(t *testing.T) {
	today := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	l := NewLedger()
	l.AddMinutes(today, 5)
	l.AddMinutes(calendar.AddDays(today, -2), 5)
	assert.Equal(t, 1, ComputeStreak(l, today))
}

func TestStreakEmptyLedger(t *testing.T) {
	assert.Equal(t, 0, ComputeStreak(NewLedger(), monday))
}

func TestStreakCappedAtWalkBack(t *testing.T) {
	today := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	l := NewLedger()
	for i := 0; i < 400; i++ {
		l.AddMinutes(calendar.AddDays(today, -i), 1)
	}
	assert.Equal(t, MaxStreakDays, ComputeStreak(l, today))
}
