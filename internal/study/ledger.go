// Package study keeps the per-week study-minute ledger, the per-day focus
// session counter and the streak derived from them.
package study

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sadopc/itineris/internal/calendar"
)

// Week holds accumulated minutes for Monday (0) through Sunday (6).
type Week [7]float64

// Total sums the week.
func (w Week) Total() float64 {
	var sum float64
	for _, m := range w {
		sum += m
	}
	return sum
}

// Ledger maps week keys to accumulated minutes per weekday. Buckets never
// decrease and never hold negative values.
type Ledger struct {
	weeks map[calendar.WeekKey]Week
}

func NewLedger() *Ledger {
	return &Ledger{weeks: make(map[calendar.WeekKey]Week)}
}

// NewLedgerFrom copies weeks into a new ledger, replacing negative or
// non-finite values with zero.
func NewLedgerFrom(weeks map[calendar.WeekKey]Week) *Ledger {
	l := NewLedger()
	for k, w := range weeks {
		for i, m := range w {
			w[i] = sanitize(m)
		}
		l.weeks[k] = w
	}
	return l
}

func sanitize(m float64) float64 {
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return 0
	}
	return m
}

// AddMinutes banks minutes on date's bucket. Non-positive and non-finite
// amounts are ignored.
func (l *Ledger) AddMinutes(date time.Time, minutes float64) {
	if !(minutes > 0) || math.IsInf(minutes, 0) {
		return
	}
	key := calendar.WeekStartKey(date)
	w := l.weeks[key]
	w[calendar.DayIndex(date)] += minutes
	l.weeks[key] = w
}

// EnsureWeek creates an all-zero entry for date's week when missing.
func (l *Ledger) EnsureWeek(date time.Time) {
	key := calendar.WeekStartKey(date)
	if _, ok := l.weeks[key]; !ok {
		l.weeks[key] = Week{}
	}
}

// TotalForWeek returns the sum of the week's buckets, 0 for unseen weeks.
func (l *Ledger) TotalForWeek(key calendar.WeekKey) float64 {
	return l.weeks[key].Total()
}

// MinutesOnDate returns the minutes banked on date, 0 when unseen.
func (l *Ledger) MinutesOnDate(date time.Time) float64 {
	return l.weeks[calendar.WeekStartKey(date)][calendar.DayIndex(date)]
}

// Week returns a copy of the week's buckets.
func (l *Ledger) Week(key calendar.WeekKey) Week {
	return l.weeks[key]
}

// Weeks returns the known week keys in ascending order.
func (l *Ledger) Weeks() []calendar.WeekKey {
	keys := make([]calendar.WeekKey, 0, len(l.weeks))
	for k := range l.weeks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len reports the number of weeks held.
func (l *Ledger) Len() int { return len(l.weeks) }

// Merge folds other into l taking the larger value of each bucket, so that
// merging never lowers a bucket.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	for k, ow := range other.weeks {
		w := l.weeks[k]
		for i := range w {
			w[i] = math.Max(w[i], ow[i])
		}
		l.weeks[k] = w
	}
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	for k, w := range l.weeks {
		c.weeks[k] = w
	}
	return c
}

func (l *Ledger) MarshalJSON() ([]byte, error) {
	out := make(map[string][7]float64, len(l.weeks))
	for k, w := range l.weeks {
		out[string(k)] = w
	}
	return json.Marshal(out)
}

func (l *Ledger) UnmarshalJSON(data []byte) error {
	var in map[string][]float64
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}
	weeks := make(map[calendar.WeekKey]Week, len(in))
	for k, values := range in {
		var w Week
		copy(w[:], values)
		weeks[calendar.WeekKey(k)] = w
	}
	*l = *NewLedgerFrom(weeks)
	return nil
}
