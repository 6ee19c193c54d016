package study

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/itineris/internal/calendar"
)

// Sessions counts completed focus sessions per calendar day.
type Sessions struct {
	days map[string]int
}

func NewSessions() *Sessions {
	return &Sessions{days: make(map[string]int)}
}

// NewSessionsFrom copies counts, dropping negative entries.
func NewSessionsFrom(days map[string]int) *Sessions {
	s := NewSessions()
	for k, n := range days {
		if n >= 0 {
			s.days[k] = n
		}
	}
	return s
}

// RecordSession adds one completed session to date.
func (s *Sessions) RecordSession(date time.Time) {
	s.days[calendar.FormatDateKey(date)]++
}

// SessionsOn returns the sessions completed on date.
func (s *Sessions) SessionsOn(date time.Time) int {
	return s.days[calendar.FormatDateKey(date)]
}

// Days returns the day keys with a recorded count, ascending.
func (s *Sessions) Days() []string {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the count stored under a day key.
func (s *Sessions) Count(dayKey string) int {
	return s.days[dayKey]
}

// Merge keeps the larger count of each day.
func (s *Sessions) Merge(other *Sessions) {
	if other == nil {
		return
	}
	for k, n := range other.days {
		if n > s.days[k] {
			s.days[k] = n
		}
	}
}

func (s *Sessions) Clone() *Sessions {
	return NewSessionsFrom(s.days)
}

func (s *Sessions) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.days)
}

func (s *Sessions) UnmarshalJSON(data []byte) error {
	var in map[string]int
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode sessions: %w", err)
	}
	*s = *NewSessionsFrom(in)
	return nil
}
