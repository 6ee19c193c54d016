package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/sadopc/itineris/internal/study"
	"github.com/sadopc/itineris/internal/tasks"
)

var errUnknownShape = errors.New("unrecognised shape")

// number reads a JSON number or numeric string. ok is false for anything
// else, null included.
func number(raw json.RawMessage) (float64, bool) {
	if strings.TrimSpace(string(raw)) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// decodeLedger accepts the canonical {week: [7]minutes} object and the older
// single-week {"weekStart": k, "minutes": n} record.
func decodeLedger(raw []byte) (*study.Ledger, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("decode ledger: %w", errUnknownShape)
	}

	if ws, ok := obj["weekStart"]; ok {
		if mins, ok := obj["minutes"]; ok {
			var key string
			if err := json.Unmarshal(ws, &key); err == nil && key != "" {
				n, _ := number(mins)
				return study.NewLedgerFrom(map[calendar.WeekKey]study.Week{
					calendar.WeekKey(key): {n},
				}), nil
			}
		}
	}

	weeks := make(map[calendar.WeekKey]study.Week, len(obj))
	for k, v := range obj {
		var values []json.RawMessage
		if err := json.Unmarshal(v, &values); err != nil {
			continue
		}
		var w study.Week
		for i := 0; i < len(values) && i < len(w); i++ {
			w[i], _ = number(values[i])
		}
		weeks[calendar.WeekKey(k)] = w
	}
	return study.NewLedgerFrom(weeks), nil
}

// decodeSessions accepts the canonical {date: count} object and the older
// bare count, which is attributed to today.
func decodeSessions(raw []byte, today time.Time) (*study.Sessions, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		days := make(map[string]int, len(obj))
		for k, v := range obj {
			n, ok := number(v)
			if !ok || n < 0 {
				continue
			}
			days[k] = int(n)
		}
		return study.NewSessionsFrom(days), nil
	}

	n, ok := number(raw)
	if !ok || n < 0 {
		return nil, fmt.Errorf("decode sessions: %w", errUnknownShape)
	}
	return study.NewSessionsFrom(map[string]int{calendar.FormatDateKey(today): int(n)}), nil
}

func decodeTasks(raw []byte) ([]tasks.Task, error) {
	var out []tasks.Task
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return out, nil
}
