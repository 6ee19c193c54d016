package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sadopc/itineris/internal/timer"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// IntSetting reads key as an integer, returning fallback when the key is
// missing or not a positive number.
func (s *Store) IntSetting(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Durations returns the configured countdown length of each mode.
func (s *Store) Durations() timer.Durations {
	return timer.Durations{
		timer.ModeFocus:      s.IntSetting(SettingFocusMinutes, timer.ModeFocus.DefaultMinutes()),
		timer.ModeShortBreak: s.IntSetting(SettingShortBreakMinutes, timer.ModeShortBreak.DefaultMinutes()),
		timer.ModeLongBreak:  s.IntSetting(SettingLongBreakMinutes, timer.ModeLongBreak.DefaultMinutes()),
	}
}
