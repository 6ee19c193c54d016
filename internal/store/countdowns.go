package store

import (
	"fmt"
	"time"
)

func (s *Store) LogCountdown(userID, mode string, minutes int, completedAt time.Time) (*Countdown, error) {
	res, err := s.db.Exec(
		`INSERT INTO countdowns (user_id, mode, minutes, completed_at) VALUES (?, ?, ?, ?)`,
		userID, mode, minutes, completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("log countdown: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Countdown{
		ID:          id,
		UserID:      userID,
		Mode:        mode,
		Minutes:     minutes,
		CompletedAt: completedAt.UTC().Truncate(time.Second),
	}, nil
}

// ListCountdowns returns userID's completed countdowns in [from, to), oldest
// first.
func (s *Store) ListCountdowns(userID string, from, to time.Time) ([]Countdown, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, mode, minutes, completed_at
		FROM countdowns
		WHERE user_id = ? AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at, id`,
		userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("list countdowns: %w", err)
	}
	defer rows.Close()

	var out []Countdown
	for rows.Next() {
		var c Countdown
		var completedAt string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Mode, &c.Minutes, &completedAt); err != nil {
			return nil, err
		}
		c.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountdownStats counts userID's completed countdowns of mode in [from, to)
// and sums their configured minutes.
func (s *Store) CountdownStats(userID, mode string, from, to time.Time) (completed int, minutes int64, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(minutes), 0)
		FROM countdowns
		WHERE user_id = ? AND mode = ?
		  AND completed_at >= ? AND completed_at < ?`,
		userID, mode, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&completed, &minutes)
	return
}
