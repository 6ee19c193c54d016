package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/remote"
	"github.com/sadopc/itineris/internal/store"
)

// session is an open database and the dashboard loaded from it.
type session struct {
	store *store.Store
	dash  *dashboard.Dashboard
}

func openSession(ctx context.Context, o *options, logger *slog.Logger) (*session, error) {
	path := o.dbPath
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	adapter := store.NewAdapter(s, o.userID, nil)
	opts := dashboard.Options{
		Store:      adapter,
		UserID:     adapter.UserID(),
		Logger:     logger,
		Durations:  s.Durations(),
		WeeklyGoal: s.IntSetting(store.SettingWeeklyGoalMinutes, dashboard.DefaultWeeklyGoal),
	}
	if o.syncURL != "" {
		opts.Remote = remote.NewClient(o.syncURL, nil)
	}

	return &session{
		store: s,
		dash:  dashboard.New(ctx, opts),
	}, nil
}

// Close flushes pending sync work and closes the database.
func (s *session) Close() error {
	s.dash.Close()
	return s.store.Close()
}

// openLogFile appends structured logs to path, or to the default log file
// when path is empty.
func openLogFile(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		var err error
		if path, err = store.DefaultLogPath(); err != nil {
			return nil, nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), f.Close, nil
}

// consoleLogger only lets warnings through so command output stays clean.
func consoleLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
