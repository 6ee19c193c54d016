// Package remote syncs a user's study data with an itineris sync server.
// The client side is a small HTTP client plus a background Syncer; the
// server side keeps one snapshot per user in badger.
package remote

import (
	"time"

	"github.com/sadopc/itineris/internal/study"
	"github.com/sadopc/itineris/internal/tasks"
)

// Snapshot is everything the sync server keeps for one user.
type Snapshot struct {
	// Revision is assigned by the server on every save.
	Revision     string          `json:"revision,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
	StudyMinutes *study.Ledger   `json:"study_minutes"`
	Sessions     *study.Sessions `json:"sessions_completed"`
	Tasks        []tasks.Task    `json:"tasks"`
}
