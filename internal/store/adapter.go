package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/itineris/internal/study"
	"github.com/sadopc/itineris/internal/tasks"
)

const (
	keyPrefix = "itineris"
	// GuestUser namespaces data when no identity is configured.
	GuestUser = "guest"

	entityStudyMinutes = "study_minutes"
	entitySessions     = "sessions_completed"
	entityTasks        = "tasks"
)

// Key returns the kv key holding entity for userID.
func Key(entity, userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = GuestUser
	}
	return keyPrefix + ":" + entity + ":" + userID
}

// Adapter persists one user's ledger, session counter and tasks as JSON
// documents in the kv table. Loads report absent data as a nil value and a
// nil error.
type Adapter struct {
	store  *Store
	userID string
	now    func() time.Time
}

// NewAdapter binds s to userID. A nil clock uses time.Now.
func NewAdapter(s *Store, userID string, clock func() time.Time) *Adapter {
	if clock == nil {
		clock = time.Now
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = GuestUser
	}
	return &Adapter{store: s, userID: userID, now: clock}
}

func (a *Adapter) UserID() string { return a.userID }

func (a *Adapter) load(entity string) ([]byte, bool, error) {
	v, ok, err := a.store.Get(Key(entity, a.userID))
	if err != nil || !ok {
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (a *Adapter) save(entity string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", entity, err)
	}
	return a.store.Put(Key(entity, a.userID), string(data))
}

func (a *Adapter) LoadLedger() (*study.Ledger, error) {
	raw, ok, err := a.load(entityStudyMinutes)
	if err != nil || !ok {
		return nil, err
	}
	return decodeLedger(raw)
}

func (a *Adapter) SaveLedger(l *study.Ledger) error {
	return a.save(entityStudyMinutes, l)
}

func (a *Adapter) LoadSessions() (*study.Sessions, error) {
	raw, ok, err := a.load(entitySessions)
	if err != nil || !ok {
		return nil, err
	}
	return decodeSessions(raw, a.now())
}

func (a *Adapter) SaveSessions(s *study.Sessions) error {
	return a.save(entitySessions, s)
}

func (a *Adapter) LoadTasks() ([]tasks.Task, error) {
	raw, ok, err := a.load(entityTasks)
	if err != nil || !ok {
		return nil, err
	}
	return decodeTasks(raw)
}

func (a *Adapter) SaveTasks(ts []tasks.Task) error {
	if ts == nil {
		ts = []tasks.Task{}
	}
	return a.save(entityTasks, ts)
}

// LogCountdown records a completed countdown in the history table.
func (a *Adapter) LogCountdown(mode string, minutes int, at time.Time) error {
	_, err := a.store.LogCountdown(a.userID, mode, minutes, at)
	return err
}
