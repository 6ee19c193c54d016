// Package dashboard wires the timer, the study ledger, the session counter
// and the task list together behind one owner. Every mutation is written
// through the persistence adapter and pushed to the sync server when one
// is configured. A Dashboard is not safe for concurrent use.
package dashboard

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/sadopc/itineris/internal/remote"
	"github.com/sadopc/itineris/internal/study"
	"github.com/sadopc/itineris/internal/tasks"
	"github.com/sadopc/itineris/internal/timer"
)

// DefaultWeeklyGoal is the weekly study target in minutes.
const DefaultWeeklyGoal = 240

const remoteLoadTimeout = 5 * time.Second

// Persistence loads and saves each entity. Loads report absent data as a
// nil value with a nil error.
type Persistence interface {
	LoadLedger() (*study.Ledger, error)
	SaveLedger(*study.Ledger) error
	LoadSessions() (*study.Sessions, error)
	SaveSessions(*study.Sessions) error
	LoadTasks() ([]tasks.Task, error)
	SaveTasks([]tasks.Task) error
}

// CountdownLogger is implemented by persistence adapters that also keep a
// history of completed countdowns.
type CountdownLogger interface {
	LogCountdown(mode string, minutes int, at time.Time) error
}

// Remote is the sync server.
type Remote interface {
	Load(ctx context.Context, userID string) (*remote.Snapshot, error)
	Save(ctx context.Context, userID string, snap *remote.Snapshot) error
}

type Options struct {
	// Store is optional; without it nothing outlives the process.
	Store Persistence
	// Remote is optional.
	Remote Remote
	UserID string
	Logger *slog.Logger
	// Clock defaults to time.Now. Dates are taken in the clock's location.
	Clock      func() time.Time
	Durations  timer.Durations
	WeeklyGoal int
}

type Dashboard struct {
	store  Persistence
	syncer *remote.Syncer
	userID string
	logger *slog.Logger
	now    func() time.Time

	durations  timer.Durations
	weeklyGoal int

	timer    *timer.Timer
	ledger   *study.Ledger
	sessions *study.Sessions
	tasks    *tasks.List
}

// New loads the persisted state. Load failures are logged and replaced by
// empty state; New itself never fails.
func New(ctx context.Context, opts Options) *Dashboard {
	d := &Dashboard{
		store:      opts.Store,
		userID:     opts.UserID,
		logger:     opts.Logger,
		now:        opts.Clock,
		durations:  opts.Durations,
		weeklyGoal: opts.WeeklyGoal,
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.weeklyGoal <= 0 {
		d.weeklyGoal = DefaultWeeklyGoal
	}
	d.timer = timer.New(d.durations)
	d.load()
	d.ledger.EnsureWeek(d.now())

	if opts.Remote != nil {
		d.mergeRemote(ctx, opts.Remote)
		d.syncer = remote.NewSyncer(opts.Remote, d.userID, d.logger)
	}
	return d
}

func (d *Dashboard) load() {
	d.ledger, d.sessions, d.tasks = study.NewLedger(), study.NewSessions(), tasks.NewList(nil)
	if d.store == nil {
		return
	}

	if l, err := d.store.LoadLedger(); err != nil {
		d.logger.Warn("load study minutes, starting empty", "error", err)
	} else if l != nil {
		d.ledger = l
	}
	if s, err := d.store.LoadSessions(); err != nil {
		d.logger.Warn("load sessions, starting empty", "error", err)
	} else if s != nil {
		d.sessions = s
	}
	if ts, err := d.store.LoadTasks(); err != nil {
		d.logger.Warn("load tasks, starting empty", "error", err)
	} else {
		d.tasks = tasks.NewList(ts)
	}
	d.logger.Info("loaded study data", "user", d.userID, "weeks", d.ledger.Len(), "tasks", d.tasks.Len())
}

// mergeRemote folds the server snapshot into local state. Ledger and
// session buckets keep the larger value; tasks are only taken from the
// server when there are none locally.
func (d *Dashboard) mergeRemote(ctx context.Context, r Remote) {
	ctx, cancel := context.WithTimeout(ctx, remoteLoadTimeout)
	defer cancel()

	snap, err := r.Load(ctx, d.userID)
	if err != nil {
		d.logger.Warn("remote load failed, using local data", "user", d.userID, "error", err)
		return
	}
	if snap == nil {
		return
	}
	d.ledger.Merge(snap.StudyMinutes)
	d.sessions.Merge(snap.Sessions)
	d.saveLedger()
	d.saveSessions()
	if d.tasks.Len() == 0 && len(snap.Tasks) > 0 {
		d.tasks = tasks.NewList(snap.Tasks)
		d.saveTasks()
	}
	d.logger.Info("merged remote snapshot", "user", d.userID, "revision", snap.Revision)
}

// Close flushes the pending remote save.
func (d *Dashboard) Close() {
	if d.syncer != nil {
		d.syncer.Close()
	}
}

func (d *Dashboard) saveLedger() {
	if d.store == nil {
		return
	}
	if err := d.store.SaveLedger(d.ledger); err != nil {
		d.logger.Error("save study minutes", "error", err)
	}
}

func (d *Dashboard) saveSessions() {
	if d.store == nil {
		return
	}
	if err := d.store.SaveSessions(d.sessions); err != nil {
		d.logger.Error("save sessions", "error", err)
	}
}

func (d *Dashboard) saveTasks() {
	if d.store == nil {
		return
	}
	if err := d.store.SaveTasks(d.tasks.All()); err != nil {
		d.logger.Error("save tasks", "error", err)
	}
}

func (d *Dashboard) logCountdown(res timer.Result, minutes int, at time.Time) {
	cl, ok := d.store.(CountdownLogger)
	if !ok {
		return
	}
	if err := cl.LogCountdown(string(res.Mode), minutes, at); err != nil {
		d.logger.Error("log countdown", "error", err)
	}
}

func (d *Dashboard) push() {
	if d.syncer == nil {
		return
	}
	d.syncer.Push(d.Snapshot())
}

// Snapshot copies the current state for the sync server.
func (d *Dashboard) Snapshot() *remote.Snapshot {
	return &remote.Snapshot{
		UpdatedAt:    d.now().UTC(),
		StudyMinutes: d.ledger.Clone(),
		Sessions:     d.sessions.Clone(),
		Tasks:        d.tasks.All(),
	}
}

// ============================================================
// Timer commands
// ============================================================

func (d *Dashboard) Start() bool { return d.timer.Start(d.now()) }
func (d *Dashboard) Pause() bool { return d.timer.Pause() }
func (d *Dashboard) Toggle()     { d.timer.Toggle(d.now()) }
func (d *Dashboard) Reset()      { d.timer.Reset() }

func (d *Dashboard) SwitchMode(m timer.Mode) { d.timer.SwitchMode(m) }
func (d *Dashboard) BeginEdit()              { d.timer.BeginEdit() }
func (d *Dashboard) CancelEdit()             { d.timer.CancelEdit() }

func (d *Dashboard) CommitEdit(input string) bool        { return d.timer.CommitEdit(input) }
func (d *Dashboard) SetCustomDuration(input string) bool { return d.timer.SetCustomDuration(input) }

// SetDurations replaces the per-mode defaults. The current countdown is
// reset in its mode.
func (d *Dashboard) SetDurations(durations timer.Durations) {
	mode := d.timer.Mode()
	d.durations = durations
	d.timer = timer.New(durations)
	d.timer.SwitchMode(mode)
}

func (d *Dashboard) SetWeeklyGoal(minutes int) {
	if minutes > 0 {
		d.weeklyGoal = minutes
	}
}

// Tick advances a running timer to now. Focus time is banked on now's
// calendar day; a completed focus countdown counts one session.
func (d *Dashboard) Tick(now time.Time) timer.Result {
	configured := d.timer.ConfiguredMinutes()
	res := d.timer.Tick(now)
	if res.Elapsed == 0 {
		return res
	}

	if res.StudySeconds > 0 {
		d.ledger.AddMinutes(now, float64(res.StudySeconds)/60)
		d.saveLedger()
	}
	if res.Completed {
		if res.Mode == timer.ModeFocus {
			d.sessions.RecordSession(now)
			d.saveSessions()
		}
		d.logCountdown(res, configured, now)
		d.logger.Info("countdown completed", "mode", res.Mode, "minutes", configured)
	}
	if res.StudySeconds > 0 || res.Completed {
		d.push()
	}
	return res
}

// Run ticks the timer every interval until ctx is cancelled or the timer
// stops running. onTick may be nil.
func (d *Dashboard) Run(ctx context.Context, interval time.Duration, onTick func(timer.Result)) error {
	if !d.timer.Running() {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			res := d.Tick(d.now())
			if onTick != nil {
				onTick(res)
			}
			if !d.timer.Running() {
				return nil
			}
		}
	}
}

// ============================================================
// Timer queries
// ============================================================

func (d *Dashboard) Mode() timer.Mode       { return d.timer.Mode() }
func (d *Dashboard) State() timer.State     { return d.timer.State() }
func (d *Dashboard) Running() bool          { return d.timer.Running() }
func (d *Dashboard) Remaining() int         { return d.timer.Remaining() }
func (d *Dashboard) Display() string        { return d.timer.Display() }
func (d *Dashboard) Progress() float64      { return d.timer.Progress() }
func (d *Dashboard) ConfiguredMinutes() int { return d.timer.ConfiguredMinutes() }

func (d *Dashboard) DefaultMinutes(m timer.Mode) int { return d.timer.DefaultMinutes(m) }

// ============================================================
// Study queries
// ============================================================

func (d *Dashboard) Now() time.Time { return d.now() }

func (d *Dashboard) UserID() string { return d.userID }

func (d *Dashboard) TotalForWeek(key calendar.WeekKey) float64 {
	return d.ledger.TotalForWeek(key)
}

func (d *Dashboard) MinutesOnDate(date time.Time) float64 {
	return d.ledger.MinutesOnDate(date)
}

// WeekMinutes returns the dates and minutes of the week offsetWeeks away
// from the current one.
func (d *Dashboard) WeekMinutes(offsetWeeks int) ([7]time.Time, study.Week) {
	dates := calendar.WeekDates(d.now(), offsetWeeks)
	return dates, d.ledger.Week(calendar.WeekStartKey(dates[0]))
}

func (d *Dashboard) Streak() int {
	return study.ComputeStreak(d.ledger, d.now())
}

func (d *Dashboard) SessionsToday() int {
	return d.sessions.SessionsOn(d.now())
}

func (d *Dashboard) WeeklyGoal() int { return d.weeklyGoal }

// WeeklyGoalProgress is this week's minutes over the goal, capped at 1.
func (d *Dashboard) WeeklyGoalProgress() float64 {
	total := d.ledger.TotalForWeek(calendar.WeekStartKey(d.now()))
	return math.Min(1, total/float64(d.weeklyGoal))
}

// Ledger returns a copy of the study ledger.
func (d *Dashboard) Ledger() *study.Ledger { return d.ledger.Clone() }

// Sessions returns a copy of the session counter.
func (d *Dashboard) Sessions() *study.Sessions { return d.sessions.Clone() }

// ============================================================
// Tasks
// ============================================================

func (d *Dashboard) Tasks() []tasks.Task { return d.tasks.All() }

func (d *Dashboard) TasksOn(date time.Time) []tasks.Task {
	return d.tasks.ForDate(calendar.FormatDateKey(date))
}

func (d *Dashboard) TaskProgress() (done, total int) { return d.tasks.Progress() }

func (d *Dashboard) taskChanged(err error) error {
	if err != nil {
		return err
	}
	d.saveTasks()
	d.push()
	return nil
}

func (d *Dashboard) AddTask(t tasks.Task) (tasks.Task, error) {
	added, err := d.tasks.Add(t)
	return added, d.taskChanged(err)
}

func (d *Dashboard) UpdateTask(id string, fn func(*tasks.Task)) (tasks.Task, error) {
	updated, err := d.tasks.Update(id, fn)
	return updated, d.taskChanged(err)
}

func (d *Dashboard) ToggleTask(id string) error {
	return d.taskChanged(d.tasks.Toggle(id))
}

func (d *Dashboard) DeleteTask(id string) error {
	return d.taskChanged(d.tasks.Delete(id))
}

func (d *Dashboard) MoveTask(id, targetID string) error {
	return d.taskChanged(d.tasks.Move(id, targetID))
}
