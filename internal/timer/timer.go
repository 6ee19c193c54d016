// Package timer implements the Pomodoro countdown as an explicit state
// machine. Advance is the pure transition; Tick feeds it real elapsed time
// measured from the last tick so delayed callbacks never undercount.
package timer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Durations overrides the default minutes of each mode.
type Durations map[Mode]int

// Result describes what one Advance or Tick did.
type Result struct {
	Mode Mode
	// Elapsed is the number of seconds taken off the countdown.
	Elapsed int
	// StudySeconds is the part of Elapsed to bank as study time. Only focus
	// countdowns study.
	StudySeconds int
	// Completed is set when the countdown reached zero on this step.
	Completed bool
}

type Timer struct {
	durations Durations

	mode       Mode
	configured int // minutes
	remaining  int // seconds
	state      State
	lastTick   time.Time

	// state to return to when an edit is cancelled or rejected
	preEdit State
}

// New returns an idle focus timer. A nil Durations uses the built-in mode
// defaults.
func New(d Durations) *Timer {
	t := &Timer{durations: d}
	t.SwitchMode(ModeFocus)
	return t
}

func (t *Timer) defaultMinutes(m Mode) int {
	if n, ok := t.durations[m]; ok && n > 0 {
		return clampMinutes(float64(n))
	}
	return m.DefaultMinutes()
}

func clampMinutes(v float64) int {
	v = math.Min(MaxMinutes, math.Max(MinMinutes, v))
	return int(math.Round(v))
}

// Start moves an idle or paused timer to running.
func (t *Timer) Start(now time.Time) bool {
	if t.state != Idle && t.state != Paused {
		return false
	}
	t.state = Running
	t.lastTick = now.Round(0)
	return true
}

// Pause stops a running countdown and forgets the last tick.
func (t *Timer) Pause() bool {
	if t.state != Running {
		return false
	}
	t.state = Paused
	t.lastTick = time.Time{}
	return true
}

// Toggle starts or pauses.
func (t *Timer) Toggle(now time.Time) {
	if t.state == Running {
		t.Pause()
		return
	}
	t.Start(now)
}

// Reset returns to idle with a full countdown. Safe in any state.
func (t *Timer) Reset() {
	t.state = Idle
	t.remaining = t.configured * 60
	t.lastTick = time.Time{}
}

// SwitchMode resets the timer into m using m's default duration. The
// unfinished part of the previous countdown is discarded.
func (t *Timer) SwitchMode(m Mode) {
	if _, ok := modeSpecs[m]; !ok {
		m = ModeFocus
	}
	t.mode = m
	t.configured = t.defaultMinutes(m)
	t.Reset()
}

// Advance takes elapsed seconds off a running countdown. When the countdown
// runs out the timer goes idle with a full countdown for the same mode.
func (t *Timer) Advance(elapsed int) Result {
	res := Result{Mode: t.mode}
	if t.state != Running || elapsed <= 0 {
		return res
	}
	res.Elapsed = elapsed
	if t.mode == ModeFocus {
		res.StudySeconds = elapsed
	}
	t.remaining -= elapsed
	if t.remaining <= 0 {
		res.Completed = true
		t.state = Idle
		t.remaining = t.configured * 60
		t.lastTick = time.Time{}
	}
	return res
}

// Tick advances a running timer by the whole seconds since the previous
// tick, at least one. Times are compared on the wall clock, so time the
// machine spent suspended is counted.
func (t *Timer) Tick(now time.Time) Result {
	if t.state != Running {
		return Result{Mode: t.mode}
	}
	now = now.Round(0)
	delta := int(now.Sub(t.lastTick) / time.Second)
	if delta < 1 {
		delta = 1
	}
	t.lastTick = now
	return t.Advance(delta)
}

// BeginEdit pauses the countdown and enters editing.
func (t *Timer) BeginEdit() {
	if t.state == Editing {
		return
	}
	t.Pause()
	t.preEdit = t.state
	t.state = Editing
}

// CommitEdit applies a typed duration in minutes. Input that is not a finite
// number is ignored; other values are clamped to [MinMinutes, MaxMinutes].
// Reports whether the duration changed.
func (t *Timer) CommitEdit(input string) bool {
	if t.state != Editing {
		return false
	}
	t.state = t.preEdit
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	t.configured = clampMinutes(v)
	t.Reset()
	return true
}

// CancelEdit leaves editing without changing anything.
func (t *Timer) CancelEdit() {
	if t.state == Editing {
		t.state = t.preEdit
	}
}

// SetCustomDuration edits and commits in one step.
func (t *Timer) SetCustomDuration(input string) bool {
	t.BeginEdit()
	return t.CommitEdit(input)
}

func (t *Timer) Mode() Mode             { return t.mode }
func (t *Timer) State() State           { return t.state }
func (t *Timer) Running() bool          { return t.state == Running }
func (t *Timer) Remaining() int         { return t.remaining }
func (t *Timer) ConfiguredMinutes() int { return t.configured }
func (t *Timer) LastTick() time.Time    { return t.lastTick }

// DefaultMinutes is the countdown length SwitchMode would use for m.
func (t *Timer) DefaultMinutes(m Mode) int { return t.defaultMinutes(m) }

// Full reports whether the countdown has not started eating time.
func (t *Timer) Full() bool {
	return t.remaining == t.configured*60
}

// Progress is the consumed share of the current countdown, 0..1.
func (t *Timer) Progress() float64 {
	total := t.configured * 60
	if total <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, float64(total-t.remaining)/float64(total)))
}

// Display renders the remaining time as mm:ss.
func (t *Timer) Display() string {
	return FormatClock(t.remaining)
}

// FormatClock renders seconds as zero-padded mm:ss.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
