package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/store"
	"github.com/sadopc/itineris/internal/tasks"
	"github.com/sadopc/itineris/internal/timer"
)

// Wednesday morning.
var t0 = time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestDashboard(t *testing.T, s *store.Store, clock *testClock) *dashboard.Dashboard {
	t.Helper()
	d := dashboard.New(context.Background(), dashboard.Options{
		Store:     store.NewAdapter(s, "alice", clock.Now),
		UserID:    "alice",
		Clock:     clock.Now,
		Durations: s.Durations(),
	})
	t.Cleanup(d.Close)
	return d
}

func newTestApp(t *testing.T) App {
	t.Helper()
	s := newTestStore(t)
	clock := &testClock{now: t0}
	app := NewApp(s, newTestDashboard(t, s, clock))
	app.width = 120
	app.height = 40
	app.dashboard.setSize(120, 36)
	app.agenda.setSize(120, 36)
	app.stats.setSize(120, 36)
	app.tips.setSize(120, 36)
	app.settings.setSize(120, 36)
	return app
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// send feeds msg to the app and returns the updated model.
func send(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	a, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return a, cmd
}

// ============================================================
// Timer panel
// ============================================================

func TestTimerToggleEmitsStartStop(t *testing.T) {
	app := newTestApp(t)
	tm := app.dashboard.timer

	tm, cmd := tm.update(spaceKey)
	if !app.dash.Running() {
		t.Fatal("space should start the timer")
	}
	if _, ok := cmd().(timerStartedMsg); !ok {
		t.Fatal("expected timerStartedMsg")
	}

	_, cmd = tm.update(runeKey("s"))
	if app.dash.State() != timer.Paused {
		t.Fatalf("expected paused, got %v", app.dash.State())
	}
	if _, ok := cmd().(timerStoppedMsg); !ok {
		t.Fatal("expected timerStoppedMsg")
	}
}

func TestTimerNextModeCycles(t *testing.T) {
	if nextMode(timer.ModeFocus) != timer.ModeShortBreak {
		t.Fatal("focus should be followed by short break")
	}
	if nextMode(timer.ModeLongBreak) != timer.ModeFocus {
		t.Fatal("long break should wrap to focus")
	}

	app := newTestApp(t)
	app.dashboard.timer.update(runeKey("m"))
	if app.dash.Mode() != timer.ModeShortBreak {
		t.Fatalf("expected short break, got %s", app.dash.Mode())
	}
	if app.dash.Display() != "05:00" {
		t.Fatalf("expected 05:00, got %s", app.dash.Display())
	}
}

func TestTimerResetWhileRunning(t *testing.T) {
	app := newTestApp(t)
	app.dash.Start()
	_, cmd := app.dashboard.timer.update(runeKey("r"))
	if app.dash.Running() {
		t.Fatal("reset should stop the timer")
	}
	if cmd == nil {
		t.Fatal("reset of a running timer should report the stop")
	}
}

func TestTimerCustomLength(t *testing.T) {
	app := newTestApp(t)
	tm := app.dashboard.timer

	tm, _ = tm.update(runeKey("c"))
	if !tm.editing() {
		t.Fatal("c should open the length editor")
	}
	if tm.input.Value() != "25" {
		t.Fatalf("editor should start at the current length, got %q", tm.input.Value())
	}

	tm.input.SetValue("42")
	tm, cmd := tm.update(enterKey)
	if cmd != nil {
		t.Fatal("valid length should not report an error")
	}
	if tm.editing() {
		t.Fatal("enter should close the editor")
	}
	if app.dash.ConfiguredMinutes() != 42 {
		t.Fatalf("expected 42 minutes, got %d", app.dash.ConfiguredMinutes())
	}
}

func TestTimerCustomLengthRejected(t *testing.T) {
	app := newTestApp(t)
	tm := app.dashboard.timer

	tm, _ = tm.update(runeKey("c"))
	tm.input.SetValue("abc")
	_, cmd := tm.update(enterKey)
	if cmd == nil {
		t.Fatal("expected an error status")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error statusMsg, got %#v", msg)
	}
	if app.dash.ConfiguredMinutes() != 25 {
		t.Fatalf("length should be unchanged, got %d", app.dash.ConfiguredMinutes())
	}
	if app.dash.State() != timer.Idle {
		t.Fatalf("expected idle, got %v", app.dash.State())
	}
}

func TestTimerCustomLengthCancel(t *testing.T) {
	app := newTestApp(t)
	tm := app.dashboard.timer

	tm, _ = tm.update(runeKey("c"))
	tm.input.SetValue("90")
	tm, _ = tm.update(escKey)
	if tm.editing() {
		t.Fatal("esc should close the editor")
	}
	if app.dash.ConfiguredMinutes() != 25 {
		t.Fatal("cancel should keep the old length")
	}
}

func TestStateChange(t *testing.T) {
	if stateChange(false, false) != nil || stateChange(true, true) != nil {
		t.Fatal("no edge should produce no command")
	}
	if _, ok := stateChange(false, true)().(timerStartedMsg); !ok {
		t.Fatal("expected started")
	}
	if _, ok := stateChange(true, false)().(timerStoppedMsg); !ok {
		t.Fatal("expected stopped")
	}
}

// ============================================================
// Tick chain
// ============================================================

func TestTickChainAdvancesTimer(t *testing.T) {
	app := newTestApp(t)
	app.dash.Start()

	app, cmd := send(t, app, timerStartedMsg{})
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if app.tickGen != 1 {
		t.Fatalf("expected generation 1, got %d", app.tickGen)
	}

	app, cmd = send(t, app, tickMsg{gen: 1, at: t0.Add(5 * time.Second)})
	if app.dash.Remaining() != 25*60-5 {
		t.Fatalf("expected 5s elapsed, remaining %d", app.dash.Remaining())
	}
	if cmd == nil {
		t.Fatal("running timer should schedule the next tick")
	}
}

func TestStaleTickDropped(t *testing.T) {
	app := newTestApp(t)
	app.dash.Start()
	app, _ = send(t, app, timerStartedMsg{})

	app, cmd := send(t, app, tickMsg{gen: 0, at: t0.Add(time.Minute)})
	if cmd != nil {
		t.Fatal("stale tick should not reschedule")
	}
	if app.dash.Remaining() != 25*60 {
		t.Fatalf("stale tick should not advance, remaining %d", app.dash.Remaining())
	}
}

func TestTickAfterPauseDropped(t *testing.T) {
	app := newTestApp(t)
	app.dash.Start()
	app, _ = send(t, app, timerStartedMsg{})
	app.dash.Pause()

	app, cmd := send(t, app, tickMsg{gen: app.tickGen, at: t0.Add(time.Minute)})
	if cmd != nil {
		t.Fatal("paused timer should end the chain")
	}
	if app.dash.Remaining() != 25*60 {
		t.Fatal("paused timer should not advance")
	}
}

func TestOutOfOrderTimerMessages(t *testing.T) {
	app := newTestApp(t)

	// Pause then resume, with the stop message arriving last.
	app.dash.Start()
	app, _ = send(t, app, timerStartedMsg{})
	gen := app.tickGen
	app, _ = send(t, app, timerStoppedMsg{})
	if app.tickGen != gen {
		t.Fatal("stop message for a running timer should be ignored")
	}

	// A start message for a timer that is no longer running starts nothing.
	app.dash.Pause()
	app, cmd := send(t, app, timerStartedMsg{})
	if cmd != nil {
		t.Fatal("start message for a paused timer should not schedule ticks")
	}
}

func TestTickCompletion(t *testing.T) {
	app := newTestApp(t)
	app.dash.SetCustomDuration("5")
	app.dash.Start()
	app, _ = send(t, app, timerStartedMsg{})
	gen := app.tickGen

	app, cmd := send(t, app, tickMsg{gen: gen, at: t0.Add(5 * time.Minute)})
	if cmd == nil {
		t.Fatal("completion should ring the bell")
	}
	if app.tickGen == gen {
		t.Fatal("completion should end the chain")
	}
	if app.dash.Running() {
		t.Fatal("timer should be idle after completion")
	}
	if app.dash.SessionsToday() != 1 {
		t.Fatalf("expected 1 session, got %d", app.dash.SessionsToday())
	}
	if got := app.dash.MinutesOnDate(t0); got != 5 {
		t.Fatalf("expected 5 minutes banked, got %v", got)
	}
	if !strings.Contains(app.status, "Focus complete") {
		t.Fatalf("unexpected status %q", app.status)
	}
}

// ============================================================
// Dashboard view
// ============================================================

func TestDashboardLoadsDisplayName(t *testing.T) {
	app := newTestApp(t)
	app.store.SetSetting(store.SettingDisplayName, "Ada")

	msg := app.dashboard.loadData()()
	app, _ = send(t, app, msg)
	if app.dashboard.displayName != "Ada" {
		t.Fatalf("expected Ada, got %q", app.dashboard.displayName)
	}
	if !strings.Contains(app.dashboard.view(), "Good morning, Ada") {
		t.Fatal("dashboard should greet by name")
	}
}

func TestDashboardTogglesTodayTask(t *testing.T) {
	app := newTestApp(t)
	task, err := app.dash.AddTask(tasks.Task{Name: "Read chapter 4", Date: "2025-03-05"})
	if err != nil {
		t.Fatal(err)
	}

	app.dashboard, _ = app.dashboard.update(enterKey)
	got := app.dash.Tasks()[0]
	if got.ID != task.ID || !got.Completed {
		t.Fatal("enter should toggle the selected task")
	}
	if !strings.Contains(app.dashboard.view(), "Read chapter 4") {
		t.Fatal("today's tasks should be listed")
	}
}

func TestDashboardRoutesTimerKeys(t *testing.T) {
	app := newTestApp(t)
	app.dashboard, _ = app.dashboard.update(spaceKey)
	if !app.dash.Running() {
		t.Fatal("space on the dashboard should start the timer")
	}
}

func TestDashboardEditingCapturesKeys(t *testing.T) {
	app := newTestApp(t)
	app, _ = send(t, app, runeKey("c"))
	if !app.isFormActive() {
		t.Fatal("length editor should capture input")
	}
	app, _ = send(t, app, runeKey("3"))
	if app.activeView != viewDashboard {
		t.Fatal("digits should be typed into the editor, not switch views")
	}
	if got := app.dashboard.timer.input.Value(); got != "253" {
		t.Fatalf("expected typed digit in editor, got %q", got)
	}
}

// ============================================================
// Agenda
// ============================================================

func TestAgendaStartsOnToday(t *testing.T) {
	app := newTestApp(t)
	if app.agenda.day != 2 {
		t.Fatalf("expected Wednesday (2), got %d", app.agenda.day)
	}
	if !app.agenda.selectedDate().Equal(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected selected date %v", app.agenda.selectedDate())
	}
}

func TestAgendaMoveDayWrapsWeeks(t *testing.T) {
	app := newTestApp(t)
	a := app.agenda
	a.day = 6
	a = a.moveDay(1)
	if a.day != 0 || a.weekOffset != 1 {
		t.Fatalf("expected next Monday, got day %d offset %d", a.day, a.weekOffset)
	}
	a = a.moveDay(-1)
	if a.day != 6 || a.weekOffset != 0 {
		t.Fatalf("expected back to Sunday, got day %d offset %d", a.day, a.weekOffset)
	}
	a = a.today()
	if a.day != 2 || a.weekOffset != 0 {
		t.Fatal("today should reset the selection")
	}
}

func TestAgendaToggleDeleteMove(t *testing.T) {
	app := newTestApp(t)
	for _, name := range []string{"a", "b", "c"} {
		if _, err := app.dash.AddTask(tasks.Task{Name: name, Date: "2025-03-05"}); err != nil {
			t.Fatal(err)
		}
	}
	a := app.agenda

	a, _ = a.update(enterKey)
	if !a.dayTasks()[0].Completed {
		t.Fatal("enter should toggle the first task")
	}

	a, _ = a.update(runeKey("J"))
	if a.cursor != 1 {
		t.Fatalf("cursor should follow the moved task, got %d", a.cursor)
	}
	if names := taskNames(a.dayTasks()); strings.Join(names, "") != "bac" {
		t.Fatalf("expected bac, got %v", names)
	}

	a, _ = a.update(runeKey("d"))
	if names := taskNames(a.dayTasks()); strings.Join(names, "") != "bc" {
		t.Fatalf("expected bc after delete, got %v", names)
	}
}

func taskNames(ts []tasks.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestAgendaFormSave(t *testing.T) {
	app := newTestApp(t)
	a := app.agenda

	a, _ = a.update(runeKey("n"))
	if !a.formActive {
		t.Fatal("n should open the task form")
	}
	if *a.formDate != "2025-03-05" {
		t.Fatalf("form should default to the selected day, got %q", *a.formDate)
	}

	*a.formName = "Essay outline"
	*a.formTime = "14:30"
	*a.formPriority = tasks.PriorityHigh
	cmd := a.saveForm()
	if _, ok := cmd().(tasksChangedMsg); !ok {
		t.Fatal("expected tasksChangedMsg")
	}

	ts := app.dash.TasksOn(t0)
	if len(ts) != 1 || ts[0].Name != "Essay outline" || ts[0].Time != "14:30" || ts[0].Priority != tasks.PriorityHigh {
		t.Fatalf("unexpected tasks %+v", ts)
	}

	a, _ = a.update(escKey)
	a.formActive = false
	a, _ = a.update(runeKey("e"))
	if a.editingID != ts[0].ID {
		t.Fatal("e should edit the selected task")
	}
	*a.formName = "Essay draft"
	a.saveForm()
	if got := app.dash.TasksOn(t0)[0].Name; got != "Essay draft" {
		t.Fatalf("expected update, got %q", got)
	}
}

func TestAgendaFormEscCancels(t *testing.T) {
	app := newTestApp(t)
	a := app.agenda
	a, _ = a.update(runeKey("n"))
	a, _ = a.update(escKey)
	if a.formActive {
		t.Fatal("esc should close the form")
	}
	if len(app.dash.Tasks()) != 0 {
		t.Fatal("cancelled form should not add a task")
	}
}

func TestAgendaValidators(t *testing.T) {
	if validateName("  ") == nil {
		t.Fatal("blank name should fail")
	}
	if validateClock("25:00") == nil || validateClock("9am") == nil {
		t.Fatal("bad clock should fail")
	}
	if validateClock("") != nil || validateClock("09:15") != nil {
		t.Fatal("valid clock rejected")
	}
	check := validateDate(time.UTC)
	if check("2025-02-30") == nil || check("05/03/2025") == nil {
		t.Fatal("bad date should fail")
	}
	if check("") != nil || check("2025-03-05") != nil {
		t.Fatal("valid date rejected")
	}
}

// ============================================================
// Stats
// ============================================================

func TestStatsCountsCountdowns(t *testing.T) {
	app := newTestApp(t)
	app.dash.SetCustomDuration("5")
	app.dash.Start()
	app.dash.Tick(t0.Add(5 * time.Minute))

	cmd := app.stats.refresh()
	msg, ok := cmd().(statsDataMsg)
	if !ok {
		t.Fatal("expected statsDataMsg")
	}
	app, _ = send(t, app, msg)

	focus := app.stats.countdowns[timer.ModeFocus]
	if focus.completed != 1 || focus.minutes != 5 {
		t.Fatalf("unexpected focus stats %+v", focus)
	}
	if app.stats.countdowns[timer.ModeShortBreak].completed != 0 {
		t.Fatal("no short breaks were completed")
	}
	if app.stats.last == nil || app.stats.last.Mode != string(timer.ModeFocus) || app.stats.last.Minutes != 5 {
		t.Fatalf("unexpected last run %+v", app.stats.last)
	}
	if !strings.Contains(app.stats.view(), "Last run") {
		t.Fatal("stats view should show the last run")
	}
}

func TestStatsWeekNavigation(t *testing.T) {
	app := newTestApp(t)
	s := app.stats

	s, _ = s.update(tea.KeyMsg{Type: tea.KeyLeft})
	if s.weekOffset != -1 {
		t.Fatalf("expected previous week, got %d", s.weekOffset)
	}
	s, _ = s.update(tea.KeyMsg{Type: tea.KeyRight})
	s, _ = s.update(tea.KeyMsg{Type: tea.KeyRight})
	if s.weekOffset != 0 {
		t.Fatalf("should not move past the current week, got %d", s.weekOffset)
	}

	// Data for another week is ignored.
	s, _ = s.update(statsDataMsg{weekOffset: -3, countdowns: map[timer.Mode]countdownStat{
		timer.ModeFocus: {completed: 9},
	}})
	if s.countdowns[timer.ModeFocus].completed != 0 {
		t.Fatal("stale stats should be dropped")
	}
}

// ============================================================
// Tips
// ============================================================

func TestTipTags(t *testing.T) {
	tags := tipTags(studyTips)
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatalf("tags not sorted and unique: %v", tags)
		}
	}
	if len(tags) != 6 {
		t.Fatalf("expected 6 tags, got %v", tags)
	}
}

func TestFilterTips(t *testing.T) {
	if got := filterTips(studyTips, "", ""); len(got) != len(studyTips) {
		t.Fatal("empty filter should keep everything")
	}
	if got := filterTips(studyTips, "CORNELL", ""); len(got) != 1 || got[0].section != "Note-taking" {
		t.Fatalf("search should be case-insensitive, got %+v", got)
	}
	if got := filterTips(studyTips, "", "pomodoro"); len(got) != 1 {
		t.Fatalf("expected 1 pomodoro tip, got %d", len(got))
	}
	if got := filterTips(studyTips, "recall", "notes"); len(got) != 0 {
		t.Fatal("query and tag must both match")
	}
}

func TestTipsKeys(t *testing.T) {
	app := newTestApp(t)
	tp := app.tips

	tp, _ = tp.update(runeKey("t"))
	if tp.tag() != tp.tags[0] {
		t.Fatalf("t should select the first tag, got %q", tp.tag())
	}

	tp, _ = tp.update(runeKey("/"))
	if !tp.searching() {
		t.Fatal("/ should focus the search box")
	}
	tp, _ = tp.update(runeKey("x"))
	if tp.search.Value() != "x" {
		t.Fatalf("typing should fill the search box, got %q", tp.search.Value())
	}
	tp, _ = tp.update(enterKey)
	if tp.searching() {
		t.Fatal("enter should leave the search box")
	}

	tp, _ = tp.update(escKey)
	if tp.tag() != "" || tp.search.Value() != "" {
		t.Fatal("esc should reset the filters")
	}
}

// ============================================================
// Settings
// ============================================================

func TestApplySettings(t *testing.T) {
	app := newTestApp(t)
	app.store.SetSetting(store.SettingFocusMinutes, "50")
	app.store.SetSetting(store.SettingWeeklyGoalMinutes, "600")

	app.settings.applySettings()
	if app.dash.ConfiguredMinutes() != 50 {
		t.Fatalf("expected 50 minute focus, got %d", app.dash.ConfiguredMinutes())
	}
	if app.dash.WeeklyGoal() != 600 {
		t.Fatalf("expected goal 600, got %d", app.dash.WeeklyGoal())
	}
}

func TestSaveSettings(t *testing.T) {
	app := newTestApp(t)
	s := app.settings
	s, _ = s.showForm()
	if *s.focus != "25" || *s.displayName != "student" {
		t.Fatalf("form should load stored values, got %q %q", *s.focus, *s.displayName)
	}

	*s.displayName = " Ada "
	*s.shortBreak = "10"
	if err := s.saveSettings(); err != nil {
		t.Fatal(err)
	}
	if v, _ := app.store.GetSetting(store.SettingDisplayName); v != "Ada" {
		t.Fatalf("expected Ada, got %q", v)
	}
	if v, _ := app.store.GetSetting(store.SettingShortBreakMinutes); v != "10" {
		t.Fatalf("expected 10, got %q", v)
	}
}

func TestSettingsValidators(t *testing.T) {
	if positiveInt("0") == nil || positiveInt("x") == nil {
		t.Fatal("non-positive input should fail")
	}
	if positiveInt("240") != nil {
		t.Fatal("240 should pass")
	}
	if countdownMinutes("4") == nil || countdownMinutes("121") == nil {
		t.Fatal("out of range lengths should fail")
	}
	if countdownMinutes("5") != nil || countdownMinutes("120") != nil {
		t.Fatal("boundary lengths should pass")
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{store.SettingFocusMinutes, "25", "25 min"},
		{store.SettingWeeklyGoalMinutes, "240", "4h 00m per week"},
		{store.SettingDisplayName, "Ada", "Ada"},
		{store.SettingLongBreakMinutes, "abc", "abc"},
	}
	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.value); got != tt.want {
			t.Fatalf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m"},
		{45.9, "45m"},
		{60, "1h 00m"},
		{125, "2h 05m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.in); got != tt.want {
			t.Fatalf("formatMinutes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGreeting(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 3, 5, h, 0, 0, 0, time.UTC) }
	if greeting(at(6)) != "Good morning" {
		t.Fatal("6am should be morning")
	}
	if greeting(at(12)) != "Good afternoon" {
		t.Fatal("noon should be afternoon")
	}
	if greeting(at(18)) != "Good evening" {
		t.Fatal("6pm should be evening")
	}
}

func TestRenderStreak(t *testing.T) {
	if !strings.Contains(renderStreak(1), "1 day") {
		t.Fatal("singular day label")
	}
	out := renderStreak(12)
	if !strings.Contains(out, "12 days") {
		t.Fatal("streak count should be shown")
	}
	if strings.Contains(out, "□") {
		t.Fatal("a streak past seven days fills every segment")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)

	for i := range viewNames {
		app.activeView = viewState(i)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app := newTestApp(t)
	app, _ = send(t, app, runeKey("3"))
	if app.activeView != viewStats {
		t.Fatal("3 should open stats")
	}
	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewTips {
		t.Fatal("tab should move to tips")
	}
	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewDashboard {
		t.Fatal("tab should wrap to the dashboard")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)

	header := app.renderHeader()
	if !strings.Contains(header, "itineris") {
		t.Fatal("header missing title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppFooterShowsRunningTimer(t *testing.T) {
	app := newTestApp(t)
	app.dash.Start()
	if !strings.Contains(app.renderFooter(), "25:00") {
		t.Fatal("footer should show the running countdown")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t)
	app.width = 0
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t)
	app, _ = send(t, app, statusMsg{text: "test status", isError: true})
	if !app.statusErr {
		t.Fatal("error flag should be kept")
	}
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPicker(t *testing.T) {
	app := newTestApp(t)
	app, _ = send(t, app, runeKey("x"))
	if !app.exportPicking {
		t.Fatal("x should open the export picker")
	}
	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyDown})
	if app.exportCursor != 1 {
		t.Fatal("down should select JSON")
	}
	app, _ = send(t, app, escKey)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test: just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"streak", func() string { return streakStyle.Render("test") }},
		{"done", func() string { return doneItemStyle.Render("test") }},
		{"tag", func() string { return tagStyle.Render("test") }},
		{"mode", func() string { return modeStyle(timer.ModeLongBreak).Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
