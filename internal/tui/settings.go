package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/store"
	"github.com/sadopc/itineris/internal/timer"
)

var settingLabels = map[string]string{
	store.SettingDisplayName:       "Display name",
	store.SettingWeeklyGoalMinutes: "Weekly goal",
	store.SettingFocusMinutes:      "Focus length",
	store.SettingShortBreakMinutes: "Short break length",
	store.SettingLongBreakMinutes:  "Long break length",
}

type settingsModel struct {
	store  *store.Store
	dash   *dashboard.Dashboard
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	displayName *string
	weeklyGoal  *string
	focus       *string
	shortBreak  *string
	longBreak   *string
}

func newSettingsModel(s *store.Store, d *dashboard.Dashboard) settingsModel {
	dn, wg, f, sb, lb := "", "", "", "", ""
	return settingsModel{
		store:       s,
		dash:        d,
		displayName: &dn,
		weeklyGoal:  &wg,
		focus:       &f,
		shortBreak:  &sb,
		longBreak:   &lb,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func countdownMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < timer.MinMinutes || n > timer.MaxMinutes {
		return fmt.Errorf("enter %d to %d minutes", timer.MinMinutes, timer.MaxMinutes)
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.displayName = s.getVal(store.SettingDisplayName, "student")
	*s.weeklyGoal = s.getVal(store.SettingWeeklyGoalMinutes, strconv.Itoa(dashboard.DefaultWeeklyGoal))
	*s.focus = s.getVal(store.SettingFocusMinutes, "25")
	*s.shortBreak = s.getVal(store.SettingShortBreakMinutes, "5")
	*s.longBreak = s.getVal(store.SettingLongBreakMinutes, "15")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Display name").Value(s.displayName).Validate(validateName),
			huh.NewInput().Title("Weekly goal (min)").Value(s.weeklyGoal).Validate(positiveInt),
		).Title("General"),
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(s.focus).Validate(countdownMinutes),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(countdownMinutes),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(countdownMinutes),
		).Title("Timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveSettings(); err != nil {
			return s, errorStatus(err)
		}
		wasRunning := s.dash.Running()
		s.applySettings()
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return settingsSavedMsg{} },
			stateChange(wasRunning, s.dash.Running()),
		)
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := map[string]string{
		store.SettingDisplayName:       strings.TrimSpace(*s.displayName),
		store.SettingWeeklyGoalMinutes: strings.TrimSpace(*s.weeklyGoal),
		store.SettingFocusMinutes:      strings.TrimSpace(*s.focus),
		store.SettingShortBreakMinutes: strings.TrimSpace(*s.shortBreak),
		store.SettingLongBreakMinutes:  strings.TrimSpace(*s.longBreak),
	}
	for k, v := range values {
		if err := s.store.SetSetting(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// applySettings pushes the stored lengths and goal into the dashboard. The
// current countdown restarts from its new length.
func (s settingsModel) applySettings() {
	s.dash.SetDurations(s.store.Durations())
	s.dash.SetWeeklyGoal(s.store.IntSetting(store.SettingWeeklyGoalMinutes, dashboard.DefaultWeeklyGoal))
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		name, ok := settingLabels[setting.Key]
		if !ok {
			name = setting.Key
		}
		label := lipgloss.NewStyle().Width(24).Render(name)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  User: "+s.dash.UserID()))
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingFocusMinutes, store.SettingShortBreakMinutes, store.SettingLongBreakMinutes:
		if mins, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", mins)
		}
	case store.SettingWeeklyGoalMinutes:
		if mins, err := strconv.Atoi(v); err == nil {
			return formatMinutes(float64(mins)) + " per week"
		}
	}
	return v
}
