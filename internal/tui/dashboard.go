package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/store"
	"github.com/sadopc/itineris/internal/tasks"
)

const streakSegments = 7

type dashboardModel struct {
	store  *store.Store
	dash   *dashboard.Dashboard
	timer  timerModel
	width  int
	height int

	displayName string
	cursor      int
}

func newDashboardModel(s *store.Store, d *dashboard.Dashboard) dashboardModel {
	return dashboardModel{
		store:       s,
		dash:        d,
		timer:       newTimerModel(d),
		displayName: "student",
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.timer.width = w
}

func (d dashboardModel) formActive() bool { return d.timer.editing() }

type dashboardDataMsg struct {
	displayName string
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		name, err := d.store.GetSetting(store.SettingDisplayName)
		if err != nil || strings.TrimSpace(name) == "" {
			name = "student"
		}
		return dashboardDataMsg{displayName: name}
	}
}

func (d dashboardModel) todayTasks() []tasks.Task {
	return d.dash.TasksOn(d.dash.Now())
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.displayName = msg.displayName
		return d, nil

	case tea.KeyMsg:
		if d.timer.editing() {
			var cmd tea.Cmd
			d.timer, cmd = d.timer.update(msg)
			return d, cmd
		}

		today := d.todayTasks()
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
			return d, nil
		case key.Matches(msg, keys.Down):
			if d.cursor < len(today)-1 {
				d.cursor++
			}
			return d, nil
		case key.Matches(msg, keys.Enter):
			if d.cursor < len(today) {
				if err := d.dash.ToggleTask(today[d.cursor].ID); err != nil {
					return d, errorStatus(err)
				}
			}
			return d, nil
		}

		var cmd tea.Cmd
		d.timer, cmd = d.timer.update(msg)
		return d, cmd

	default:
		var cmd tea.Cmd
		d.timer, cmd = d.timer.update(msg)
		return d, cmd
	}
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	now := d.dash.Now()
	greet := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(fmt.Sprintf("%s, %s", greeting(now), d.displayName)),
		"  ",
		mutedStyle.Render(now.Format("Monday, January 2")),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(greet),
		d.timer.view(w),
		d.renderProgressPanel(w),
		d.renderTasksPanel(w),
	)
}

func renderStreak(days int) string {
	filled := min(days, streakSegments)
	segs := streakStyle.Render(strings.Repeat("■", filled)) +
		mutedStyle.Render(strings.Repeat("□", streakSegments-filled))
	label := "days"
	if days == 1 {
		label = "day"
	}
	return fmt.Sprintf("%s %s", segs, streakStyle.Render(fmt.Sprintf("%d %s", days, label)))
}

func (d dashboardModel) renderProgressPanel(w int) string {
	now := d.dash.Now()
	_, week := d.dash.WeekMinutes(0)
	goal := d.dash.WeeklyGoal()

	bar := progress.New(progress.WithSolidFill(string(colorSuccess)), progress.WithoutPercentage())
	bar.Width = max(w/3, 10)

	label := lipgloss.NewStyle().Width(14)
	rows := []string{
		titleStyle.Render("Progress"),
		label.Render("Today") + highlightStyle.Render(formatMinutes(d.dash.MinutesOnDate(now))),
		label.Render("This week") + bar.ViewAs(d.dash.WeeklyGoalProgress()) + " " +
			highlightStyle.Render(formatMinutes(week.Total())) +
			mutedStyle.Render(fmt.Sprintf(" / %s", formatMinutes(float64(goal)))),
		label.Render("Streak") + renderStreak(d.dash.Streak()),
		label.Render("Sessions") + highlightStyle.Render(fmt.Sprintf("%d today", d.dash.SessionsToday())),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderTaskRow(t tasks.Task, selected bool) string {
	check := "[ ]"
	nameStyle := normalItemStyle
	if t.Completed {
		check = "[x]"
		nameStyle = doneItemStyle
	}
	cursor := "  "
	if selected {
		cursor = "> "
		if !t.Completed {
			nameStyle = selectedItemStyle
		}
	}
	when := "     "
	if t.Time != "" {
		when = t.Time
	}
	return fmt.Sprintf("%s%s %s %s %s %s",
		cursor, check, dot(t.Color), mutedStyle.Render(when),
		nameStyle.Render(t.Name), warningStyle.Render(t.Priority.Label()))
}

func (d dashboardModel) renderTasksPanel(w int) string {
	today := d.todayTasks()
	done, total := d.dash.TaskProgress()
	title := titleStyle.Render("Today's tasks") +
		mutedStyle.Render(fmt.Sprintf("  %d/%d done overall", done, total))

	if len(today) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing scheduled today. Press 2 to plan in the agenda."),
		))
	}

	rows := []string{title}
	for i, t := range today {
		rows = append(rows, renderTaskRow(t, i == d.cursor))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
