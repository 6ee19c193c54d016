package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/tasks"
)

// agendaModel is the week planner: a strip of seven days and the tasks
// scheduled on the selected one.
type agendaModel struct {
	dash   *dashboard.Dashboard
	width  int
	height int

	weekOffset int
	day        int
	cursor     int

	formActive bool
	form       *huh.Form
	editingID  string

	// Form values as pointers (survive value copies)
	formName     *string
	formDesc     *string
	formDate     *string
	formTime     *string
	formPriority *tasks.Priority
	formColor    *string
}

func newAgendaModel(d *dashboard.Dashboard) agendaModel {
	name, desc, date, tm, color := "", "", "", "", tasks.Colors[0]
	prio := tasks.PriorityMedium
	return agendaModel{
		dash:         d,
		day:          calendar.DayIndex(d.Now()),
		formName:     &name,
		formDesc:     &desc,
		formDate:     &date,
		formTime:     &tm,
		formPriority: &prio,
		formColor:    &color,
	}
}

func (a *agendaModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a agendaModel) dates() [7]time.Time {
	return calendar.WeekDates(a.dash.Now(), a.weekOffset)
}

func (a agendaModel) selectedDate() time.Time {
	return a.dates()[a.day]
}

func (a agendaModel) dayTasks() []tasks.Task {
	return a.dash.TasksOn(a.selectedDate())
}

func (a agendaModel) selectedTask() (tasks.Task, bool) {
	ts := a.dayTasks()
	if a.cursor < 0 || a.cursor >= len(ts) {
		return tasks.Task{}, false
	}
	return ts[a.cursor], true
}

// today jumps back to the current week and day.
func (a agendaModel) today() agendaModel {
	a.weekOffset = 0
	a.day = calendar.DayIndex(a.dash.Now())
	a.cursor = 0
	return a
}

func (a agendaModel) moveDay(delta int) agendaModel {
	a.day += delta
	switch {
	case a.day < 0:
		a.day = 6
		a.weekOffset--
	case a.day > 6:
		a.day = 0
		a.weekOffset++
	}
	a.cursor = 0
	return a
}

func (a agendaModel) update(msg tea.Msg) (agendaModel, tea.Cmd) {
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(km, keys.Left):
		return a.moveDay(-1), nil
	case key.Matches(km, keys.Right):
		return a.moveDay(1), nil
	case key.Matches(km, keys.Back):
		return a.today(), nil
	case key.Matches(km, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(km, keys.Down):
		if a.cursor < len(a.dayTasks())-1 {
			a.cursor++
		}
	case key.Matches(km, keys.New):
		return a.showForm(tasks.Task{
			Date:     calendar.FormatDateKey(a.selectedDate()),
			Priority: tasks.PriorityMedium,
			Color:    tasks.Colors[0],
		})
	case key.Matches(km, keys.Edit):
		if t, ok := a.selectedTask(); ok {
			return a.showForm(t)
		}
	case key.Matches(km, keys.Enter):
		if t, ok := a.selectedTask(); ok {
			return a, a.mutate(a.dash.ToggleTask(t.ID))
		}
	case key.Matches(km, keys.Delete):
		if t, ok := a.selectedTask(); ok {
			if err := a.dash.DeleteTask(t.ID); err != nil {
				return a, errorStatus(err)
			}
			if a.cursor > 0 && a.cursor >= len(a.dayTasks()) {
				a.cursor--
			}
			return a, func() tea.Msg { return statusMsg{text: "Deleted " + t.Name} }
		}
	case key.Matches(km, keys.MoveUp):
		return a.move(-1)
	case key.Matches(km, keys.MoveDown):
		return a.move(1)
	}
	return a, nil
}

// move swaps the selected task with its neighbour in the day's list.
func (a agendaModel) move(delta int) (agendaModel, tea.Cmd) {
	ts := a.dayTasks()
	target := a.cursor + delta
	if a.cursor >= len(ts) || target < 0 || target >= len(ts) {
		return a, nil
	}
	if err := a.dash.MoveTask(ts[a.cursor].ID, ts[target].ID); err != nil {
		return a, errorStatus(err)
	}
	a.cursor = target
	return a, func() tea.Msg { return tasksChangedMsg{} }
}

func (a agendaModel) mutate(err error) tea.Cmd {
	if err != nil {
		return errorStatus(err)
	}
	return func() tea.Msg { return tasksChangedMsg{} }
}

func validateDate(loc *time.Location) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, err := calendar.ParseDateKey(strings.TrimSpace(s), loc); err != nil {
			return errors.New("use YYYY-MM-DD")
		}
		return nil
	}
}

func validateClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return errors.New("use HH:MM")
	}
	return nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func (a agendaModel) showForm(t tasks.Task) (agendaModel, tea.Cmd) {
	a.editingID = t.ID
	*a.formName = t.Name
	*a.formDesc = t.Description
	*a.formDate = t.Date
	*a.formTime = t.Time
	*a.formPriority = t.Priority
	*a.formColor = t.Color

	colorOptions := make([]huh.Option[string], len(tasks.Colors))
	for i, c := range tasks.Colors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}
	priorities := []tasks.Priority{tasks.PriorityLow, tasks.PriorityMedium, tasks.PriorityHigh}
	prioOptions := make([]huh.Option[tasks.Priority], len(priorities))
	for i, p := range priorities {
		prioOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", p.Label(), p.Name()), p)
	}

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(a.formName).Validate(validateName),
			huh.NewText().Title("Description").Lines(3).Value(a.formDesc),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(a.formDate).
				Validate(validateDate(a.dash.Now().Location())),
			huh.NewInput().Title("Time (HH:MM, optional)").Value(a.formTime).Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewSelect[tasks.Priority]().Title("Priority").Options(prioOptions...).Value(a.formPriority),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(a.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.formActive = true
	return a, a.form.Init()
}

func (a agendaModel) updateForm(msg tea.Msg) (agendaModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.formActive = false
		a.form = nil
		return a, a.saveForm()
	}
	return a, cmd
}

func (a agendaModel) saveForm() tea.Cmd {
	fill := func(t *tasks.Task) {
		t.Name = *a.formName
		t.Description = *a.formDesc
		t.Date = *a.formDate
		t.Time = *a.formTime
		t.Priority = *a.formPriority
		t.Color = *a.formColor
	}

	if a.editingID != "" {
		_, err := a.dash.UpdateTask(a.editingID, fill)
		return a.mutate(err)
	}
	var t tasks.Task
	fill(&t)
	_, err := a.dash.AddTask(t)
	return a.mutate(err)
}

func (a agendaModel) view() string {
	w := a.width - 4

	if a.formActive && a.form != nil {
		title := titleStyle.Render("New Task")
		if a.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", a.form.View()),
		)
	}

	dates := a.dates()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Agenda"), "  ",
		mutedStyle.Render(calendar.WeekRangeLabel(dates)),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		a.renderWeekStrip(dates, w-6),
		"",
		a.renderDay(),
		"",
		mutedStyle.Render("  ←/→: day  n: new  e: edit  enter: done  d: delete  K/J: reorder  esc: today"),
	))
}

func (a agendaModel) renderWeekStrip(dates [7]time.Time, w int) string {
	cellW := max(w/7, 6)
	now := a.dash.Now()
	var cells []string
	for i, date := range dates {
		n := len(a.dash.TasksOn(date))
		label := fmt.Sprintf("%s %d", calendar.ShortDayName(date), date.Day())
		count := mutedStyle.Render("·")
		if n > 0 {
			count = highlightStyle.Render(fmt.Sprintf("%d", n))
		}

		style := lipgloss.NewStyle().Width(cellW).Align(lipgloss.Center)
		switch {
		case i == a.day:
			style = style.Bold(true).Foreground(colorPrimary).Underline(true)
		case calendar.SameDay(date, now):
			style = style.Foreground(colorAccent)
		default:
			style = style.Foreground(colorMuted)
		}
		cells = append(cells, style.Render(label+"\n"+count))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (a agendaModel) renderDay() string {
	date := a.selectedDate()
	title := highlightStyle.Render(date.Format("Monday, January 2"))

	ts := a.dayTasks()
	if len(ts) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("  No tasks. Press n to add one."),
		)
	}

	rows := []string{title}
	for i, t := range ts {
		rows = append(rows, renderTaskRow(t, i == a.cursor))
		if i == a.cursor && t.Description != "" {
			rows = append(rows, mutedStyle.Render("        "+t.Description))
		}
	}
	return strings.Join(rows, "\n")
}
