package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/store"
	"github.com/sadopc/itineris/internal/study"
	"github.com/sadopc/itineris/internal/timer"
)

type countdownStat struct {
	completed int
	minutes   int64
}

type statsModel struct {
	store  *store.Store
	dash   *dashboard.Dashboard
	width  int
	height int

	weekOffset int
	chart      barchart.Model
	countdowns map[timer.Mode]countdownStat
	last       *store.Countdown
}

func newStatsModel(s *store.Store, d *dashboard.Dashboard) statsModel {
	return statsModel{
		store: s,
		dash:  d,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

type statsDataMsg struct {
	weekOffset int
	countdowns map[timer.Mode]countdownStat
	last       *store.Countdown
}

// refresh redraws the chart from the ledger and queries the countdown
// history for the shown week.
func (s *statsModel) refresh() tea.Cmd {
	s.buildChart()

	dates, _ := s.dash.WeekMinutes(s.weekOffset)
	from := dates[0]
	to := calendar.AddDays(from, 7)
	userID := s.dash.UserID()
	offset := s.weekOffset
	st := s.store

	return func() tea.Msg {
		counts := make(map[timer.Mode]countdownStat)
		for _, m := range timer.Modes() {
			n, mins, err := st.CountdownStats(userID, string(m), from, to)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Stats error: %v", err), isError: true}
			}
			counts[m] = countdownStat{completed: n, minutes: mins}
		}
		msg := statsDataMsg{weekOffset: offset, countdowns: counts}
		runs, err := st.ListCountdowns(userID, from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Stats error: %v", err), isError: true}
		}
		if len(runs) > 0 {
			msg.last = &runs[len(runs)-1]
		}
		return msg
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		if msg.weekOffset == s.weekOffset {
			s.countdowns = msg.countdowns
			s.last = msg.last
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			s.weekOffset--
		case key.Matches(msg, keys.Right):
			if s.weekOffset < 0 {
				s.weekOffset++
			}
		case key.Matches(msg, keys.Back):
			s.weekOffset = 0
		default:
			return s, nil
		}
		cmd := s.refresh()
		return s, cmd
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	dates, week := s.dash.WeekMinutes(s.weekOffset)
	now := s.dash.Now()
	var bars []barchart.BarData
	for i, date := range dates {
		color := colorPrimary
		if calendar.SameDay(date, now) {
			color = colorAccent
		}
		bars = append(bars, barchart.BarData{
			Label: date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "minutes",
				Value: week[i],
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	dates, week := s.dash.WeekMinutes(s.weekOffset)
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		mutedStyle.Render(calendar.WeekRangeLabel(dates)),
	)
	if s.weekOffset == 0 {
		header += accentStyle.Render("  this week")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			s.chart.View(), "",
			s.renderTable(dates, week), "",
			s.renderSummary(week.Total()), "",
			mutedStyle.Render("  ←/→: week  esc: this week"),
		),
	)
}

func (s statsModel) renderTable(dates [7]time.Time, week study.Week) string {
	sessions := s.dash.Sessions()
	var rows []string
	for i, date := range dates {
		day := lipgloss.NewStyle().Width(12).Render(date.Format("Mon Jan 02"))
		value := mutedStyle.Render("-")
		if week[i] > 0 {
			value = highlightStyle.Render(formatMinutes(week[i]))
		}
		count := ""
		if n := sessions.SessionsOn(date); n > 0 {
			count = mutedStyle.Render(fmt.Sprintf("  %d sessions", n))
		}
		rows = append(rows, "  "+day+value+count)
	}
	return strings.Join(rows, "\n")
}

func (s statsModel) renderSummary(total float64) string {
	goal := s.dash.WeeklyGoal()
	pct := 0
	if goal > 0 {
		pct = int(total / float64(goal) * 100)
	}
	label := lipgloss.NewStyle().Width(16)
	rows := []string{
		label.Render("  Week total") + highlightStyle.Render(formatMinutes(total)) +
			mutedStyle.Render(fmt.Sprintf(" of %s goal (%d%%)", formatMinutes(float64(goal)), pct)),
		label.Render("  Streak") + renderStreak(s.dash.Streak()),
	}
	for _, m := range timer.Modes() {
		c := s.countdowns[m]
		rows = append(rows, label.Render("  "+m.Label())+
			modeStyle(m).Render(fmt.Sprintf("%d completed", c.completed))+
			mutedStyle.Render(fmt.Sprintf("  %d min", c.minutes)))
	}
	if s.last != nil {
		at := s.last.CompletedAt.In(s.dash.Now().Location())
		rows = append(rows, label.Render("  Last run")+
			modeStyle(timer.Mode(s.last.Mode)).Render(timer.Mode(s.last.Mode).Label())+
			mutedStyle.Render(fmt.Sprintf("  %d min, %s", s.last.Minutes, at.Format("Mon 15:04"))))
	}
	return strings.Join(rows, "\n")
}
