package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewAgenda
	viewStats
	viewTips
	viewSettings
)

var viewNames = []string{"Dashboard", "Agenda", "Stats", "Tips", "Settings"}

// --- Messages ---

type timerStartedMsg struct{}

type timerStoppedMsg struct{}

// tickMsg carries the generation of the tick chain that produced it. Ticks
// from an older generation are dropped.
type tickMsg struct {
	gen int
	at  time.Time
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type settingsSavedMsg struct{}

type tasksChangedMsg struct{}

// --- Helpers ---

// formatMinutes renders study minutes as "45m" or "2h 05m".
func formatMinutes(minutes float64) string {
	total := int(math.Floor(minutes))
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

func greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	}
	return "Good evening"
}

func errorStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}
