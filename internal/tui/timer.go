package tui

import (
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/timer"
)

// timerModel is the countdown panel. The countdown itself lives in the
// dashboard; this model only renders it and turns keys into commands.
type timerModel struct {
	dash  *dashboard.Dashboard
	input textinput.Model
	width int
}

func newTimerModel(d *dashboard.Dashboard) timerModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "minutes"
	ti.CharLimit = 3
	ti.Width = 8
	return timerModel{dash: d, input: ti}
}

func (t timerModel) editing() bool {
	return t.dash.State() == timer.Editing
}

func nextMode(m timer.Mode) timer.Mode {
	modes := timer.Modes()
	i := slices.Index(modes, m)
	return modes[(i+1)%len(modes)]
}

// stateChange reports a running edge as a timer message so the app can
// start or abandon its tick chain.
func stateChange(wasRunning, running bool) tea.Cmd {
	switch {
	case !wasRunning && running:
		return func() tea.Msg { return timerStartedMsg{} }
	case wasRunning && !running:
		return func() tea.Msg { return timerStoppedMsg{} }
	}
	return nil
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	if t.editing() {
		return t.updateEdit(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	wasRunning := t.dash.Running()

	switch {
	case key.Matches(km, keys.Toggle):
		t.dash.Toggle()
	case key.Matches(km, keys.Reset):
		t.dash.Reset()
	case key.Matches(km, keys.NextMode):
		t.dash.SwitchMode(nextMode(t.dash.Mode()))
	case key.Matches(km, keys.EditLength):
		t.dash.BeginEdit()
		t.input.SetValue(strconv.Itoa(t.dash.ConfiguredMinutes()))
		t.input.CursorEnd()
		focus := t.input.Focus()
		return t, tea.Batch(focus, stateChange(wasRunning, false))
	default:
		return t, nil
	}
	return t, stateChange(wasRunning, t.dash.Running())
}

func (t timerModel) updateEdit(msg tea.Msg) (timerModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Enter):
			value := t.input.Value()
			t.input.Blur()
			t.input.Reset()
			if !t.dash.CommitEdit(value) {
				return t, func() tea.Msg {
					return statusMsg{text: "Enter a length in minutes", isError: true}
				}
			}
			return t, nil
		case key.Matches(km, keys.Back):
			t.input.Blur()
			t.input.Reset()
			t.dash.CancelEdit()
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t timerModel) renderModeTabs() string {
	var tabs []string
	for _, m := range timer.Modes() {
		if m == t.dash.Mode() {
			tabs = append(tabs, modeStyle(m).Bold(true).Underline(true).Padding(0, 1).Render(m.Label()))
		} else {
			tabs = append(tabs, mutedStyle.Padding(0, 1).Render(m.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (t timerModel) view(w int) string {
	mode := t.dash.Mode()
	inner := w - 6
	if inner < 10 {
		inner = 10
	}

	clock := modeStyle(mode).Bold(true).Padding(1, 0).Width(inner).
		Align(lipgloss.Center).Render(t.dash.Display())

	bar := progress.New(progress.WithSolidFill(mode.Color()), progress.WithoutPercentage())
	bar.Width = inner
	barView := bar.ViewAs(t.dash.Progress())

	var indicator string
	switch t.dash.State() {
	case timer.Running:
		indicator = successStyle.Render("●  RUNNING")
	case timer.Paused:
		indicator = warningStyle.Render("⏸  PAUSED")
	case timer.Editing:
		indicator = accentStyle.Render("✎  LENGTH ") + t.input.View() +
			mutedStyle.Render(" (5-120)")
	default:
		indicator = mutedStyle.Render("■  READY")
	}

	hint := mutedStyle.Render("space: start/pause  r: reset  m: mode  c: custom length")
	if t.editing() {
		hint = mutedStyle.Render("enter: apply  esc: cancel")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		t.renderModeTabs(),
		clock,
		barView,
		"",
		indicator,
		hint,
	)
	if t.dash.Running() {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}
