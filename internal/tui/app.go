package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/itineris/internal/dashboard"
	"github.com/sadopc/itineris/internal/export"
	"github.com/sadopc/itineris/internal/store"
	"github.com/sadopc/itineris/internal/timer"
)

const tickInterval = time.Second

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	dash   *dashboard.Dashboard
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// tickGen identifies the live tick chain. Every start or stop of the
	// countdown bumps it so at most one chain drives the timer.
	tickGen int

	dashboard dashboardModel
	agenda    agendaModel
	stats     statsModel
	tips      tipsModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, d *dashboard.Dashboard) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		dash:       d,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, d),
		agenda:     newAgendaModel(d),
		stats:      newStatsModel(s, d),
		tips:       newTipsModel(),
		settings:   newSettingsModel(s, d),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.settings.refresh(),
	)
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// bell rings the terminal bell outside the renderer's output.
func bell() tea.Msg {
	fmt.Fprint(os.Stderr, "\a")
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.agenda.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.tips.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewAgenda)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewStats)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewTips)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		return a.handleTick(msg)

	// Timer messages can arrive out of order, so both check the live state.
	case timerStartedMsg:
		if !a.dash.Running() {
			return a, nil
		}
		a.tickGen++
		a.setStatus(a.dash.Mode().Label()+" started", false)
		return a, tickCmd(a.tickGen)

	case timerStoppedMsg:
		if a.dash.Running() {
			return a, nil
		}
		a.tickGen++
		a.setStatus("Timer stopped", false)
		return a, nil

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case tasksChangedMsg:
		a.setStatus("Tasks saved", false)
		return a, nil

	case settingsSavedMsg:
		a.setStatus("Settings saved", false)
		return a, a.dashboard.loadData()

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil

	case dashboardDataMsg:
		// Always route to the dashboard, whichever view requested it.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

// handleTick advances the countdown for ticks of the live chain and
// schedules the next one while the timer keeps running.
func (a App) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.tickGen || !a.dash.Running() {
		return a, nil
	}

	res := a.dash.Tick(msg.at)
	if res.Completed {
		a.tickGen++
		text := res.Mode.Label() + " complete"
		if res.Mode == timer.ModeFocus {
			text += fmt.Sprintf(". %d sessions today", a.dash.SessionsToday())
		}
		a.setStatus(text, false)
		if a.activeView == viewStats {
			refresh := a.stats.refresh()
			return a, tea.Batch(bell, refresh)
		}
		return a, bell
	}
	if !a.dash.Running() {
		a.tickGen++
		return a, nil
	}
	return a, tickCmd(a.tickGen)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	cmd := a.refreshCurrentView()
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewAgenda:
		a.agenda, cmd = a.agenda.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewTips:
		a.tips, cmd = a.tips.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive()
	case viewAgenda:
		return a.agenda.formActive
	case viewTips:
		return a.tips.searching()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a *App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewAgenda:
		content = a.agenda.view()
	case viewStats:
		content = a.stats.view()
	case viewTips:
		content = a.tips.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("itineris")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	switch a.dash.State() {
	case timer.Running:
		timerInfo = modeStyle(a.dash.Mode()).Render(" ● " + a.dash.Display())
	case timer.Paused:
		timerInfo = warningStyle.Render(" ⏸ " + a.dash.Display())
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the data now and writes it from the returned command.
func (a App) doExport(format int) tea.Cmd {
	days := export.Days(a.dash.Ledger(), a.dash.Sessions())
	ts := a.dash.Tasks()
	user := a.dash.UserID()
	dateStr := a.dash.Now().Format("2006-01-02")

	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("itineris-export-%s.csv", dateStr))
			if err := export.ToCSV(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("itineris-export-%s.json", dateStr))
			if err := export.ToJSON(user, days, ts, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
