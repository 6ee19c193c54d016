package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sadopc/itineris/internal/calendar"
	"github.com/sadopc/itineris/internal/study"
)

const barWidth = 24

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4169E1"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	todayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E16941"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B8680"))
)

// weekReport is everything the stats command prints.
type weekReport struct {
	user          string
	today         time.Time
	dates         [7]time.Time
	minutes       study.Week
	goal          int
	streak        int
	sessionsToday int
}

func newStatsCmd(o *options) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a week of study minutes, the streak and today's sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), o, consoleLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			now := sess.dash.Now()
			day := now
			if week != "" {
				if day, err = calendar.ParseDateKey(week, now.Location()); err != nil {
					return fmt.Errorf("--week: %w", err)
				}
			}

			r := weekReport{
				user:          sess.dash.UserID(),
				today:         now,
				dates:         calendar.WeekDates(day, 0),
				minutes:       sess.dash.Ledger().Week(calendar.WeekStartKey(day)),
				goal:          sess.dash.WeeklyGoal(),
				streak:        sess.dash.Streak(),
				sessionsToday: sess.dash.SessionsToday(),
			}
			r.render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "any date (YYYY-MM-DD) in the week to show; defaults to this week")
	return cmd
}

func bar(value, maxValue float64) string {
	if maxValue <= 0 || value <= 0 {
		return strings.Repeat("·", barWidth)
	}
	filled := int(math.Round(value / maxValue * barWidth))
	filled = max(1, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled)
}

func minutesLabel(m float64) string {
	total := int(math.Floor(m))
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

func (r weekReport) render(w io.Writer) {
	fmt.Fprintln(w, headStyle.Render("Week of "+calendar.WeekRangeLabel(r.dates))+dimStyle.Render("  ("+r.user+")"))
	fmt.Fprintln(w)

	var peak float64
	for _, m := range r.minutes {
		peak = math.Max(peak, m)
	}
	for i, date := range r.dates {
		label := fmt.Sprintf("%s %02d", calendar.ShortDayName(date), date.Day())
		style := barStyle
		if calendar.SameDay(date, r.today) {
			style = todayStyle
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", label, style.Render(bar(r.minutes[i], peak)), minutesLabel(r.minutes[i]))
	}

	total := r.minutes.Total()
	pct := 0
	if r.goal > 0 {
		pct = int(total / float64(r.goal) * 100)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total     %s of %s goal (%d%%)\n", minutesLabel(total), minutesLabel(float64(r.goal)), pct)
	fmt.Fprintf(w, "  Streak    %d days\n", r.streak)
	fmt.Fprintf(w, "  Sessions  %d today\n", r.sessionsToday)
}
