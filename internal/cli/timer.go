package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/itineris/internal/timer"
)

func newTimerCmd(o *options) *cobra.Command {
	var modeName string
	var minutes int

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run one countdown in the terminal without the TUI",
		Long: `Run one focus or break countdown and print the remaining time.
Focus time is banked as it passes, exactly as in the TUI. Interrupt with
Ctrl+C to stop early; the minutes studied so far are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := timer.ParseMode(modeName)
			if err != nil {
				return err
			}
			if minutes < 0 {
				return fmt.Errorf("--minutes cannot be negative, got %d", minutes)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sess, err := openSession(ctx, o, consoleLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			d := sess.dash
			d.SwitchMode(mode)
			if minutes > 0 {
				d.SetCustomDuration(strconv.Itoa(minutes))
			}
			startDay := d.Now()
			before := d.MinutesOnDate(startDay)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s for %d minutes. Ctrl+C to stop.\n", mode.Label(), d.ConfiguredMinutes())
			d.Start()

			err = d.Run(ctx, time.Second, func(res timer.Result) {
				fmt.Fprintf(out, "\r%s  %s ", mode.Label(), d.Display())
				if res.Completed {
					fmt.Fprintf(out, "\n%s complete\a\n", mode.Label())
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if err != nil {
				fmt.Fprintln(out, "\nStopped.")
			}

			if mode == timer.ModeFocus {
				banked := d.MinutesOnDate(startDay) - before
				fmt.Fprintf(out, "Banked %s today, %d sessions completed.\n", minutesLabel(banked), d.SessionsToday())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", string(timer.ModeFocus), "focus, short_break or long_break")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "countdown length in minutes (default: the configured length)")
	return cmd
}
