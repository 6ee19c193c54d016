// Package cli holds the itineris cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sadopc/itineris/internal/store"
	"github.com/sadopc/itineris/internal/tui"
)

const (
	envDB      = "ITINERIS_DB"
	envUser    = "ITINERIS_USER"
	envSyncURL = "ITINERIS_SYNC_URL"
	envLogFile = "ITINERIS_LOG_FILE"
)

// options are the process-level settings shared by every command that
// opens the local database.
type options struct {
	dbPath  string
	userID  string
	syncURL string
	logFile string

	// isTerminal reports whether the TUI can take over the terminal.
	isTerminal func() bool
}

func defaultOptions() *options {
	return &options{
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// storeFlags binds the database, identity and sync flags. Defaults come
// from the environment.
func storeFlags(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("store", pflag.ContinueOnError)
	fs.StringVar(&o.dbPath, "db", os.Getenv(envDB), "SQLite database path (default <config dir>/itineris/itineris.db)")
	fs.StringVar(&o.userID, "user", envOr(envUser, store.GuestUser), "user the study data is kept under")
	fs.StringVar(&o.syncURL, "sync-url", os.Getenv(envSyncURL), "base URL of an itineris sync server")
	fs.StringVar(&o.logFile, "log-file", os.Getenv(envLogFile), "TUI log file (default <config dir>/itineris/itineris.log)")
	return fs
}

// NewRootCmd creates the top-level "itineris" command. Without a
// subcommand it runs the TUI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultOptions())
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "itineris",
		Short:         "Study timer, weekly study ledger and agenda",
		Long:          "itineris runs focus and break countdowns, banks focus time per day and keeps a weekly agenda.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), o)
		},
	}
	root.PersistentFlags().AddFlagSet(storeFlags(o))

	root.AddCommand(
		newStatsCmd(o),
		newExportCmd(o),
		newTimerCmd(o),
		newServeCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func runTUI(ctx context.Context, o *options) error {
	if !o.isTerminal() {
		return errors.New("the TUI needs a terminal; try `itineris stats` or `itineris timer`")
	}

	logger, closeLog, err := openLogFile(o.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := openSession(ctx, o, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	logger.Info("starting tui", "user", sess.dash.UserID())
	p := tea.NewProgram(tui.NewApp(sess.store, sess.dash), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
