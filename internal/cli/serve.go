package cli

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"

	"github.com/sadopc/itineris/internal/remote"
)

func newServeCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server that keeps one snapshot per user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: new(slog.LevelVar),
			}))

			db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
			if err != nil {
				return fmt.Errorf("open badger: %w", err)
			}
			defer db.Close()

			snapshots := remote.NewStore(db)
			users, err := snapshots.Users(ctx)
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			logger.Info("opened snapshot store", "path", dbPath, "users", len(users))

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			return remote.Serve(ctx, logger, ln, remote.Handler(logger, snapshots))
		},
	}

	cmd.Flags().StringVar(&addr, "address", ":8080", "http address to listen to")
	cmd.Flags().StringVar(&dbPath, "database-path", "itineris-sync.db", "path to the badger database")
	return cmd
}
