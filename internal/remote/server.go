package remote

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 15 * time.Second

// Serve runs handler on ln until ctx is cancelled, then shuts the server
// down gracefully.
func Serve(ctx context.Context, logger *slog.Logger, ln net.Listener, handler http.Handler) error {
	httpServer := http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Wait for shut down in a separate goroutine.
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		errCh <- httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "address", ln.Addr().String())
	if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
