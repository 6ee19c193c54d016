package remote

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxSnapshotBytes = 4 << 20

type Middleware func(http.HandlerFunc) http.HandlerFunc

// Handler serves the sync API backed by store.
func Handler(logger *slog.Logger, store *Store) http.HandlerFunc {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth())
	mux.HandleFunc("GET /users/{user_id}/snapshot", handleGetSnapshot(logger, store))
	mux.HandleFunc("PUT /users/{user_id}/snapshot", handlePutSnapshot(logger, store, time.Now))
	return WithAccessLogs(logger)(mux.ServeHTTP)
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	}
}

func handleGetSnapshot(logger *slog.Logger, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.PathValue("user_id"))
		if userID == "" {
			http.Error(w, "missing user id", http.StatusBadRequest)
			return
		}

		snap, err := store.Get(r.Context(), userID)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "no snapshot", http.StatusNotFound)
			return
		} else if err != nil {
			logger.Error("get snapshot", "user", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(logger, w, snap)
	}
}

func handlePutSnapshot(logger *slog.Logger, store *Store, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.PathValue("user_id"))
		if userID == "" {
			http.Error(w, "missing user id", http.StatusBadRequest)
			return
		}

		var snap Snapshot
		body := http.MaxBytesReader(w, r.Body, maxSnapshotBytes)
		if err := json.NewDecoder(body).Decode(&snap); err != nil {
			http.Error(w, "invalid snapshot: "+err.Error(), http.StatusBadRequest)
			return
		}
		snap.Revision = gonanoid.Must()
		snap.UpdatedAt = now().UTC()

		if err := store.Put(r.Context(), userID, &snap); err != nil {
			logger.Error("put snapshot", "user", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(logger, w, &snap)
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func WithAccessLogs(logger *slog.Logger) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next(rec, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		}
	}
}
