// Package status serves a small HTTP surface while a run is in flight:
// liveness, current run progress, and archived run history.
package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ferrovax/vidrelay/internal/archive"
	"github.com/ferrovax/vidrelay/internal/walker"
)

var startTime = time.Now()

// Snapshotter provides the current run progress.
type Snapshotter interface {
	Snapshot() walker.Snapshot
}

// Server is the status HTTP server.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// New creates a status server on addr. store may be nil when archiving is
// disabled; the /runs endpoint is then omitted.
func New(addr string, src Snapshotter, store *archive.Store, logger *slog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      newRouter(src, store, logger),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Info("status server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func newRouter(src Snapshotter, store *archive.Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealth)
	r.Get("/status", handleStatus(src))
	if store != nil {
		r.Get("/runs", handleRuns(store))
	}

	return r
}

// HealthResponse is the JSON response for the liveness probe.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	})
}

func handleStatus(src Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, src.Snapshot())
	}
}

func handleRuns(store *archive.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := store.LastRuns(r.Context(), 20)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if runs == nil {
			runs = []archive.RunRow{}
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestLogger logs each request with its status and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
