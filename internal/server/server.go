package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ogulcanaydogan/tomatina/internal/runner"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
)

// StatusSource provides the latest tracker snapshot.
type StatusSource interface {
	Current() (runner.Snapshot, bool)
}

// HistorySource aggregates journaled transitions.
type HistorySource interface {
	Summarize(ctx context.Context, filter model.HistoryFilter) (*model.HistorySummary, error)
}

// Server provides read-only status and history endpoints.
type Server struct {
	status  StatusSource
	history HistorySource
	now     func() time.Time
	mux     *http.ServeMux
	logger  *slog.Logger
}

// NewServer creates an API server. history may be nil when the journal is
// disabled.
func NewServer(status StatusSource, history HistorySource, logger *slog.Logger) *Server {
	s := &Server{
		status:  status,
		history: history,
		now:     time.Now,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/v1/history", s.handleHistory)
}

// Handler returns the HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("status server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.status.Current()
	if !ok {
		http.Error(w, "tracker not started", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	period, err := model.ParseHistoryPeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, end := model.PeriodBounds(period, s.now())
	filter := model.HistoryFilter{
		SessionID: r.URL.Query().Get("session"),
		StartTime: start,
		EndTime:   end,
	}

	summary, err := s.history.Summarize(ctx, filter)
	if err != nil {
		s.logger.Error("summarize history", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
