package server_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogulcanaydogan/tomatina/internal/runner"
	"github.com/ogulcanaydogan/tomatina/internal/server"
	"github.com/ogulcanaydogan/tomatina/pkg/journal"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/ogulcanaydogan/tomatina/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*server.Server, *runner.Board) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := journal.NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	now := time.Now().UTC()
	rec, err := journal.NewRecorder(t.Context(), store, &model.Session{
		StartedAt: now, WorkMins: 20, ShortMins: 5, LongMins: 15,
	})
	require.NoError(t, err)

	// Seed one completed interval
	require.NoError(t, rec.Record(t.Context(), model.Transition{
		From: model.PendingWork, To: model.Working, Cause: model.CauseAdvance, At: now,
	}))
	require.NoError(t, rec.Record(t.Context(), model.Transition{
		From: model.Working, To: model.PendingShortBreak, Cause: model.CauseTimeout,
		CompletedIntervals: 1, At: now,
	}))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	board := runner.NewBoard()
	return server.NewServer(board, store, logger), board
}

func TestServer_Health(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
}

func TestServer_StatusBeforePublish(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServer_Status(t *testing.T) {
	srv, board := setupServer(t)

	entered := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	board.Publish(tracker.Status{
		Phase:              model.Working,
		CompletedIntervals: 2,
		EnteredPhaseAt:     entered,
		Remaining:          90 * time.Second,
		Timed:              true,
	}, entered.Add(18*time.Minute+30*time.Second))

	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var snap runner.Snapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&snap))
	assert.Equal(t, model.Working, snap.Phase)
	assert.Equal(t, uint64(2), snap.CompletedIntervals)
	assert.InDelta(t, 90, snap.RemainingSeconds, 0.001)
	assert.True(t, snap.EnteredPhaseAt.Equal(entered))
}

func TestServer_History(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest("GET", "/api/v1/history?period=daily", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var summary model.HistorySummary
	err := json.NewDecoder(w.Body).Decode(&summary)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.CompletedIntervals)
	assert.Equal(t, int64(2), summary.TransitionCount)
	assert.Equal(t, int64(1), summary.Sessions)
}

func TestServer_HistoryDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.NewServer(runner.NewBoard(), nil, logger)

	req := httptest.NewRequest("GET", "/api/v1/history", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_HistoryUnknownPeriod(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest("GET", "/api/v1/history?period=yearly", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "yearly")
}
