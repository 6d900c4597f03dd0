package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/journal"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

func newTestJournal(t *testing.T) *journal.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func newTestSession(t *testing.T, j journal.Journal, at time.Time) *model.Session {
	t.Helper()
	s := &model.Session{StartedAt: at, WorkMins: 20, ShortMins: 5, LongMins: 15}
	require.NoError(t, j.StartSession(context.Background(), s))
	return s
}

// seedCycle records one work interval: start, timeout, break start, break end.
func seedCycle(t *testing.T, j journal.Journal, sessionID string, at time.Time, interval uint64, skip bool) {
	t.Helper()
	ctx := context.Background()
	toBreak, toPending := model.ShortBreak, model.PendingShortBreak
	if interval%4 == 0 {
		toBreak, toPending = model.LongBreak, model.PendingLongBreak
	}

	steps := []model.Transition{
		{From: model.PendingWork, To: model.Working, Cause: model.CauseAdvance, CompletedIntervals: interval - 1, At: at},
	}
	if skip {
		steps = append(steps,
			model.Transition{From: model.Working, To: toBreak, Cause: model.CauseAdvance, CompletedIntervals: interval, At: at.Add(time.Minute)},
		)
	} else {
		steps = append(steps,
			model.Transition{From: model.Working, To: toPending, Cause: model.CauseTimeout, CompletedIntervals: interval, At: at.Add(20 * time.Minute)},
			model.Transition{From: toPending, To: toBreak, Cause: model.CauseAdvance, CompletedIntervals: interval, At: at.Add(21 * time.Minute)},
		)
	}
	steps = append(steps,
		model.Transition{From: toBreak, To: model.PendingWork, Cause: model.CauseTimeout, CompletedIntervals: interval, At: at.Add(30 * time.Minute)},
	)

	for _, tr := range steps {
		require.NoError(t, j.RecordTransition(ctx, &model.TransitionRecord{SessionID: sessionID, Transition: tr}))
	}
}

func TestSQLite_StartSession(t *testing.T) {
	j := newTestJournal(t)
	s := newTestSession(t, j, base)
	assert.NotEmpty(t, s.ID)
}

func TestSQLite_RecordTransition(t *testing.T) {
	j := newTestJournal(t)
	s := newTestSession(t, j, base)

	record := &model.TransitionRecord{
		SessionID: s.ID,
		Transition: model.Transition{
			From: model.PendingWork, To: model.Working, Cause: model.CauseAdvance,
		},
	}
	require.NoError(t, j.RecordTransition(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.At.IsZero())
}

func TestSQLite_RecordTransition_InvalidCause(t *testing.T) {
	j := newTestJournal(t)
	s := newTestSession(t, j, base)

	err := j.RecordTransition(context.Background(), &model.TransitionRecord{
		SessionID:  s.ID,
		Transition: model.Transition{From: model.PendingWork, To: model.Working, Cause: "wished"},
	})
	assert.Error(t, err)
}

func TestSQLite_QueryTransitions(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	s := newTestSession(t, j, base)
	seedCycle(t, j, s.ID, base, 1, false)

	records, err := j.QueryTransitions(ctx, model.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Newest first.
	assert.Equal(t, model.ShortBreak, records[0].From)
	assert.Equal(t, model.PendingWork, records[0].To)
	assert.Equal(t, model.CauseTimeout, records[0].Cause)
	assert.Equal(t, uint64(1), records[0].CompletedIntervals)
	assert.Equal(t, s.ID, records[0].SessionID)
	assert.True(t, records[0].At.Equal(base.Add(30*time.Minute)))

	limited, err := j.QueryTransitions(ctx, model.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLite_QueryTransitions_Filters(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	yesterday := newTestSession(t, j, base.Add(-24*time.Hour))
	seedCycle(t, j, yesterday.ID, base.Add(-24*time.Hour), 1, false)
	today := newTestSession(t, j, base)
	seedCycle(t, j, today.ID, base, 1, false)

	bySession, err := j.QueryTransitions(ctx, model.HistoryFilter{SessionID: today.ID})
	require.NoError(t, err)
	assert.Len(t, bySession, 4)

	start, end := model.PeriodBounds(model.PeriodDaily, base)
	byTime, err := j.QueryTransitions(ctx, model.HistoryFilter{StartTime: start, EndTime: end})
	require.NoError(t, err)
	assert.Len(t, byTime, 4)
	for _, r := range byTime {
		assert.Equal(t, today.ID, r.SessionID)
	}
}

func TestSQLite_Summarize(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	s := newTestSession(t, j, base)

	at := base
	for i := uint64(1); i <= 4; i++ {
		seedCycle(t, j, s.ID, at, i, i == 2)
		at = at.Add(time.Hour)
	}

	summary, err := j.Summarize(ctx, model.HistoryFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.CompletedIntervals)
	assert.Equal(t, int64(1), summary.SkippedAhead)
	assert.Equal(t, int64(3), summary.ShortBreaks)
	assert.Equal(t, int64(1), summary.LongBreaks)
	assert.Equal(t, int64(1), summary.Sessions)
	assert.Equal(t, int64(15), summary.TransitionCount)
	assert.Equal(t, int64(4), summary.ByPhase[model.Working])
	assert.Equal(t, int64(1), summary.ByPhase[model.PendingLongBreak])
}

func TestSQLite_Summarize_Empty(t *testing.T) {
	j := newTestJournal(t)

	summary, err := j.Summarize(context.Background(), model.HistoryFilter{})
	require.NoError(t, err)
	assert.Zero(t, summary.CompletedIntervals)
	assert.Zero(t, summary.TransitionCount)
	assert.Empty(t, summary.ByPhase)
}

func TestSQLite_ReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := journal.NewSQLite(dbPath)
	require.NoError(t, err)
	s := newTestSession(t, j, base)
	seedCycle(t, j, s.ID, base, 1, false)
	require.NoError(t, j.Close())

	j, err = journal.NewSQLite(dbPath)
	require.NoError(t, err)
	defer j.Close()

	summary, err := j.Summarize(context.Background(), model.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.CompletedIntervals)
}

func TestRecorder(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	rec, err := journal.NewRecorder(ctx, j, &model.Session{StartedAt: base, WorkMins: 20, ShortMins: 5, LongMins: 15})
	require.NoError(t, err)
	require.NotEmpty(t, rec.SessionID())

	require.NoError(t, rec.Record(ctx, model.Transition{
		From: model.PendingWork, To: model.Working, Cause: model.CauseAdvance, At: base,
	}))

	records, err := j.QueryTransitions(ctx, model.HistoryFilter{SessionID: rec.SessionID()})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.Working, records[0].To)
}
