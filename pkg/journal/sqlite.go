package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogulcanaydogan/tomatina/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements Journal on an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite journal at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) StartSession(ctx context.Context, session *model.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	session.StartedAt = session.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, work_minutes, short_break_minutes, long_break_minutes)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.StartedAt, session.WorkMins, session.ShortMins, session.LongMins,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLite) RecordTransition(ctx context.Context, record *model.TransitionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.At.IsZero() {
		record.At = time.Now()
	}
	record.At = record.At.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transitions (id, session_id, from_phase, to_phase, cause, completed_intervals, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.SessionID, record.From.String(), record.To.String(),
		string(record.Cause), int64(record.CompletedIntervals), record.At,
	)
	if err != nil {
		return fmt.Errorf("insert transition: %w", err)
	}
	return nil
}

func (s *SQLite) QueryTransitions(ctx context.Context, filter model.HistoryFilter) ([]model.TransitionRecord, error) {
	query := "SELECT id, session_id, from_phase, to_phase, cause, completed_intervals, at FROM transitions"
	where, args := buildWhereClause(filter)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var records []model.TransitionRecord
	for rows.Next() {
		var (
			r         model.TransitionRecord
			from, to  string
			cause     string
			intervals int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &from, &to, &cause, &intervals, &r.At); err != nil {
			return nil, fmt.Errorf("scan transition row: %w", err)
		}
		if r.From, err = model.ParsePhase(from); err != nil {
			return nil, fmt.Errorf("transition %s: %w", r.ID, err)
		}
		if r.To, err = model.ParsePhase(to); err != nil {
			return nil, fmt.Errorf("transition %s: %w", r.ID, err)
		}
		r.Cause = model.Cause(cause)
		r.CompletedIntervals = uint64(intervals)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLite) Summarize(ctx context.Context, filter model.HistoryFilter) (*model.HistorySummary, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN from_phase = 'working' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN from_phase = 'working' AND cause = 'advance' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN to_phase = 'short_break' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN to_phase = 'long_break' THEN 1 ELSE 0 END), 0),
		COUNT(DISTINCT session_id),
		COUNT(*)
	FROM transitions`
	where, args := buildWhereClause(filter)
	if where != "" {
		query += " WHERE " + where
	}

	summary := &model.HistorySummary{}
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.CompletedIntervals,
		&summary.SkippedAhead,
		&summary.ShortBreaks,
		&summary.LongBreaks,
		&summary.Sessions,
		&summary.TransitionCount,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize transitions: %w", err)
	}

	summary.ByPhase, err = s.countByPhase(ctx, where, args)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// countByPhase counts how often each phase was entered.
func (s *SQLite) countByPhase(ctx context.Context, where string, args []any) (map[model.Phase]int64, error) {
	query := "SELECT to_phase, COUNT(*) FROM transitions"
	if where != "" {
		query += " WHERE " + where
	}
	query += " GROUP BY to_phase"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by phase: %w", err)
	}
	defer rows.Close()

	result := make(map[model.Phase]int64)
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan phase count: %w", err)
		}
		phase, err := model.ParsePhase(name)
		if err != nil {
			return nil, err
		}
		result[phase] = count
	}
	return result, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// buildWhereClause constructs a SQL WHERE clause from a HistoryFilter.
func buildWhereClause(filter model.HistoryFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.SessionID != "" {
		conditions = append(conditions, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if !filter.StartTime.IsZero() {
		conditions = append(conditions, "at >= ?")
		args = append(args, filter.StartTime.UTC())
	}
	if !filter.EndTime.IsZero() {
		conditions = append(conditions, "at < ?")
		args = append(args, filter.EndTime.UTC())
	}

	return strings.Join(conditions, " AND "), args
}
