package journal

import (
	"context"

	"github.com/ogulcanaydogan/tomatina/pkg/model"
)

// Journal is the append-only history of phase transitions.
type Journal interface {
	// StartSession records the start of a daemon run.
	StartSession(ctx context.Context, session *model.Session) error

	// RecordTransition appends a single transition.
	RecordTransition(ctx context.Context, record *model.TransitionRecord) error

	// QueryTransitions returns transitions matching the filter, newest first.
	QueryTransitions(ctx context.Context, filter model.HistoryFilter) ([]model.TransitionRecord, error)

	// Summarize aggregates transitions matching the filter.
	Summarize(ctx context.Context, filter model.HistoryFilter) (*model.HistorySummary, error)

	// Close releases resources.
	Close() error
}
