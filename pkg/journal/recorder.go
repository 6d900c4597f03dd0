package journal

import (
	"context"

	"github.com/ogulcanaydogan/tomatina/pkg/model"
)

// Recorder appends transitions of a single session.
type Recorder struct {
	journal   Journal
	sessionID string
}

// NewRecorder starts a session in j and returns a recorder bound to it.
func NewRecorder(ctx context.Context, j Journal, session *model.Session) (*Recorder, error) {
	if err := j.StartSession(ctx, session); err != nil {
		return nil, err
	}
	return &Recorder{journal: j, sessionID: session.ID}, nil
}

// SessionID returns the bound session.
func (r *Recorder) SessionID() string { return r.sessionID }

// Record appends tr to the journal.
func (r *Recorder) Record(ctx context.Context, tr model.Transition) error {
	return r.journal.RecordTransition(ctx, &model.TransitionRecord{
		SessionID:  r.sessionID,
		Transition: tr,
	})
}
