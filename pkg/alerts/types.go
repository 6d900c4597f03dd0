package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/model"
)

// AlertKind indicates what the user is being asked to do.
type AlertKind string

const (
	AlertBreakDue AlertKind = "break_due" // Work interval finished
	AlertWorkDue  AlertKind = "work_due"  // Break finished
)

// Alert is a "time's up" notification for an expired timed phase.
type Alert struct {
	Kind               AlertKind `json:"kind"`
	From               string    `json:"from"`
	Phase              string    `json:"phase"`
	CompletedIntervals uint64    `json:"completed_intervals"`
	Message            string    `json:"message"`
	At                 time.Time `json:"at"`
}

// FromTransition builds the alert for a timed phase expiring into a pending
// phase. Other transitions produce no alert.
func FromTransition(tr model.Transition) (Alert, bool) {
	if tr.Cause != model.CauseTimeout || !tr.To.Pending() {
		return Alert{}, false
	}

	alert := Alert{
		From:               tr.From.String(),
		Phase:              tr.To.String(),
		CompletedIntervals: tr.CompletedIntervals,
		At:                 tr.At,
	}
	switch tr.To {
	case model.PendingShortBreak:
		alert.Kind = AlertBreakDue
		alert.Message = fmt.Sprintf("Interval %d done, time for a short break", tr.CompletedIntervals)
	case model.PendingLongBreak:
		alert.Kind = AlertBreakDue
		alert.Message = fmt.Sprintf("Interval %d done, time for a long break", tr.CompletedIntervals)
	default:
		alert.Kind = AlertWorkDue
		alert.Message = "Break over, press the button to start working"
	}
	return alert, true
}

// Notifier sends alerts to external systems.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers an alert. Implementations must be safe for concurrent use.
	Send(ctx context.Context, alert Alert) error
}
