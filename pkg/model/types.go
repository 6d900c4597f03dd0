package model

import (
	"errors"
	"fmt"
	"time"
)

// Phase is one discrete mode of the timer.
type Phase int

const (
	PendingWork Phase = iota
	Working
	PendingShortBreak
	ShortBreak
	PendingLongBreak
	LongBreak
)

var phaseNames = [...]string{
	PendingWork:       "pending_work",
	Working:           "working",
	PendingShortBreak: "pending_short_break",
	ShortBreak:        "short_break",
	PendingLongBreak:  "pending_long_break",
	LongBreak:         "long_break",
}

// Phases returns every phase in cycle order.
func Phases() []Phase {
	return []Phase{PendingWork, Working, PendingShortBreak, ShortBreak, PendingLongBreak, LongBreak}
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Pending reports whether the phase waits for an acknowledgment before its
// timed successor starts.
func (p Phase) Pending() bool {
	switch p {
	case PendingWork, PendingShortBreak, PendingLongBreak:
		return true
	}
	return false
}

// ParsePhase returns the phase with the given name.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Cause records what triggered a transition.
type Cause string

const (
	CauseAdvance Cause = "advance" // External acknowledgment (button press)
	CauseTimeout Cause = "timeout" // Configured duration elapsed
)

// Transition describes a single phase change.
type Transition struct {
	From               Phase     `json:"from"`
	To                 Phase     `json:"to"`
	Cause              Cause     `json:"cause"`
	CompletedIntervals uint64    `json:"completed_intervals"`
	At                 time.Time `json:"at"`
}

// SkippedAhead reports whether the transition left Working before its
// duration elapsed.
func (t Transition) SkippedAhead() bool {
	return t.From == Working && t.Cause == CauseAdvance
}

// TransitionRecord is a journaled transition.
type TransitionRecord struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
	Transition
}

// Session identifies a single daemon run.
type Session struct {
	ID        string    `json:"id" db:"id"`
	StartedAt time.Time `json:"started_at" db:"started_at"`
	WorkMins  int       `json:"work_minutes" db:"work_minutes"`
	ShortMins int       `json:"short_break_minutes" db:"short_break_minutes"`
	LongMins  int       `json:"long_break_minutes" db:"long_break_minutes"`
}

// HistoryPeriod defines the time window for a history report.
type HistoryPeriod string

const (
	PeriodDaily   HistoryPeriod = "daily"
	PeriodWeekly  HistoryPeriod = "weekly"
	PeriodMonthly HistoryPeriod = "monthly"
)

// ErrUnknownPeriod is returned for a history period other than daily,
// weekly or monthly.
var ErrUnknownPeriod = errors.New("unknown history period")

// ParseHistoryPeriod validates a period name. An empty name means daily.
func ParseHistoryPeriod(name string) (HistoryPeriod, error) {
	switch p := HistoryPeriod(name); p {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	}
	return "", fmt.Errorf("%w %q (want daily, weekly or monthly)", ErrUnknownPeriod, name)
}

// HistoryFilter controls which transitions are included in reports.
type HistoryFilter struct {
	SessionID string    `json:"session_id,omitempty"`
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

// HistorySummary holds aggregated transition statistics.
type HistorySummary struct {
	CompletedIntervals int64           `json:"completed_intervals"`
	SkippedAhead       int64           `json:"skipped_ahead"`
	ShortBreaks        int64           `json:"short_breaks"`
	LongBreaks         int64           `json:"long_breaks"`
	Sessions           int64           `json:"sessions"`
	TransitionCount    int64           `json:"transition_count"`
	ByPhase            map[Phase]int64 `json:"by_phase,omitempty"`
}

// PeriodBounds returns the start and end time of the period containing now.
func PeriodBounds(period HistoryPeriod, now time.Time) (start, end time.Time) {
	now = now.UTC()
	switch period {
	case PeriodWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	default:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	}
	return start, end
}
