package tracker

import "time"

// intervalsPerLongBreak is the number of completed work intervals between
// long breaks.
const intervalsPerLongBreak = 4

// Tracker is the Pomodoro state machine.
//
// A Tracker is not safe for concurrent use. Callers must serialize Next, Tick
// and TimeRemaining, and must pass non-decreasing values of now.
type Tracker struct {
	phase              Phase
	enteredPhaseAt     time.Time
	completedIntervals uint64
	config             TrackerConfig
}

// Status is a point-in-time view of a Tracker.
type Status struct {
	Phase              Phase         `json:"phase"`
	CompletedIntervals uint64        `json:"completed_intervals"`
	EnteredPhaseAt     time.Time     `json:"entered_at"`
	Remaining          time.Duration `json:"-"`
	Timed              bool          `json:"timed"`
}

// New creates a tracker waiting for the first work interval to be started.
func New(config TrackerConfig, now time.Time) *Tracker {
	return &Tracker{
		phase:          PendingWork,
		enteredPhaseAt: now,
		config:         config,
	}
}

func (t *Tracker) Phase() Phase               { return t.phase }
func (t *Tracker) CompletedIntervals() uint64 { return t.completedIntervals }
func (t *Tracker) EnteredPhaseAt() time.Time  { return t.enteredPhaseAt }
func (t *Tracker) Config() TrackerConfig      { return t.config }

// Next advances to the following phase immediately. Leaving Working this way
// counts the interval even if the work duration has not elapsed.
func (t *Tracker) Next(now time.Time) Transition {
	var to Phase
	switch t.phase {
	case PendingWork, ShortBreak, LongBreak:
		to = Working
	case Working:
		to = t.completeInterval(ShortBreak, LongBreak)
	case PendingShortBreak:
		to = ShortBreak
	case PendingLongBreak:
		to = LongBreak
	}
	return t.enter(to, CauseAdvance, now)
}

// Tick moves a timed phase to its pending successor once the phase's
// duration has elapsed. Pending phases only advance through Next.
func (t *Tracker) Tick(now time.Time) (Transition, bool) {
	elapsed := now.Sub(t.enteredPhaseAt)
	switch t.phase {
	case Working:
		if elapsed >= t.config.work {
			return t.enter(t.completeInterval(PendingShortBreak, PendingLongBreak), CauseTimeout, now), true
		}
	case ShortBreak:
		if elapsed >= t.config.shortBreak {
			return t.enter(PendingWork, CauseTimeout, now), true
		}
	case LongBreak:
		if elapsed >= t.config.longBreak {
			return t.enter(PendingWork, CauseTimeout, now), true
		}
	}
	return Transition{}, false
}

// TimeRemaining returns how long the current timed phase has left. The value
// is negative when the deadline passed but Tick has not run yet. Pending
// phases report false.
func (t *Tracker) TimeRemaining(now time.Time) (time.Duration, bool) {
	d, ok := t.config.Duration(t.phase)
	if !ok {
		return 0, false
	}
	return d - now.Sub(t.enteredPhaseAt), true
}

// Snapshot captures the tracker state at now.
func (t *Tracker) Snapshot(now time.Time) Status {
	remaining, timed := t.TimeRemaining(now)
	return Status{
		Phase:              t.phase,
		CompletedIntervals: t.completedIntervals,
		EnteredPhaseAt:     t.enteredPhaseAt,
		Remaining:          remaining,
		Timed:              timed,
	}
}

// completeInterval counts a finished work interval and picks the break that
// follows it.
func (t *Tracker) completeInterval(short, long Phase) Phase {
	t.completedIntervals++
	if t.completedIntervals%intervalsPerLongBreak == 0 {
		return long
	}
	return short
}

func (t *Tracker) enter(phase Phase, cause Cause, now time.Time) Transition {
	tr := Transition{
		From:               t.phase,
		To:                 phase,
		Cause:              cause,
		CompletedIntervals: t.completedIntervals,
		At:                 now,
	}
	t.phase = phase
	t.enteredPhaseAt = now
	return tr
}
