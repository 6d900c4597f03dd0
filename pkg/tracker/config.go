package tracker

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDuration is returned when a phase duration is not positive.
var ErrInvalidDuration = errors.New("phase duration must be positive")

// TrackerConfig holds the durations of the three timed phases.
// It cannot be changed after construction.
type TrackerConfig struct {
	work       time.Duration
	shortBreak time.Duration
	longBreak  time.Duration
}

// NewTrackerConfig validates and builds a TrackerConfig.
func NewTrackerConfig(work, shortBreak, longBreak time.Duration) (TrackerConfig, error) {
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"work", work},
		{"short break", shortBreak},
		{"long break", longBreak},
	} {
		if d.value <= 0 {
			return TrackerConfig{}, fmt.Errorf("%s duration %s: %w", d.name, d.value, ErrInvalidDuration)
		}
	}
	return TrackerConfig{work: work, shortBreak: shortBreak, longBreak: longBreak}, nil
}

func (c TrackerConfig) Work() time.Duration       { return c.work }
func (c TrackerConfig) ShortBreak() time.Duration { return c.shortBreak }
func (c TrackerConfig) LongBreak() time.Duration  { return c.longBreak }

// Duration returns the configured length of a timed phase. Pending phases
// have no length and report false.
func (c TrackerConfig) Duration(p Phase) (time.Duration, bool) {
	switch p {
	case Working:
		return c.work, true
	case ShortBreak:
		return c.shortBreak, true
	case LongBreak:
		return c.longBreak, true
	}
	return 0, false
}
