package runner

import "time"

// Clock provides the current time.
// Tests inject a fake to step through phases without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
