package tracker

import (
	"fmt"
	"time"
)

// LoggableTimeRemaining reports remaining rounded to whole seconds, but only
// when it lies within half a poll interval of a whole minute. Polling every
// pollInterval, this yields one announcement per minute boundary.
func LoggableTimeRemaining(remaining, pollInterval time.Duration) (time.Duration, bool) {
	shifted := remaining + pollInterval/2
	if shifted < 0 {
		return 0, false
	}
	if shifted.Milliseconds()%time.Minute.Milliseconds() > pollInterval.Milliseconds() {
		return 0, false
	}
	return shifted.Truncate(time.Second), true
}

// FormatClock renders d as m:ss.
func FormatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%s%d:%02d", sign, secs/60, secs%60)
}
