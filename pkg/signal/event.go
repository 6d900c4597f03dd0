package signal

import (
	"errors"
	"fmt"
)

// ErrUnknownCode is returned when a byte does not map to a known event.
var ErrUnknownCode = errors.New("unknown button code")

// Event is a discrete press delivered by a signal source.
type Event int

const (
	Primary   Event = iota + 1 // Advances the tracker
	Secondary                  // Reserved; ignored by the runner
)

func (e Event) String() string {
	switch e {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Code returns the wire byte for the event.
func (e Event) Code() byte {
	switch e {
	case Primary:
		return '1'
	case Secondary:
		return '2'
	}
	return 0
}

// Decode maps a wire byte to an event.
func Decode(b byte) (Event, error) {
	switch b {
	case '1':
		return Primary, nil
	case '2':
		return Secondary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCode, b)
}

// Source delivers events without blocking.
type Source interface {
	// Poll returns the next pending event, or false when none is queued.
	Poll() (Event, bool)

	// Close releases the source.
	Close() error
}
