package tracker

import "github.com/ogulcanaydogan/tomatina/pkg/model"

// Re-export types from model package for convenience.
type (
	Phase      = model.Phase
	Cause      = model.Cause
	Transition = model.Transition
)

// Re-export constants.
const (
	PendingWork       = model.PendingWork
	Working           = model.Working
	PendingShortBreak = model.PendingShortBreak
	ShortBreak        = model.ShortBreak
	PendingLongBreak  = model.PendingLongBreak
	LongBreak         = model.LongBreak

	CauseAdvance = model.CauseAdvance
	CauseTimeout = model.CauseTimeout
)
