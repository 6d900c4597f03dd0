package runner

import (
	"sync"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/tracker"
)

// Snapshot is the published view of the tracker.
type Snapshot struct {
	tracker.Status
	RemainingSeconds float64   `json:"remaining_seconds"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Board holds the latest snapshot for readers on other goroutines.
type Board struct {
	mu       sync.RWMutex
	snapshot Snapshot
	ok       bool
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Publish replaces the current snapshot.
func (b *Board) Publish(status tracker.Status, at time.Time) {
	s := Snapshot{Status: status, UpdatedAt: at}
	if status.Timed {
		s.RemainingSeconds = status.Remaining.Seconds()
	}

	b.mu.Lock()
	b.snapshot = s
	b.ok = true
	b.mu.Unlock()
}

// Current returns the latest snapshot, or false before the first publish.
func (b *Board) Current() (Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot, b.ok
}
