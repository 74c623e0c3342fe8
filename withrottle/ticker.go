package withrottle

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// pollTicker is a wall-clock interval check for poll-driven loops. It never
// fires on its own; due reports whether at least d has elapsed since the
// last fire and, if so, restarts the reference point at the current time.
type pollTicker struct {
	clock clockwork.Clock
	last  time.Time
}

func newPollTicker(clock clockwork.Clock) *pollTicker {
	return &pollTicker{clock: clock, last: clock.Now()}
}

func (t *pollTicker) due(d time.Duration) bool {
	now := t.clock.Now()
	if now.Sub(t.last) < d {
		return false
	}
	t.last = now

	return true
}

func (t *pollTicker) restart() {
	t.last = t.clock.Now()
}
