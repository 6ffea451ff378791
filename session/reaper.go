package session

import (
	"context"
	"time"

	"github.com/maefall/zenet/application"
)

// IdleReaper is the interface RunIdleReaperLoop drives; Manager
// implements it via ReapIdle below.
type IdleReaper interface {
	ReapIdle(timeout time.Duration, now time.Time) int
}

// ReapIdle removes every authenticated session whose AuthenticatedAt is
// older than timeout and reports how many it removed. Unauthenticated
// sessions are left alone — they're mid-handshake and owned by their
// connection task, not the idle policy (see the idle reaper entry in
// DESIGN.md's session section).
func (m *Manager) ReapIdle(timeout time.Duration, now time.Time) int {
	cutoff := now.Add(-timeout)
	removed := 0
	for _, id := range m.Connections() {
		at, ok := m.AuthenticatedAt(id)
		if !ok {
			continue
		}
		if time.Unix(int64(at), 0).Before(cutoff) {
			m.Remove(id)
			removed++
		}
	}
	return removed
}

// RunIdleReaperLoop periodically removes sessions idle for longer than
// timeout. It blocks until ctx is cancelled. Grounded on the teacher's
// RunIdleReaperLoop: a ticker plus a select against ctx.Done, adapted
// to this package's Manager/application.Logger/application.Clock.
func RunIdleReaperLoop(ctx context.Context, reaper IdleReaper, clock application.Clock, timeout, interval time.Duration, logger application.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := reaper.ReapIdle(timeout, clock.Now()); n > 0 {
				logger.Printf("reaped %d idle session(s)", n)
			}
		}
	}
}
