package noncestore

import (
	"context"
	"time"

	"github.com/maefall/zenet/application"
)

// RunCleanupLoop periodically calls store.Cleanup so per-client tables
// for clients that handshook once and never returned don't pin memory
// forever. It blocks until ctx is cancelled. Grounded on the same
// ticker-plus-select shape as session.RunIdleReaperLoop, which is
// itself grounded on the teacher's RunIdleReaperLoop (see
// SPEC_FULL.md's Supplemented Features). Cleanup reports no count, so
// unlike RunIdleReaperLoop there's nothing actionable to log per tick.
func RunCleanupLoop(ctx context.Context, store Store, clock application.Clock, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Cleanup(clock.Now())
		}
	}
}
