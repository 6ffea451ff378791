package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeLogger struct {
	mu   sync.Mutex
	logs []string
}

func (l *fakeLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, format)
}

func (l *fakeLogger) containsSubstring(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.logs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestReapIdle_RemovesOnlyStaleAuthenticatedSessions(t *testing.T) {
	m := NewManager()
	base := time.Unix(1_700_000_000, 0)

	m.Authenticate(1, "alice", uint64(base.Unix()))
	m.Authenticate(2, "bob", uint64(base.Add(time.Hour).Unix()))
	m.Create(3) // unauthenticated: mid-handshake, must never be reaped

	removed := m.ReapIdle(30*time.Minute, base.Add(45*time.Minute))

	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if m.IsAuthenticated(1) {
		t.Fatalf("expected stale session 1 to be reaped")
	}
	if !m.IsAuthenticated(2) {
		t.Fatalf("expected fresh session 2 to survive")
	}
	if m.ActiveConnections() != 2 {
		t.Fatalf("ActiveConnections() = %d, want 2 (session 2 and unauthenticated session 3)", m.ActiveConnections())
	}
}

func TestRunIdleReaperLoop_StopsOnContextCancel(t *testing.T) {
	m := NewManager()
	clock := &fakeClock{now: time.Unix(0, 0)}
	logger := &fakeLogger{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunIdleReaperLoop(ctx, m, clock, time.Hour, time.Millisecond, logger)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("RunIdleReaperLoop did not stop after context cancellation")
	}
}

func TestRunIdleReaperLoop_LogsWhenSessionsAreReaped(t *testing.T) {
	m := NewManager()
	base := time.Unix(1_700_000_000, 0)
	m.Authenticate(1, "alice", uint64(base.Unix()))

	clock := &fakeClock{now: base.Add(time.Hour)}
	logger := &fakeLogger{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go RunIdleReaperLoop(ctx, m, clock, time.Minute, time.Millisecond, logger)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if logger.containsSubstring("reaped") {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected the reaper loop to log a reaped session")
}
