package noncestore

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain guards against a goroutine leak from MemoryStore's
// finalizer-backed key wrapping (internal/secret.Bytes).
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
