package session

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that RunIdleReaperLoop's goroutine never outlives
// its test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
