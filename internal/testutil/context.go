package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single test's wait on the fake backend.
const DefaultTimeout = 5 * time.Second

// Context returns a context scoped to the test: it expires after timeout
// (DefaultTimeout when nonpositive), stays inside the test binary's own
// deadline, and is cancelled at cleanup.
func Context(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.Deadline(); ok {
		if headroom := time.Until(deadline) - time.Second; headroom > 0 && headroom < timeout {
			timeout = headroom
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
