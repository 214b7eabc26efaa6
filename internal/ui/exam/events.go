package exam

import (
	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// sessionLoadedMsg delivers the started test session.
type sessionLoadedMsg struct {
	session api.TestSession
}

// loadFailedMsg reports a failed start-test call or identity read.
type loadFailedMsg struct {
	err error
}

// tickMsg consumes one second of the countdown. The timer id ties the
// tick to the session that armed it; stale ticks are dropped.
type tickMsg struct {
	timerID int
}

// submittedMsg reports an acknowledged submission.
type submittedMsg struct {
	ack api.SubmitAck
}

// submitFailedMsg reports a failed submission.
type submitFailedMsg struct {
	err error
}
