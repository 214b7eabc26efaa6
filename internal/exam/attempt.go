// Package exam holds the attempt state machine behind the timed test flow.
// It is UI-free: the terminal front end feeds it ticks, answer selections,
// and submission outcomes, and renders whatever state results.
package exam

import (
	"github.com/google/uuid"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// Phase is the lifecycle stage of an attempt.
type Phase int

const (
	// PhaseLoading covers the window before the session has arrived.
	PhaseLoading Phase = iota
	// PhaseActive means the countdown is running and answers are mutable.
	PhaseActive
	// PhaseSubmitting means a submission is in flight.
	PhaseSubmitting
	// PhaseDone means the submission was acknowledged.
	PhaseDone
	// PhaseFailed means the last submission failed; a retry is allowed.
	PhaseFailed
)

// String names the phase for messages and tests.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attempt tracks one student's pass through one test session. All methods
// are called from a single goroutine; the guards here exist because the
// one-second tick and a manual submit can race to the same transition
// within one event loop turn.
type Attempt struct {
	session     api.TestSession
	answers     api.AnswerSet
	timeLeft    int
	phase       Phase
	token       string
	questionIDs map[int]struct{}
	timedOut    bool
}

// New returns an attempt in the loading phase.
func New() *Attempt {
	return &Attempt{phase: PhaseLoading, timeLeft: -1}
}

// Begin installs the fetched session: the countdown starts at the session's
// duration, the answer set is empty, and a fresh submission token is minted.
// A session without a positive duration has no countdown to run and starts
// already timed out.
func (a *Attempt) Begin(session api.TestSession) {
	a.session = session
	a.answers = api.AnswerSet{}
	a.timeLeft = session.DurationMinutes * 60
	a.phase = PhaseActive
	a.token = uuid.NewString()
	a.timedOut = false
	a.questionIDs = make(map[int]struct{}, len(session.Questions))
	for _, q := range session.Questions {
		a.questionIDs[q.ID] = struct{}{}
	}
	if a.timeLeft <= 0 {
		a.timeLeft = 0
		a.timedOut = true
	}
}

// Phase returns the current lifecycle stage.
func (a *Attempt) Phase() Phase { return a.phase }

// Session returns the active test session.
func (a *Attempt) Session() api.TestSession { return a.session }

// Token returns the session-scoped submission token.
func (a *Attempt) Token() string { return a.token }

// TimeLeft returns the remaining seconds, or -1 before the session loads.
func (a *Attempt) TimeLeft() int { return a.timeLeft }

// TimedOut reports whether the countdown ran out.
func (a *Attempt) TimedOut() bool { return a.timedOut }

// Answer returns the recorded option for a question, or -1.
func (a *Attempt) Answer(questionID int) int {
	if option, ok := a.answers[questionID]; ok {
		return option
	}
	return -1
}

// Answered counts the questions with a recorded answer.
func (a *Attempt) Answered() int { return len(a.answers) }

// Total counts the session's questions.
func (a *Attempt) Total() int { return len(a.session.Questions) }

// RecordAnswer upserts the selected option for a question. Re-selecting
// overwrites the prior answer. Selections are accepted only while active
// and only for the session's own question ids.
func (a *Attempt) RecordAnswer(questionID, option int) bool {
	if a.phase != PhaseActive {
		return false
	}
	if _, ok := a.questionIDs[questionID]; !ok {
		return false
	}
	a.answers[questionID] = option
	return true
}

// CanSubmit reports whether a manual submit is allowed: every loaded
// question has an answer. Timeout submission ignores this precondition.
func (a *Attempt) CanSubmit() bool {
	return a.phase == PhaseActive && len(a.answers) == len(a.session.Questions)
}

// Tick consumes one second of the countdown and reports whether it just
// ran out. Ticks after leaving the active phase are no-ops, so a stale
// timer cannot force a second submission.
func (a *Attempt) Tick() (timedOut bool) {
	if a.phase != PhaseActive || a.timeLeft <= 0 {
		return false
	}
	a.timeLeft--
	if a.timeLeft == 0 {
		a.timedOut = true
		return true
	}
	return false
}

// BeginSubmit claims the single submission slot. It returns true exactly
// once per in-flight submission: whichever of the timeout tick and a
// manual submit reaches it first wins, and the loser becomes a no-op.
// After a failed submission it can be claimed again for a retry.
func (a *Attempt) BeginSubmit() bool {
	if a.phase != PhaseActive && a.phase != PhaseFailed {
		return false
	}
	a.phase = PhaseSubmitting
	return true
}

// Submission snapshots the answer set for the wire. Mutating the attempt
// afterwards does not alter a submission already built.
func (a *Attempt) Submission(student api.StartRequest) api.Submission {
	answers := make(api.AnswerSet, len(a.answers))
	for id, option := range a.answers {
		answers[id] = option
	}
	return api.Submission{
		TestID:      a.session.TestID,
		RollNo:      student.RollNo,
		StudentName: student.StudentName,
		Section:     student.Section,
		Answers:     answers,
	}
}

// Complete marks the submission acknowledged.
func (a *Attempt) Complete() {
	if a.phase == PhaseSubmitting {
		a.phase = PhaseDone
	}
}

// SubmitFailed records a failed submission. The attempt stays actionable
// for a manual retry; the countdown does not restart.
func (a *Attempt) SubmitFailed() {
	if a.phase == PhaseSubmitting {
		a.phase = PhaseFailed
	}
}
