package cucumber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/exam"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/testutil"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/review"
)

// featureState holds one scenario's backend, stores, and attempt.
type featureState struct {
	backend *testutil.FakeBackend
	store   *identity.StudentStore
	client  *api.Client
	attempt *exam.Attempt
	tempDir string
	output  string
	lastErr error
}

// InitializeScenario wires the step definitions to fresh state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a stored student identity for class "([^"]+)"$`, state.aStoredIdentity)
	ctx.Step(`^the backend serves a two question test lasting (\d+) minute$`, state.backendServesTest)
	ctx.Step(`^the backend reports a score of (\d+) out of (\d+)$`, state.backendReportsScore)
	ctx.Step(`^the student answers question (\d+) with option (\d+)$`, state.studentAnswers)
	ctx.Step(`^the student submits the test$`, state.studentSubmits)
	ctx.Step(`^the countdown runs out$`, state.countdownRunsOut)
	ctx.Step(`^the student views the result for test (\d+)$`, state.studentViewsResult)
	ctx.Step(`^exactly (\d+) submission(?:s)? reaches? the backend$`, state.submissionCountIs)
	ctx.Step(`^no submission reaches the backend$`, state.noSubmission)
	ctx.Step(`^the submission carries (\d+) answers$`, state.submissionCarriesAnswers)
	ctx.Step(`^the stored identity is cleared$`, state.identityIsCleared)
	ctx.Step(`^the result output contains "([^"]+)"$`, state.outputContains)
	ctx.Step(`^the backend rejects submissions$`, state.backendRejectsSubmissions)
	ctx.Step(`^the backend accepts submissions again$`, state.backendAcceptsSubmissions)
	ctx.Step(`^the submission fails with "([^"]+)"$`, state.submissionFailsWith)
	ctx.Step(`^the student retries the submission$`, state.studentRetries)
}

func (s *featureState) reset() error {
	dir, err := os.MkdirTemp("", "mcqtest-cucumber-")
	if err != nil {
		return err
	}
	s.tempDir = dir
	s.backend = testutil.StartFakeBackend()
	s.store = identity.NewStudentStore(filepath.Join(dir, "student.json"))
	s.client = api.NewWithTimeout(s.backend.URL(), 5*time.Second)
	s.attempt = exam.New()
	s.output = ""
	s.lastErr = nil
	return nil
}

func (s *featureState) cleanup() {
	if s.backend != nil {
		s.backend.Close()
	}
	if s.tempDir != "" {
		_ = os.RemoveAll(s.tempDir)
	}
}

func (s *featureState) aStoredIdentity(classID string) error {
	return s.store.Save(identity.Student{
		RollNo:      "12",
		StudentName: "Asha",
		Section:     "A",
		ClassID:     classID,
	})
}

func (s *featureState) backendServesTest(minutes int) error {
	s.backend.Session.DurationMinutes = minutes
	student, err := s.store.Load(true)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := s.client.StartTest(ctx, student.ClassID, api.StartRequest{
		RollNo:      student.RollNo,
		StudentName: student.StudentName,
		Section:     student.Section,
	})
	if err != nil {
		return err
	}
	s.attempt.Begin(session)
	return nil
}

func (s *featureState) backendReportsScore(score, total int) error {
	s.backend.Result = api.TestResult{
		StudentName:    "Asha",
		RollNo:         "12",
		Section:        "A",
		Score:          score,
		TotalQuestions: total,
		Percentage:     float64(score) / float64(total) * 100,
	}
	return nil
}

func (s *featureState) studentAnswers(question, option int) error {
	questions := s.attempt.Session().Questions
	if question < 1 || question > len(questions) {
		return fmt.Errorf("no question %d in a %d question test", question, len(questions))
	}
	if !s.attempt.RecordAnswer(questions[question-1].ID, option-1) {
		return fmt.Errorf("answer for question %d rejected", question)
	}
	return nil
}

// studentSubmits mirrors the manual submit path: it only fires when every
// question is answered and the submission slot is free.
func (s *featureState) studentSubmits() error {
	if !s.attempt.CanSubmit() || !s.attempt.BeginSubmit() {
		return nil
	}
	return s.sendSubmission()
}

// countdownRunsOut drains the clock and fires the automatic submission.
func (s *featureState) countdownRunsOut() error {
	for !s.attempt.TimedOut() {
		if s.attempt.Phase() != exam.PhaseActive {
			return fmt.Errorf("countdown ran in phase %s", s.attempt.Phase())
		}
		s.attempt.Tick()
	}
	if !s.attempt.BeginSubmit() {
		return fmt.Errorf("timeout could not claim the submission slot")
	}
	return s.sendSubmission()
}

func (s *featureState) sendSubmission() error {
	student, err := s.store.Load(false)
	if err != nil {
		return err
	}
	sub := s.attempt.Submission(api.StartRequest{
		RollNo:      student.RollNo,
		StudentName: student.StudentName,
		Section:     student.Section,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.client.SubmitTest(ctx, sub, s.attempt.Token()); err != nil {
		s.attempt.SubmitFailed()
		s.lastErr = err
		return nil
	}
	s.attempt.Complete()
	return s.store.Clear()
}

func (s *featureState) backendRejectsSubmissions() error {
	s.backend.SubmitStatus = 500
	return nil
}

func (s *featureState) backendAcceptsSubmissions() error {
	s.backend.SubmitStatus = 0
	return nil
}

func (s *featureState) submissionFailsWith(needle string) error {
	if s.lastErr == nil {
		return fmt.Errorf("no submission failure recorded")
	}
	if !strings.Contains(s.lastErr.Error(), needle) {
		return fmt.Errorf("failure %q lacks %q", s.lastErr, needle)
	}
	if s.attempt.Phase() != exam.PhaseFailed {
		return fmt.Errorf("attempt in phase %s, want failed", s.attempt.Phase())
	}
	return nil
}

// studentRetries mirrors the retry keypress after a failed submission.
func (s *featureState) studentRetries() error {
	if s.attempt.Phase() != exam.PhaseFailed || !s.attempt.BeginSubmit() {
		return fmt.Errorf("retry not possible in phase %s", s.attempt.Phase())
	}
	s.lastErr = nil
	return s.sendSubmission()
}

func (s *featureState) studentViewsResult(testID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := s.client.TestResult(ctx, testID, "12", "A")
	if err != nil {
		return err
	}
	s.output = review.Render(result, true)
	return nil
}

func (s *featureState) submissionCountIs(want int) error {
	_, submits, _ := s.backend.Counts()
	if submits != want {
		return fmt.Errorf("backend saw %d submissions, want %d", submits, want)
	}
	return nil
}

func (s *featureState) noSubmission() error {
	return s.submissionCountIs(0)
}

func (s *featureState) submissionCarriesAnswers(want int) error {
	sub, token := s.backend.Submitted()
	if token == "" {
		return fmt.Errorf("submission arrived without an attempt token")
	}
	if len(sub.Answers) != want {
		return fmt.Errorf("submission carries %d answers, want %d", len(sub.Answers), want)
	}
	return nil
}

func (s *featureState) identityIsCleared() error {
	_, err := s.store.Load(false)
	var idErr *identity.Error
	if err == nil {
		return fmt.Errorf("identity still present after submission")
	}
	if !errors.As(err, &idErr) || idErr.Kind != identity.KindMissing {
		return fmt.Errorf("unexpected identity error: %v", err)
	}
	return nil
}

func (s *featureState) outputContains(needle string) error {
	if !strings.Contains(s.output, needle) {
		return fmt.Errorf("output lacks %q:\n%s", needle, s.output)
	}
	return nil
}
