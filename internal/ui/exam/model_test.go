package exam

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	coreexam "github.com/dpsrawaljnv/mcq-test-application/internal/exam"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/testutil"
)

// newTestModel wires a model to a fake backend with a saved identity.
func newTestModel(t *testing.T, fb *testutil.FakeBackend) (Model, *identity.StudentStore) {
	t.Helper()
	store := identity.NewStudentStore(filepath.Join(t.TempDir(), "student.json"))
	err := store.Save(identity.Student{RollNo: "12", StudentName: "Asha", Section: "A", ClassID: "5"})
	if err != nil {
		t.Fatal(err)
	}
	client := api.NewWithTimeout(fb.URL(), 5*time.Second)
	return NewModel(client, store, Options{NoColor: true, Timeout: 5 * time.Second}), store
}

// loadedModel runs the session fetch and applies the resulting message.
func loadedModel(t *testing.T, fb *testutil.FakeBackend) (Model, *identity.StudentStore) {
	t.Helper()
	m, store := newTestModel(t, fb)
	msg := m.loadSession()()
	loaded, ok := msg.(sessionLoadedMsg)
	if !ok {
		t.Fatalf("load produced %T, want sessionLoadedMsg", msg)
	}
	next, _ := m.Update(loaded)
	return next.(Model), store
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestSessionLoadStartsCountdown(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	if m.attempt.Phase() != coreexam.PhaseActive {
		t.Fatalf("phase = %s, want active", m.attempt.Phase())
	}
	if m.attempt.TimeLeft() != 60 {
		t.Fatalf("time left = %d, want 60", m.attempt.TimeLeft())
	}
}

func TestZeroDurationSessionSubmitsImmediately(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Session.DurationMinutes = 0
	m, _ := newTestModel(t, fb)

	msg := m.loadSession()()
	loaded, ok := msg.(sessionLoadedMsg)
	if !ok {
		t.Fatalf("load produced %T, want sessionLoadedMsg", msg)
	}
	next, cmd := m.Update(loaded)
	m = next.(Model)
	if m.attempt.Phase() != coreexam.PhaseSubmitting {
		t.Fatalf("phase = %s, want submitting", m.attempt.Phase())
	}
	if cmd == nil {
		t.Fatal("no submission fired for the timed out session")
	}

	result := cmd()
	ack, ok := result.(submittedMsg)
	if !ok {
		t.Fatalf("submission produced %T, want submittedMsg", result)
	}
	next, _ = m.Update(ack)
	m = next.(Model)
	if _, done := m.Done(); !done {
		t.Fatal("attempt did not finish")
	}
	if _, submits, _ := fb.Counts(); submits != 1 {
		t.Fatalf("backend saw %d submissions, want 1", submits)
	}
}

func TestTickDecrementsClock(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, _ := m.Update(tickMsg{timerID: m.timerID})
	m = next.(Model)
	if m.attempt.TimeLeft() != 59 {
		t.Fatalf("time left = %d, want 59", m.attempt.TimeLeft())
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, _ := m.Update(tickMsg{timerID: m.timerID - 1})
	m = next.(Model)
	if m.attempt.TimeLeft() != 60 {
		t.Fatalf("stale tick changed the clock: %d", m.attempt.TimeLeft())
	}
}

func TestDigitKeySelectsOption(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, _ := m.Update(keyMsg("2"))
	m = next.(Model)
	if got := m.attempt.Answer(1); got != 1 {
		t.Fatalf("answer = %d, want 1", got)
	}
}

func TestManualSubmitRequiresAllAnswers(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, cmd := m.Update(keyMsg("s"))
	m = next.(Model)
	if cmd != nil {
		t.Fatal("submit fired with unanswered questions")
	}
	if m.attempt.Phase() != coreexam.PhaseActive {
		t.Fatalf("phase = %s, want active", m.attempt.Phase())
	}
}

func TestManualSubmitSendsOnce(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, store := loadedModel(t, fb)

	next, _ := m.Update(keyMsg("1"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("1"))
	m = next.(Model)

	next, cmd := m.Update(keyMsg("s"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("submit did not fire with all answers recorded")
	}

	// A second submit press while in flight must be a no-op.
	next, second := m.Update(keyMsg("s"))
	m = next.(Model)
	if second != nil {
		t.Fatal("second submit fired while one was in flight")
	}

	msg := cmd()
	ack, ok := msg.(submittedMsg)
	if !ok {
		t.Fatalf("submit produced %T, want submittedMsg", msg)
	}
	next, _ = m.Update(ack)
	m = next.(Model)

	if _, submits, _ := fb.Counts(); submits != 1 {
		t.Fatalf("submit calls = %d, want 1", submits)
	}
	if _, done := m.Done(); !done {
		t.Fatal("model not done after acknowledged submission")
	}
	if _, err := store.Load(false); err == nil {
		t.Fatal("identity still present after submission")
	}
	sub, token := fb.Submitted()
	if token == "" {
		t.Fatal("submission sent without an attempt token")
	}
	if len(sub.Answers) != 2 {
		t.Fatalf("submitted %d answers, want 2", len(sub.Answers))
	}
}

func TestTimeoutSubmitsPartialAnswers(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, _ := m.Update(keyMsg("1"))
	m = next.(Model)

	var cmd tea.Cmd
	for i := 0; i < 60; i++ {
		var step tea.Model
		step, cmd = m.Update(tickMsg{timerID: m.timerID})
		m = step.(Model)
	}
	if m.attempt.Phase() != coreexam.PhaseSubmitting {
		t.Fatalf("phase = %s, want submitting after timeout", m.attempt.Phase())
	}
	if cmd == nil {
		t.Fatal("timeout did not fire a submission")
	}

	msg := cmd()
	ack, ok := msg.(submittedMsg)
	if !ok {
		t.Fatalf("submit produced %T, want submittedMsg", msg)
	}
	next, _ = m.Update(ack)
	m = next.(Model)

	sub, _ := fb.Submitted()
	if len(sub.Answers) != 1 {
		t.Fatalf("submitted %d answers, want the 1 recorded before timeout", len(sub.Answers))
	}
	if _, submits, _ := fb.Counts(); submits != 1 {
		t.Fatalf("submit calls = %d, want 1", submits)
	}
}

func TestTimeoutAndManualSubmitRace(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, _ := m.Update(keyMsg("1"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("1"))
	m = next.(Model)

	// Drain the clock; the final tick claims the submission slot.
	var timeoutCmd tea.Cmd
	for i := 0; i < 60; i++ {
		var step tea.Model
		step, timeoutCmd = m.Update(tickMsg{timerID: m.timerID})
		m = step.(Model)
	}
	if timeoutCmd == nil {
		t.Fatal("timeout did not fire a submission")
	}

	// The student's submit keypress arrives just after the deadline.
	next, manualCmd := m.Update(keyMsg("s"))
	m = next.(Model)
	if manualCmd != nil {
		t.Fatal("manual submit fired after the timeout claimed the slot")
	}

	next, _ = m.Update(timeoutCmd().(submittedMsg))
	m = next.(Model)
	if _, submits, _ := fb.Counts(); submits != 1 {
		t.Fatalf("submit calls = %d, want exactly 1", submits)
	}
}

func TestSubmitFailureAllowsRetry(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)

	next, _ := m.Update(keyMsg("1"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("1"))
	m = next.(Model)

	fb.SubmitStatus = 500
	next, cmd := m.Update(keyMsg("s"))
	m = next.(Model)
	failed, ok := cmd().(submitFailedMsg)
	if !ok {
		t.Fatal("expected a failed submission")
	}
	next, _ = m.Update(failed)
	m = next.(Model)
	if m.attempt.Phase() != coreexam.PhaseFailed {
		t.Fatalf("phase = %s, want failed", m.attempt.Phase())
	}

	fb.SubmitStatus = 0
	next, retry := m.Update(keyMsg("r"))
	m = next.(Model)
	if retry == nil {
		t.Fatal("retry did not fire")
	}
	ack, ok := retry().(submittedMsg)
	if !ok {
		t.Fatal("retry did not succeed")
	}
	next, _ = m.Update(ack)
	m = next.(Model)
	if _, done := m.Done(); !done {
		t.Fatal("model not done after retry")
	}
}

func TestLoadFailureWithIdentityErrorRedirects(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, store := newTestModel(t, fb)
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	msg := m.loadSession()()
	failed, ok := msg.(loadFailedMsg)
	if !ok {
		t.Fatalf("load produced %T, want loadFailedMsg", msg)
	}
	next, _ := m.Update(failed)
	m = next.(Model)
	if !m.Redirect() {
		t.Fatal("missing identity did not request a redirect")
	}
}

func TestQuitWhileSubmittingIsBlocked(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	m, _ := loadedModel(t, fb)
	m.attempt.BeginSubmit()

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if cmd != nil {
		t.Fatal("quit accepted while a submission was in flight")
	}
	if m.Aborted() {
		t.Fatal("aborted flag set while submitting")
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{-1, "--:--"},
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{605, "10:05"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
