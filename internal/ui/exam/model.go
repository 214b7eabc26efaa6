// Package exam is the terminal front of the timed test flow: it fetches
// the session, tracks answers and the countdown, and drives submission
// through the attempt state machine.
package exam

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	coreexam "github.com/dpsrawaljnv/mcq-test-application/internal/exam"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
)

// Options configures the exam model.
type Options struct {
	NoColor bool
	Timeout time.Duration
}

// Model drives one attempt from loading through submission.
type Model struct {
	client  *api.Client
	store   *identity.StudentStore
	attempt *coreexam.Attempt

	timerID    int
	cursorQ    int
	cursorOpt  int
	spinner    spinner.Model
	progress   progress.Model
	timeout    time.Duration
	noColor    bool
	errMsg     string
	loadFailed bool
	redirect   bool
	aborted    bool
	ack        *api.SubmitAck
}

// NewModel constructs the exam model. The student identity is re-read from
// the store at each network boundary, so a concurrent clear fails closed.
func NewModel(client *api.Client, store *identity.StudentStore, opts Options) Model {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		client:   client,
		store:    store,
		attempt:  coreexam.New(),
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		timeout:  timeout,
		noColor:  opts.NoColor,
	}
}

// Init starts the session fetch and the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSession())
}

// Update applies UI events and delegates transitions to the attempt.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(typed.Width-4, 60)
		return m, nil
	case spinner.TickMsg:
		if m.attempt.Phase() == coreexam.PhaseLoading && !m.loadFailed {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case sessionLoadedMsg:
		m.attempt.Begin(typed.session)
		m.timerID++
		m.cursorQ = 0
		m.cursorOpt = 0
		// A session delivered without a duration times out on arrival.
		if m.attempt.TimedOut() && m.attempt.BeginSubmit() {
			return m, m.submit()
		}
		return m, tick(m.timerID)
	case loadFailedMsg:
		var idErr *identity.Error
		if errors.As(typed.err, &idErr) {
			m.redirect = true
			return m, tea.Quit
		}
		m.loadFailed = true
		m.errMsg = typed.err.Error()
		return m, nil
	case tickMsg:
		return m.updateTick(typed)
	case submittedMsg:
		m.attempt.Complete()
		m.ack = &typed.ack
		// The identity cache is single-use: a successful submission ends it.
		_ = m.store.Clear()
		return m, tea.Quit
	case submitFailedMsg:
		m.attempt.SubmitFailed()
		var idErr *identity.Error
		if errors.As(typed.err, &idErr) {
			m.redirect = true
			return m, tea.Quit
		}
		m.errMsg = typed.err.Error()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(typed)
	}
	return m, nil
}

// updateTick consumes a countdown tick, rejecting stale timer handles and
// firing the automatic submission when the clock runs out.
func (m Model) updateTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.timerID != m.timerID {
		return m, nil
	}
	if m.attempt.Tick() {
		// Timeout submits whatever answers exist; completeness is not
		// checked here.
		if m.attempt.BeginSubmit() {
			return m, m.submit()
		}
		return m, nil
	}
	if m.attempt.Phase() == coreexam.PhaseActive {
		return m, tick(m.timerID)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.attempt.Phase() == coreexam.PhaseSubmitting {
			return m, nil
		}
		m.aborted = m.attempt.Phase() != coreexam.PhaseDone
		return m, tea.Quit
	case "up", "k":
		if m.cursorQ > 0 {
			m.cursorQ--
			m.cursorOpt = 0
		}
		return m, nil
	case "down", "j":
		if m.cursorQ < m.attempt.Total()-1 {
			m.cursorQ++
			m.cursorOpt = 0
		}
		return m, nil
	case "left", "h":
		if m.cursorOpt > 0 {
			m.cursorOpt--
		}
		return m, nil
	case "right", "l":
		if m.cursorOpt < m.optionCount()-1 {
			m.cursorOpt++
		}
		return m, nil
	case "enter", " ":
		m.selectOption(m.cursorOpt)
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(msg.String()[0] - '1')
		if index < m.optionCount() {
			m.cursorOpt = index
			m.selectOption(index)
		}
		return m, nil
	case "s":
		if m.attempt.CanSubmit() && m.attempt.BeginSubmit() {
			return m, m.submit()
		}
		return m, nil
	case "r":
		if m.attempt.Phase() == coreexam.PhaseFailed && m.attempt.BeginSubmit() {
			m.errMsg = ""
			return m, m.submit()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) selectOption(option int) {
	session := m.attempt.Session()
	if m.cursorQ >= len(session.Questions) {
		return
	}
	m.attempt.RecordAnswer(session.Questions[m.cursorQ].ID, option)
}

func (m Model) optionCount() int {
	session := m.attempt.Session()
	if m.cursorQ >= len(session.Questions) {
		return 0
	}
	return len(session.Questions[m.cursorQ].Options)
}

// loadSession reads the identity (class id required) and starts the test.
func (m Model) loadSession() tea.Cmd {
	client, store, timeout := m.client, m.store, m.timeout
	return func() tea.Msg {
		student, err := store.Load(true)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		session, err := client.StartTest(ctx, student.ClassID, api.StartRequest{
			RollNo:      student.RollNo,
			StudentName: student.StudentName,
			Section:     student.Section,
		})
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return sessionLoadedMsg{session: session}
	}
}

// submit re-reads the identity and sends the current answer snapshot.
func (m Model) submit() tea.Cmd {
	client, store, timeout := m.client, m.store, m.timeout
	submission := m.attempt.Submission(api.StartRequest{})
	token := m.attempt.Token()
	return func() tea.Msg {
		student, err := store.Load(false)
		if err != nil {
			return submitFailedMsg{err: err}
		}
		submission.RollNo = student.RollNo
		submission.StudentName = student.StudentName
		submission.Section = student.Section
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ack, err := client.SubmitTest(ctx, submission, token)
		if err != nil {
			return submitFailedMsg{err: err}
		}
		return submittedMsg{ack: ack}
	}
}

// tick arms a one-second countdown tick bound to a timer handle.
func tick(timerID int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{timerID: timerID}
	})
}

// Done reports whether the attempt finished with an acknowledged
// submission, along with the test id for the result view.
func (m Model) Done() (int, bool) {
	if m.attempt.Phase() == coreexam.PhaseDone {
		return m.attempt.Session().TestID, true
	}
	return 0, false
}

// Redirect reports whether the flow ended on an identity error and the
// caller should return to the identity entry screen.
func (m Model) Redirect() bool { return m.redirect }

// Aborted reports whether the student quit before submitting.
func (m Model) Aborted() bool { return m.aborted }

// Err returns the last surfaced error message, if any.
func (m Model) Err() string { return m.errMsg }
