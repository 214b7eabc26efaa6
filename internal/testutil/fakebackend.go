// Package testutil provides shared helpers for tests, including a fake
// testing backend served over HTTP.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// FakeBackend is an in-process stand-in for the testing backend. It
// records calls so tests can assert on request counts and payloads.
type FakeBackend struct {
	mu sync.Mutex

	Session api.TestSession
	Ack     api.SubmitAck
	Result  api.TestResult

	// Forced HTTP statuses; zero means success.
	StartStatus  int
	SubmitStatus int
	ResultStatus int
	// ErrorBody is the JSON error payload used with a forced status.
	ErrorBody string

	StartCalls     int
	SubmitCalls    int
	ResultCalls    int
	LastSubmission api.Submission
	LastToken      string

	server *httptest.Server
}

// NewFakeBackend starts the fake backend and registers cleanup.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	fb := StartFakeBackend()
	t.Cleanup(fb.Close)
	return fb
}

// StartFakeBackend starts the fake backend without a test hook. The
// caller owns Close.
func StartFakeBackend() *FakeBackend {
	fb := &FakeBackend{
		Session: api.TestSession{
			TestID:          1,
			DurationMinutes: 1,
			Questions: []api.Question{
				{ID: 1, QuestionText: "2+2?", QuestionType: api.QuestionTypeText, Options: []string{"3", "4"}},
				{ID: 2, QuestionText: "3+3?", QuestionType: api.QuestionTypeText, Options: []string{"6", "7"}},
			},
		},
		Ack: api.SubmitAck{Message: "submitted", Score: 1, TotalQuestions: 2},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/student/start-test", fb.handleStart)
	mux.HandleFunc("/student/submit-test", fb.handleSubmit)
	mux.HandleFunc("/student/test-result/", fb.handleResult)
	fb.server = httptest.NewServer(mux)
	return fb
}

// URL returns the backend's base URL.
func (fb *FakeBackend) URL() string { return fb.server.URL }

// Close shuts the backend down.
func (fb *FakeBackend) Close() { fb.server.Close() }

// Counts returns the recorded call counts.
func (fb *FakeBackend) Counts() (start, submit, result int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.StartCalls, fb.SubmitCalls, fb.ResultCalls
}

// Submitted returns the most recent submission and attempt token.
func (fb *FakeBackend) Submitted() (api.Submission, string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.LastSubmission, fb.LastToken
}

func (fb *FakeBackend) handleStart(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	fb.StartCalls++
	status, session := fb.StartStatus, fb.Session
	body := fb.ErrorBody
	fb.mu.Unlock()

	if status != 0 {
		writeError(w, status, body)
		return
	}
	writeJSON(w, session)
}

func (fb *FakeBackend) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub api.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "")
		return
	}

	fb.mu.Lock()
	fb.SubmitCalls++
	fb.LastSubmission = sub
	fb.LastToken = r.Header.Get("X-Attempt-Token")
	status, ack := fb.SubmitStatus, fb.Ack
	body := fb.ErrorBody
	fb.mu.Unlock()

	if status != 0 {
		writeError(w, status, body)
		return
	}
	writeJSON(w, ack)
}

func (fb *FakeBackend) handleResult(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimPrefix(r.URL.Path, "/student/test-result/")
	if _, err := strconv.Atoi(rawID); err != nil {
		writeError(w, http.StatusNotFound, "")
		return
	}

	fb.mu.Lock()
	fb.ResultCalls++
	status, result := fb.ResultStatus, fb.Result
	body := fb.ErrorBody
	fb.mu.Unlock()

	if status != 0 {
		writeError(w, status, body)
		return
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == "" {
		body = `{"detail":"request rejected"}`
	}
	_, _ = w.Write([]byte(body))
}
