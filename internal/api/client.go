package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// attemptTokenHeader carries the session-scoped submission token so the
// backend can recognize a re-sent submission.
const attemptTokenHeader = "X-Attempt-Token"

// Client calls the testing backend's REST surface.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New constructs a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: &http.Client{}}
}

// NewWithTimeout constructs a client with a request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that attaches a bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// StartTest requests the active test for a class on behalf of a student.
func (c *Client) StartTest(ctx context.Context, classID string, req StartRequest) (TestSession, error) {
	var session TestSession
	path := "/student/start-test?class_id=" + url.QueryEscape(classID)
	if err := c.postJSON(ctx, path, req, "", &session); err != nil {
		return TestSession{}, err
	}
	return session, nil
}

// SubmitTest delivers an attempt's answers. The attempt token identifies
// the submission so a retry cannot be double-counted.
func (c *Client) SubmitTest(ctx context.Context, sub Submission, attemptToken string) (SubmitAck, error) {
	var ack SubmitAck
	if err := c.postJSON(ctx, "/student/submit-test", sub, attemptToken, &ack); err != nil {
		return SubmitAck{}, err
	}
	return ack, nil
}

// TestResult fetches the outcome of a completed test for one student.
func (c *Client) TestResult(ctx context.Context, testID int, rollNo, section string) (TestResult, error) {
	var result TestResult
	path := fmt.Sprintf("/student/test-result/%d?roll_no=%s&section=%s",
		testID, url.QueryEscape(rollNo), url.QueryEscape(section))
	if err := c.getJSON(ctx, path, &result); err != nil {
		return TestResult{}, err
	}
	return result, nil
}

// Login authenticates an admin or teacher and returns the access token.
// The backend takes the credentials as query parameters.
func (c *Client) Login(ctx context.Context, role, username, password string) (Token, error) {
	var token Token
	path := fmt.Sprintf("/%s/login?username=%s&password=%s",
		url.PathEscape(role), url.QueryEscape(username), url.QueryEscape(password))
	if err := c.postJSON(ctx, path, nil, "", &token); err != nil {
		return Token{}, err
	}
	return token, nil
}

// Performance fetches per-class performance statistics.
func (c *Client) Performance(ctx context.Context) ([]ClassPerformance, error) {
	var stats []ClassPerformance
	if err := c.getJSON(ctx, "/admin/performance", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Toppers fetches the leaderboard for one class.
func (c *Client) Toppers(ctx context.Context, classID int) (ToppersResponse, error) {
	var resp ToppersResponse
	if err := c.getJSON(ctx, "/admin/toppers/"+strconv.Itoa(classID), &resp); err != nil {
		return ToppersResponse{}, err
	}
	return resp, nil
}

// Teachers lists all teacher accounts.
func (c *Client) Teachers(ctx context.Context) ([]Teacher, error) {
	var teachers []Teacher
	if err := c.getJSON(ctx, "/admin/teachers", &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// CreateTeacher registers a teacher with class and subject assignments.
func (c *Client) CreateTeacher(ctx context.Context, req TeacherCreate) (Teacher, error) {
	var teacher Teacher
	if err := c.postJSON(ctx, "/admin/teachers", req, "", &teacher); err != nil {
		return Teacher{}, err
	}
	return teacher, nil
}

// Classes lists all classes.
func (c *Client) Classes(ctx context.Context) ([]Class, error) {
	var classes []Class
	if err := c.getJSON(ctx, "/admin/classes", &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// CreateClass adds a class.
func (c *Client) CreateClass(ctx context.Context, name string) (Class, error) {
	var class Class
	payload := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.postJSON(ctx, "/admin/classes", payload, "", &class); err != nil {
		return Class{}, err
	}
	return class, nil
}

// Subjects lists all subjects.
func (c *Client) Subjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := c.getJSON(ctx, "/admin/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// CreateSubject adds a subject.
func (c *Client) CreateSubject(ctx context.Context, name string) (Subject, error) {
	var subject Subject
	payload := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.postJSON(ctx, "/admin/subjects", payload, "", &subject); err != nil {
		return Subject{}, err
	}
	return subject, nil
}

// Tests lists all scheduled tests.
func (c *Client) Tests(ctx context.Context) ([]Test, error) {
	var tests []Test
	if err := c.getJSON(ctx, "/admin/tests", &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// CreateTest schedules a test for a class and subject.
func (c *Client) CreateTest(ctx context.Context, req TestCreate) (Test, error) {
	var test Test
	if err := c.postJSON(ctx, "/admin/tests", req, "", &test); err != nil {
		return Test{}, err
	}
	return test, nil
}

// SetTestActive activates or deactivates a test.
func (c *Client) SetTestActive(ctx context.Context, testID int, active bool) error {
	path := fmt.Sprintf("/admin/tests/%d?is_active=%t", testID, active)
	return c.patch(ctx, path)
}

// TeacherTests lists the active tests for the logged-in teacher.
func (c *Client) TeacherTests(ctx context.Context) ([]Test, error) {
	var tests []Test
	if err := c.getJSON(ctx, "/teacher/tests", &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// Questions lists the questions of a test for its teacher.
func (c *Client) Questions(ctx context.Context, testID int) ([]Question, error) {
	var questions []Question
	if err := c.getJSON(ctx, "/teacher/questions/"+strconv.Itoa(testID), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// AddQuestion appends a question to a test.
func (c *Client) AddQuestion(ctx context.Context, req QuestionCreate) (Question, error) {
	var question Question
	if err := c.postJSON(ctx, "/teacher/questions", req, "", &question); err != nil {
		return Question{}, err
	}
	return question, nil
}

// getJSON issues a GET and decodes a 2xx JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	body, status, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return decodeError(status, body)
	}
	return json.Unmarshal(body, out)
}

// postJSON issues a POST with an optional JSON payload and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, attemptToken string, out interface{}) error {
	var encoded []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		encoded = data
	}
	body, status, err := c.do(ctx, http.MethodPost, path, encoded, attemptToken)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return decodeError(status, body)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// patch issues a PATCH where only success matters.
func (c *Client) patch(ctx context.Context, path string) error {
	body, status, err := c.do(ctx, http.MethodPatch, path, nil, "")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return decodeError(status, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, attemptToken string) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if attemptToken != "" {
		req.Header.Set(attemptTokenHeader, attemptToken)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
