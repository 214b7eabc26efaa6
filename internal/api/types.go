package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Question types accepted by the backend.
const (
	QuestionTypeText  = "text"
	QuestionTypeImage = "image"
	QuestionTypeVideo = "video"
	QuestionTypeAudio = "audio"
)

// Question is a single-choice question. CorrectOption is populated only in
// review and result payloads, never while a test is in progress.
type Question struct {
	ID            int      `json:"id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	MediaURL      string   `json:"media_url,omitempty"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option,omitempty"`
}

// TestSession is the question set and time allowance for one attempt.
type TestSession struct {
	TestID          int        `json:"test_id"`
	Questions       []Question `json:"questions"`
	DurationMinutes int        `json:"duration_minutes"`
}

// AnswerSet maps question ids to selected option indexes. The backend
// expects string keys on the wire.
type AnswerSet map[int]int

// MarshalJSON encodes answers with string question id keys.
func (a AnswerSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(a))
	for id, option := range a {
		out[strconv.Itoa(id)] = option
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes string question id keys back into ints.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AnswerSet, len(raw))
	for key, option := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("answer key %q is not a question id: %w", key, err)
		}
		out[id] = option
	}
	*a = out
	return nil
}

// StartRequest identifies the student starting a test.
type StartRequest struct {
	RollNo      string `json:"roll_no"`
	StudentName string `json:"student_name"`
	Section     string `json:"section"`
}

// Submission carries a completed (or timed-out) attempt to the backend.
type Submission struct {
	TestID      int       `json:"test_id"`
	RollNo      string    `json:"roll_no"`
	StudentName string    `json:"student_name"`
	Section     string    `json:"section"`
	Answers     AnswerSet `json:"answers"`
}

// SubmitAck is the backend acknowledgement of a submission.
type SubmitAck struct {
	Message        string `json:"message"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// TestResult is the backend-computed outcome of a completed session.
type TestResult struct {
	StudentName    string     `json:"student_name"`
	RollNo         string     `json:"roll_no"`
	Section        string     `json:"section"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	Percentage     float64    `json:"percentage"`
	CompletedAt    time.Time  `json:"completed_at"`
	Questions      []Question `json:"questions"`
	UserAnswers    AnswerSet  `json:"user_answers"`
}

// Token is the login response for admin and teacher roles.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Class is a school class.
type Class struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Subject is a taught subject.
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Teacher is a teacher account with its class and subject assignments.
type Teacher struct {
	ID       int       `json:"id"`
	Username string    `json:"username"`
	Classes  []Class   `json:"classes"`
	Subjects []Subject `json:"subjects"`
}

// TeacherCreate is the payload for creating a teacher.
type TeacherCreate struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	ClassIDs   []int  `json:"class_ids"`
	SubjectIDs []int  `json:"subject_ids"`
}

// Test is a scheduled test for a class and subject.
type Test struct {
	ID        int       `json:"id"`
	ClassID   int       `json:"class_id"`
	SubjectID int       `json:"subject_id"`
	TestDate  time.Time `json:"test_date"`
	IsActive  bool      `json:"is_active"`
}

// TestCreate is the payload for scheduling a test.
type TestCreate struct {
	ClassID   int       `json:"class_id"`
	SubjectID int       `json:"subject_id"`
	TestDate  time.Time `json:"test_date"`
}

// QuestionCreate is the payload for adding a question to a test.
type QuestionCreate struct {
	TestID        int      `json:"test_id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	MediaURL      string   `json:"media_url,omitempty"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// Topper is one entry in a class leaderboard.
type Topper struct {
	StudentName string `json:"student_name"`
	RollNo      string `json:"roll_no"`
	Score       int    `json:"score"`
}

// ClassPerformance aggregates attempt outcomes for one class.
type ClassPerformance struct {
	ClassID       int      `json:"class_id"`
	ClassName     string   `json:"class_name"`
	AverageScore  float64  `json:"average_score"`
	TotalStudents int      `json:"total_students"`
	TopPerformers []Topper `json:"top_performers"`
}

// ToppersResponse is the leaderboard for one class.
type ToppersResponse struct {
	ClassName string   `json:"class_name"`
	Toppers   []Topper `json:"toppers"`
}
