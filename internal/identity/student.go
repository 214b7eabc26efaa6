package identity

import (
	"encoding/json"
	"fmt"
	"os"
)

// Student is the locally cached identity that authorizes test-taking
// requests without a server session.
type Student struct {
	RollNo      string `json:"roll_no"`
	StudentName string `json:"student_name"`
	Section     string `json:"section"`
	ClassID     string `json:"class_id,omitempty"`
}

// StudentStore reads and writes the cached student identity.
type StudentStore struct {
	path string
}

// NewStudentStore constructs a store for the given file path.
func NewStudentStore(path string) *StudentStore {
	return &StudentStore{path: path}
}

// Load returns the cached identity. It fails with a tagged *Error when no
// identity is stored, the content cannot be parsed, or a required field is
// empty. ClassID is required only when requireClassID is set. Load has no
// side effects and reads a snapshot; a concurrent clear surfaces as
// KindMissing on the next call.
func (s *StudentStore) Load(requireClassID bool) (Student, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Student{}, &Error{Kind: KindMissing, Reason: "no student identity stored"}
		}
		return Student{}, fmt.Errorf("read student identity: %w", err)
	}
	var student Student
	if err := json.Unmarshal(data, &student); err != nil {
		return Student{}, &Error{Kind: KindInvalid, Reason: "stored student identity is not parseable"}
	}
	if err := validate(student, requireClassID); err != nil {
		return Student{}, err
	}
	return student, nil
}

// Save validates and persists the identity atomically.
func (s *StudentStore) Save(student Student) error {
	if err := validate(student, false); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(student, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, payload)
}

// Clear removes the cached identity. A missing file is not an error.
func (s *StudentStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear student identity: %w", err)
	}
	return nil
}

// Validate reports the first missing required field as a tagged *Error.
func (s Student) Validate(requireClassID bool) error {
	return validate(s, requireClassID)
}

// validate reports the first missing required field as KindIncomplete.
func validate(student Student, requireClassID bool) error {
	switch {
	case student.RollNo == "":
		return &Error{Kind: KindIncomplete, Reason: "roll_no is empty"}
	case student.StudentName == "":
		return &Error{Kind: KindIncomplete, Reason: "student_name is empty"}
	case student.Section == "":
		return &Error{Kind: KindIncomplete, Reason: "section is empty"}
	case requireClassID && student.ClassID == "":
		return &Error{Kind: KindIncomplete, Reason: "class_id is empty"}
	default:
		return nil
	}
}
