package identity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newStudentStore(t *testing.T) *StudentStore {
	t.Helper()
	return NewStudentStore(filepath.Join(t.TempDir(), "student.json"))
}

func TestLoadMissingIdentity(t *testing.T) {
	store := newStudentStore(t)
	_, err := store.Load(false)
	var idErr *Error
	if !errors.As(err, &idErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if idErr.Kind != KindMissing {
		t.Fatalf("kind = %s, want missing", idErr.Kind)
	}
}

func TestLoadMalformedIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewStudentStore(path).Load(false)
	var idErr *Error
	if !errors.As(err, &idErr) || idErr.Kind != KindInvalid {
		t.Fatalf("error = %v, want invalid identity error", err)
	}
}

func TestLoadIncompleteIdentity(t *testing.T) {
	store := newStudentStore(t)
	if err := store.Save(Student{RollNo: "12", StudentName: "Asha", Section: "A"}); err != nil {
		t.Fatal(err)
	}

	// Without a class id the identity is fine for result lookups but
	// incomplete for starting a test.
	if _, err := store.Load(false); err != nil {
		t.Fatalf("load without class requirement: %v", err)
	}
	_, err := store.Load(true)
	var idErr *Error
	if !errors.As(err, &idErr) || idErr.Kind != KindIncomplete {
		t.Fatalf("error = %v, want incomplete identity error", err)
	}
}

func TestSaveRejectsEmptyFields(t *testing.T) {
	store := newStudentStore(t)
	err := store.Save(Student{RollNo: "", StudentName: "Asha", Section: "A"})
	var idErr *Error
	if !errors.As(err, &idErr) || idErr.Kind != KindIncomplete {
		t.Fatalf("error = %v, want incomplete identity error", err)
	}
}

func TestLoadIsRepeatable(t *testing.T) {
	store := newStudentStore(t)
	saved := Student{RollNo: "12", StudentName: "Asha", Section: "A", ClassID: "3"}
	if err := store.Save(saved); err != nil {
		t.Fatal(err)
	}
	first, err := store.Load(true)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Load(true)
	if err != nil {
		t.Fatal(err)
	}
	if first != saved || second != saved {
		t.Fatalf("loads differ from saved: %+v, %+v", first, second)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := newStudentStore(t)
	if err := store.Save(Student{RollNo: "12", StudentName: "Asha", Section: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := store.Load(false); err == nil {
		t.Fatal("identity still loadable after clear")
	}
}
