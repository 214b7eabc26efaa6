package entry

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
)

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestPrefillSeedsTheForm(t *testing.T) {
	m := NewModel(Options{
		RequireClassID: true,
		Prefill: &identity.Student{
			RollNo:      "12",
			StudentName: "Asha",
			Section:     "A",
			ClassID:     "5",
		},
	})
	want := []string{"12", "Asha", "A", "5"}
	for i, value := range want {
		if got := m.inputs[i].Value(); got != value {
			t.Fatalf("input %d = %q, want %q", i, got, value)
		}
	}
}

func TestPrefillSkipsClassIDWhenNotRequired(t *testing.T) {
	m := NewModel(Options{
		Prefill: &identity.Student{RollNo: "12", StudentName: "Asha", Section: "A", ClassID: "5"},
	})
	if len(m.inputs) != fieldClassID {
		t.Fatalf("fields = %d, want %d", len(m.inputs), fieldClassID)
	}
}

func TestPrefilledFormConfirmsWithEnter(t *testing.T) {
	m := NewModel(Options{
		RequireClassID: true,
		Prefill: &identity.Student{
			RollNo:      "12",
			StudentName: "Asha",
			Section:     "A",
			ClassID:     "5",
		},
	})
	var model tea.Model = m
	for i := 0; i < fieldCount; i++ {
		model, _ = model.Update(enterKey())
	}
	final := model.(Model)
	student, ok := final.Student()
	if !ok {
		t.Fatal("prefilled form did not confirm")
	}
	if student.RollNo != "12" || student.StudentName != "Asha" || student.Section != "A" || student.ClassID != "5" {
		t.Fatalf("student = %+v", student)
	}
}

func TestFormRejectsNonNumericClassID(t *testing.T) {
	m := NewModel(Options{
		RequireClassID: true,
		Prefill: &identity.Student{
			RollNo:      "12",
			StudentName: "Asha",
			Section:     "A",
			ClassID:     "five",
		},
	})
	var model tea.Model = m
	for i := 0; i < fieldCount; i++ {
		model, _ = model.Update(enterKey())
	}
	final := model.(Model)
	if _, ok := final.Student(); ok {
		t.Fatal("non-numeric class id accepted")
	}
	if final.errMsg == "" {
		t.Fatal("no validation message shown")
	}
}

func TestEscapeAbortsTheForm(t *testing.T) {
	m := NewModel(Options{RequireClassID: true})
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(Model).Aborted() {
		t.Fatal("esc did not abort")
	}
}
