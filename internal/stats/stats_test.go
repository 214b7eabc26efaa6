package stats

import (
	"testing"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

func TestAverageOfEmptyIsZero(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("Average(nil) = %f, want 0", got)
	}
}

func TestAverageScore(t *testing.T) {
	classes := []api.ClassPerformance{
		{AverageScore: 4},
		{AverageScore: 8},
	}
	if got := AverageScore(classes); got != 6 {
		t.Fatalf("AverageScore = %f, want 6", got)
	}
}

func TestTotalStudents(t *testing.T) {
	classes := []api.ClassPerformance{
		{TotalStudents: 10},
		{TotalStudents: 7},
	}
	if got := TotalStudents(classes); got != 17 {
		t.Fatalf("TotalStudents = %d, want 17", got)
	}
}

func TestTopNKeepsStableOrderOnTies(t *testing.T) {
	toppers := []api.Topper{
		{StudentName: "a", Score: 5},
		{StudentName: "b", Score: 9},
		{StudentName: "c", Score: 5},
		{StudentName: "d", Score: 7},
	}
	top := TopN(toppers, 3)
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	if top[0].StudentName != "b" || top[1].StudentName != "d" {
		t.Fatalf("unexpected order: %+v", top)
	}
	// a and c tie at 5; the earlier entry wins the last slot.
	if top[2].StudentName != "a" {
		t.Fatalf("tie broken unstably: %+v", top)
	}
}

func TestTopNShorterThanN(t *testing.T) {
	toppers := []api.Topper{{StudentName: "a", Score: 1}}
	top := TopN(toppers, 3)
	if len(top) != 1 {
		t.Fatalf("len = %d, want 1", len(top))
	}
}

func TestClassName(t *testing.T) {
	classes := []api.Class{{ID: 1, Name: "Six"}, {ID: 2, Name: "Seven"}}
	name, ok := ClassName(classes, 2)
	if !ok || name != "Seven" {
		t.Fatalf("ClassName(2) = %q, %v", name, ok)
	}
	if _, ok := ClassName(classes, 9); ok {
		t.Fatal("unknown id resolved")
	}
}
