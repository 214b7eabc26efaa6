package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/testutil"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.duckdb"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult() api.TestResult {
	return api.TestResult{
		StudentName:    "Asha",
		RollNo:         "12",
		Section:        "A",
		Score:          1,
		TotalQuestions: 2,
		Percentage:     50,
		CompletedAt:    time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := testutil.Context(t, 0)

	if err := store.Record(ctx, 7, sampleResult()); err != nil {
		t.Fatal(err)
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.TestID != 7 || e.RollNo != "12" || e.Score != 1 || e.Percentage != 50 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.ID == "" {
		t.Fatal("entry has no id")
	}
}

func TestRecordIsIdempotentPerAttempt(t *testing.T) {
	store := openStore(t)
	ctx := testutil.Context(t, 0)

	if err := store.Record(ctx, 7, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, 7, sampleResult()); err != nil {
		t.Fatal(err)
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("duplicate record stored: %d entries", len(entries))
	}
}

func TestListOrdersByFetchTime(t *testing.T) {
	store := openStore(t)
	ctx := testutil.Context(t, 0)

	first := sampleResult()
	if err := store.Record(ctx, 1, first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second := sampleResult()
	second.RollNo = "13"
	if err := store.Record(ctx, 2, second); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].TestID != 2 {
		t.Fatalf("most recent entry is test %d, want 2", entries[0].TestID)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("empty path accepted")
	}
}
