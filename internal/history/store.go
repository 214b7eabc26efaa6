// Package history keeps a local DuckDB record of fetched test results so
// students can review past scores without the backend.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// Entry is one recorded result.
type Entry struct {
	ID             string
	TestID         int
	RollNo         string
	Section        string
	StudentName    string
	Score          int
	TotalQuestions int
	Percentage     float64
	CompletedAt    time.Time
	FetchedAt      time.Time
}

// Store is a DuckDB-backed result history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history: path is required")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("history: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one fetched result. A result already recorded for the
// same test, roll number, and section is left untouched.
func (s *Store) Record(ctx context.Context, testID int, result api.TestResult) error {
	if ctx == nil {
		return errors.New("history: context is nil")
	}
	const insert = `
INSERT INTO results (id, test_id, roll_no, section, student_name, score,
    total_questions, percentage, completed_at, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (test_id, roll_no, section) DO NOTHING`
	_, err := s.db.ExecContext(ctx, insert,
		uuid.NewString(), testID, result.RollNo, result.Section,
		result.StudentName, result.Score, result.TotalQuestions,
		result.Percentage, result.CompletedAt, time.Now().UTC())
	return err
}

// List returns recorded results, most recently fetched first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if ctx == nil {
		return nil, errors.New("history: context is nil")
	}
	const query = `
SELECT id, test_id, roll_no, section, student_name, score,
    total_questions, percentage, completed_at, fetched_at
FROM results
ORDER BY fetched_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var completed sql.NullTime
		if err := rows.Scan(&e.ID, &e.TestID, &e.RollNo, &e.Section,
			&e.StudentName, &e.Score, &e.TotalQuestions, &e.Percentage,
			&completed, &e.FetchedAt); err != nil {
			return nil, err
		}
		if completed.Valid {
			e.CompletedAt = completed.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
