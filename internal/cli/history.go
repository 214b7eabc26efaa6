package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/history"
)

// recordHistory stores a fetched result locally. Failures are reported
// but never block showing the result.
func recordHistory(e *env, testID int, result api.TestResult, stderr io.Writer) {
	store, err := history.Open(e.historyPath)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not open result history: %v\n", err)
		return
	}
	defer store.Close()
	ctx, cancel := e.requestContext()
	defer cancel()
	if err := store.Record(ctx, testID, result); err != nil {
		fmt.Fprintf(stderr, "Warning: could not record result: %v\n", err)
	}
}

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		e, err := loadEnv()
		if err != nil {
			return fail(stderr, err)
		}
		store, err := history.Open(e.historyPath)
		if err != nil {
			return fail(stderr, err)
		}
		defer store.Close()

		entries, err := store.List(context.Background())
		if err != nil {
			return fail(stderr, err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(stdout, "No results recorded yet.")
			return ExitOK
		}
		for _, entry := range entries {
			fmt.Fprintf(stdout, "test %d  %s (%s)  %d/%d  %.1f%%  fetched %s\n",
				entry.TestID, entry.StudentName, entry.RollNo,
				entry.Score, entry.TotalQuestions, entry.Percentage,
				entry.FetchedAt.Format("2006-01-02 15:04"))
		}
		return ExitOK
	}
}
