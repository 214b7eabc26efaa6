package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/dashboard"
)

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 && args[0] == "add" {
			return addQuestion(cmd, args[1:], stdout, stderr)
		}
		if len(args) != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <test-id>")
			return ExitUsage
		}
		testID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(stderr, "Invalid test id %q\n", args[0])
			return ExitUsage
		}

		e, err := loadEnv()
		if err != nil {
			return fail(stderr, err)
		}
		client, _, err := e.authedClient(identity.RoleTeacher)
		if err != nil {
			return fail(stderr, err)
		}

		ctx, cancel := e.requestContext()
		defer cancel()
		questions, err := client.Questions(ctx, testID)
		if err != nil {
			return fail(stderr, err)
		}
		if len(questions) == 0 {
			fmt.Fprintln(stdout, "No questions yet.")
			return ExitOK
		}
		fmt.Fprint(stdout, dashboard.RenderQuestions(questions, e.cfg.NoColor))
		return ExitOK
	}
}

func addQuestion(cmd *Command, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name+" add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	testID := fs.Int("test", 0, "Test id")
	text := fs.String("text", "", "Question text")
	options := fs.String("options", "", "Comma-separated answer options")
	correct := fs.Int("correct", 0, "1-based index of the correct option")
	qType := fs.String("type", api.QuestionTypeText, "Question type: text, image, video, or audio")
	media := fs.String("media", "", "Media URL for non-text questions")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *testID <= 0 {
		fmt.Fprintln(stderr, "--test is required")
		return ExitUsage
	}
	if strings.TrimSpace(*text) == "" {
		fmt.Fprintln(stderr, "--text is required")
		return ExitUsage
	}
	opts := splitOptions(*options)
	if len(opts) < 2 {
		fmt.Fprintln(stderr, "--options needs at least two comma-separated entries")
		return ExitUsage
	}
	if *correct < 1 || *correct > len(opts) {
		fmt.Fprintf(stderr, "--correct must be between 1 and %d\n", len(opts))
		return ExitUsage
	}
	// Media consistency is checked before any network call.
	if err := api.ValidateMediaURL(*media, *qType); err != nil {
		fmt.Fprintf(stderr, "Invalid question: %v\n", err)
		return ExitUsage
	}

	e, err := loadEnv()
	if err != nil {
		return fail(stderr, err)
	}
	client, _, err := e.authedClient(identity.RoleTeacher)
	if err != nil {
		return fail(stderr, err)
	}

	ctx, cancel := e.requestContext()
	defer cancel()
	question, err := client.AddQuestion(ctx, api.QuestionCreate{
		TestID:        *testID,
		QuestionText:  strings.TrimSpace(*text),
		QuestionType:  *qType,
		MediaURL:      *media,
		Options:       opts,
		CorrectOption: *correct - 1,
	})
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "Added question %d to test %d.\n", question.ID, *testID)
	return ExitOK
}

// splitOptions splits the options flag, dropping empty entries.
func splitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
