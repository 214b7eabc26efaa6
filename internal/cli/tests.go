package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/dashboard"
)

// testDateLayout is the accepted date format for scheduling tests.
const testDateLayout = "2006-01-02"

// runTests builds the handler for the tests command.
func runTests(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 {
			switch args[0] {
			case "add":
				return addTest(cmd, args[1:], stdout, stderr)
			case "activate":
				return setTestActive(args[1:], true, stdout, stderr)
			case "deactivate":
				return setTestActive(args[1:], false, stdout, stderr)
			default:
				fmt.Fprintf(stderr, "Unknown subcommand: %s\n", args[0])
				return ExitUsage
			}
		}

		e, err := loadEnv()
		if err != nil {
			return fail(stderr, err)
		}
		client, _, err := e.authedClient(identity.RoleAdmin)
		if err != nil {
			return fail(stderr, err)
		}

		ctx, cancel := e.requestContext()
		defer cancel()
		tests, err := client.Tests(ctx)
		if err != nil {
			return fail(stderr, err)
		}
		if len(tests) == 0 {
			fmt.Fprintln(stdout, "No tests scheduled yet.")
			return ExitOK
		}
		// Best effort name resolution; the listing still works without it.
		classes, err := client.Classes(ctx)
		if err != nil {
			classes = nil
		}
		fmt.Fprint(stdout, dashboard.RenderTests(tests, classes, e.cfg.NoColor))
		return ExitOK
	}
}

func addTest(cmd *Command, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name+" add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	classID := fs.Int("class", 0, "Class id")
	subjectID := fs.Int("subject", 0, "Subject id")
	date := fs.String("date", "", "Test date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *classID <= 0 || *subjectID <= 0 {
		fmt.Fprintln(stderr, "--class and --subject are required")
		return ExitUsage
	}
	// The date is validated before any network call.
	if *date == "" {
		fmt.Fprintln(stderr, "--date is required")
		return ExitUsage
	}
	testDate, err := time.Parse(testDateLayout, *date)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid --date %q: expected YYYY-MM-DD\n", *date)
		return ExitUsage
	}

	e, err := loadEnv()
	if err != nil {
		return fail(stderr, err)
	}
	client, _, err := e.authedClient(identity.RoleAdmin)
	if err != nil {
		return fail(stderr, err)
	}

	ctx, cancel := e.requestContext()
	defer cancel()
	test, err := client.CreateTest(ctx, api.TestCreate{
		ClassID:   *classID,
		SubjectID: *subjectID,
		TestDate:  testDate,
	})
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "Scheduled test %d for class %d on %s.\n",
		test.ID, test.ClassID, test.TestDate.Format(testDateLayout))
	return ExitOK
}

func setTestActive(args []string, active bool, stdout, stderr io.Writer) int {
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
	client, _, err := e.authedClient(identity.RoleAdmin)
	if err != nil {
		return fail(stderr, err)
	}

	ctx, cancel := e.requestContext()
	defer cancel()
	if err := client.SetTestActive(ctx, testID, active); err != nil {
		return fail(stderr, err)
	}
	state := "deactivated"
	if active {
		state = "activated"
	}
	fmt.Fprintf(stdout, "Test %d %s.\n", testID, state)
	return ExitOK
}
