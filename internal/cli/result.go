package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/review"
)

// runResult builds the handler for the result command.
func runResult(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		rollNo := fs.String("roll-no", "", "Roll number (defaults to the cached identity)")
		section := fs.String("section", "", "Section (defaults to the cached identity)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <test-id>")
			return ExitUsage
		}
		testID, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Invalid test id %q\n", fs.Arg(0))
			return ExitUsage
		}

		e, err := loadEnv()
		if err != nil {
			return fail(stderr, err)
		}

		roll, sect := *rollNo, *section
		if roll == "" || sect == "" {
			student, err := e.students.Load(false)
			if err != nil {
				fmt.Fprintln(stderr, "No cached identity; pass --roll-no and --section.")
				return ExitUsage
			}
			if roll == "" {
				roll = student.RollNo
			}
			if sect == "" {
				sect = student.Section
			}
		}

		ctx, cancel := e.requestContext()
		defer cancel()
		result, err := e.client.TestResult(ctx, testID, roll, sect)
		if err != nil {
			return fail(stderr, err)
		}

		recordHistory(e, testID, result, stderr)
		fmt.Fprint(stdout, review.Render(result, e.cfg.NoColor))
		return ExitOK
	}
}
