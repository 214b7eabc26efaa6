package cli

import (
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	entryui "github.com/dpsrawaljnv/mcq-test-application/internal/ui/entry"
	examui "github.com/dpsrawaljnv/mcq-test-application/internal/ui/exam"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/review"
)

// maxIdentityRetries bounds how many times a rejected identity sends the
// student back to the entry form in one invocation.
const maxIdentityRetries = 3

// runStart builds the handler for the start command.
func runStart(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		uiMode := fs.String("ui", "auto", "UI mode: auto, live, or plain")
		fresh := fs.Bool("fresh", false, "Discard the cached identity and re-enter details")
		class := fs.String("class", "", "Class id to prefill in the identity form")
		roll := fs.String("roll", "", "Roll number to prefill in the identity form")
		name := fs.String("name", "", "Student name to prefill in the identity form")
		section := fs.String("section", "", "Section to prefill in the identity form")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if !decision.useLive {
			if decision.warning != "" {
				fmt.Fprintln(stderr, decision.warning)
			}
			fmt.Fprintln(stderr, "Taking a test needs an interactive terminal.")
			return ExitError
		}

		e, err := loadEnv()
		if err != nil {
			return fail(stderr, err)
		}
		var prefill *identity.Student
		if *roll != "" || *name != "" || *section != "" || *class != "" {
			prefill = &identity.Student{
				RollNo:      *roll,
				StudentName: *name,
				Section:     *section,
				ClassID:     *class,
			}
		}
		if *fresh {
			if err := e.students.Clear(); err != nil {
				return fail(stderr, err)
			}
		}

		for attempt := 0; attempt <= maxIdentityRetries; attempt++ {
			student, err := e.students.Load(true)
			if err != nil {
				if code := collectIdentity(e, prefill, stdout, stderr); code != ExitOK {
					return code
				}
				student, err = e.students.Load(true)
				if err != nil {
					return fail(stderr, err)
				}
			}

			model := examui.NewModel(e.client, e.students, examui.Options{
				NoColor: e.cfg.NoColor,
				Timeout: e.timeout(),
			})
			program := tea.NewProgram(model, tea.WithOutput(stdout))
			final, err := program.Run()
			if err != nil {
				return fail(stderr, err)
			}
			result, ok := final.(examui.Model)
			if !ok {
				return fail(stderr, fmt.Errorf("unexpected model type %T", final))
			}

			switch {
			case result.Aborted():
				fmt.Fprintln(stdout, "Test abandoned. Your answers were not submitted.")
				return ExitOK
			case result.Redirect():
				// Identity was rejected mid-attempt; collect it again.
				if err := e.students.Clear(); err != nil {
					return fail(stderr, err)
				}
				continue
			default:
				testID, done := result.Done()
				if !done {
					if msg := result.Err(); msg != "" {
						fmt.Fprintln(stderr, "Error: "+msg)
					}
					return ExitError
				}
				return showResult(e, testID, student.RollNo, student.Section, stdout, stderr)
			}
		}
		fmt.Fprintln(stderr, "Could not establish a usable identity.")
		return ExitError
	}
}

// collectIdentity runs the entry form, optionally seeded from the prefill
// flags, and saves the confirmed identity.
func collectIdentity(e *env, prefill *identity.Student, stdout, stderr io.Writer) int {
	form := entryui.NewModel(entryui.Options{
		RequireClassID: true,
		Prefill:        prefill,
		NoColor:        e.cfg.NoColor,
	})
	program := tea.NewProgram(form, tea.WithOutput(stdout))
	final, err := program.Run()
	if err != nil {
		return fail(stderr, err)
	}
	model, ok := final.(entryui.Model)
	if !ok {
		return fail(stderr, fmt.Errorf("unexpected model type %T", final))
	}
	if model.Aborted() {
		fmt.Fprintln(stdout, "Cancelled.")
		return ExitError
	}
	student, ok := model.Student()
	if !ok {
		return fail(stderr, fmt.Errorf("identity form did not complete"))
	}
	if err := e.students.Save(student); err != nil {
		return fail(stderr, err)
	}
	return ExitOK
}

// showResult fetches the graded result, records it locally, and prints
// the review.
func showResult(e *env, testID int, rollNo, section string, stdout, stderr io.Writer) int {
	ctx, cancel := e.requestContext()
	defer cancel()
	result, err := e.client.TestResult(ctx, testID, rollNo, section)
	if err != nil {
		fmt.Fprintf(stderr, "Submitted, but fetching the result failed: %v\n", err)
		fmt.Fprintf(stdout, "Run \"mcqtest result %d\" later to see your score.\n", testID)
		return ExitOK
	}

	recordHistory(e, testID, result, stderr)
	fmt.Fprint(stdout, review.Render(result, e.cfg.NoColor))
	return ExitOK
}
