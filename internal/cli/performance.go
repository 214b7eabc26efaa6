package cli

import (
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/dashboard"
)

// runPerformance builds the handler for the performance command.
func runPerformance(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		uiMode := fs.String("ui", "auto", "UI mode: auto, live, or plain")
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
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
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
		perf, err := client.Performance(ctx)
		cancel()
		if err != nil {
			return fail(stderr, err)
		}
		if len(perf) == 0 {
			fmt.Fprintln(stdout, "No performance data yet.")
			return ExitOK
		}

		if !decision.useLive {
			fmt.Fprint(stdout, dashboard.RenderOverview(perf, e.cfg.NoColor))
			return ExitOK
		}

		model := dashboard.NewPerformanceModel(client, perf, e.timeout(), e.cfg.NoColor)
		program := tea.NewProgram(model, tea.WithOutput(stdout))
		if _, err := program.Run(); err != nil {
			return fail(stderr, err)
		}
		return ExitOK
	}
}
