package cli

import (
	"fmt"
	"io"

	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/dashboard"
)

// runDashboard builds the handler for the dashboard command. The view
// depends on the stored role: admins get the platform overview, teachers
// get their active tests.
func runDashboard(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		client, creds, err := e.authedClient(identity.RoleAdmin, identity.RoleTeacher)
		if err != nil {
			return fail(stderr, err)
		}

		ctx, cancel := e.requestContext()
		defer cancel()

		switch creds.Role {
		case identity.RoleAdmin:
			perf, err := client.Performance(ctx)
			if err != nil {
				return fail(stderr, err)
			}
			fmt.Fprint(stdout, dashboard.RenderOverview(perf, e.cfg.NoColor))
		case identity.RoleTeacher:
			tests, err := client.TeacherTests(ctx)
			if err != nil {
				return fail(stderr, err)
			}
			if len(tests) == 0 {
				fmt.Fprintln(stdout, "No active tests assigned to you.")
				return ExitOK
			}
			// Teachers cannot list classes, so ids are shown as-is.
			fmt.Fprint(stdout, dashboard.RenderTests(tests, nil, e.cfg.NoColor))
		}
		return ExitOK
	}
}
