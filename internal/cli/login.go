package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
)

// runLogin builds the handler for the login command.
func runLogin(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		role := fs.String("role", "", "Role: admin or teacher")
		username := fs.String("username", "", "Account username")
		password := fs.String("password", "", "Account password")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *role != identity.RoleAdmin && *role != identity.RoleTeacher {
			fmt.Fprintln(stderr, "--role must be admin or teacher")
			return ExitUsage
		}
		if *username == "" || *password == "" {
			fmt.Fprintln(stderr, "--username and --password are required")
			return ExitUsage
		}

		e, err := loadEnv()
		if err != nil {
			return fail(stderr, err)
		}

		ctx, cancel := e.requestContext()
		defer cancel()
		token, err := e.client.Login(ctx, *role, *username, *password)
		if err != nil {
			return fail(stderr, err)
		}
		creds := identity.Credentials{Token: token.AccessToken, Role: *role}
		if err := e.credentials.Save(creds); err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintf(stdout, "Logged in as %s.\n", *role)
		return ExitOK
	}
}

// runLogout builds the handler for the logout command.
func runLogout(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if err := e.credentials.Clear(); err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintln(stdout, "Logged out.")
		return ExitOK
	}
}
