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

// runTeachers builds the handler for the teachers command.
func runTeachers(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 && args[0] == "add" {
			return addTeacher(cmd, args[1:], stdout, stderr)
		}
		if len(args) > 0 {
			fmt.Fprintf(stderr, "Unknown subcommand: %s\n", args[0])
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
		teachers, err := client.Teachers(ctx)
		if err != nil {
			return fail(stderr, err)
		}
		if len(teachers) == 0 {
			fmt.Fprintln(stdout, "No teachers yet.")
			return ExitOK
		}
		fmt.Fprint(stdout, dashboard.RenderTeachers(teachers, e.cfg.NoColor))
		return ExitOK
	}
}

func addTeacher(cmd *Command, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name+" add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("username", "", "New teacher's username")
	password := fs.String("password", "", "New teacher's password")
	classes := fs.String("classes", "", "Comma-separated class ids")
	subjects := fs.String("subjects", "", "Comma-separated subject ids")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(stderr, "--username and --password are required")
		return ExitUsage
	}
	classIDs, err := parseIDList(*classes)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid --classes: %v\n", err)
		return ExitUsage
	}
	subjectIDs, err := parseIDList(*subjects)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid --subjects: %v\n", err)
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
	teacher, err := client.CreateTeacher(ctx, api.TeacherCreate{
		Username:   *username,
		Password:   *password,
		ClassIDs:   classIDs,
		SubjectIDs: subjectIDs,
	})
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "Created teacher %s (id %d).\n", teacher.Username, teacher.ID)
	return ExitOK
}

// parseIDList splits a comma-separated list of positive integers.
func parseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		if id <= 0 {
			return nil, fmt.Errorf("%d is not a valid id", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
