package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/dashboard"
)

// runClasses builds the handler for the classes command.
func runClasses(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		return runNamedList(cmd, args, stdout, stderr, namedListOps{
			noun: "class",
			list: func(ctx context.Context, client *api.Client, e *env, stdout io.Writer) error {
				classes, err := client.Classes(ctx)
				if err != nil {
					return err
				}
				if len(classes) == 0 {
					fmt.Fprintln(stdout, "No classes yet.")
					return nil
				}
				fmt.Fprint(stdout, dashboard.RenderClasses(classes, e.cfg.NoColor))
				return nil
			},
			create: func(ctx context.Context, client *api.Client, name string, stdout io.Writer) error {
				class, err := client.CreateClass(ctx, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Created class %s (id %d).\n", class.Name, class.ID)
				return nil
			},
		})
	}
}

// runSubjects builds the handler for the subjects command.
func runSubjects(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		return runNamedList(cmd, args, stdout, stderr, namedListOps{
			noun: "subject",
			list: func(ctx context.Context, client *api.Client, e *env, stdout io.Writer) error {
				subjects, err := client.Subjects(ctx)
				if err != nil {
					return err
				}
				if len(subjects) == 0 {
					fmt.Fprintln(stdout, "No subjects yet.")
					return nil
				}
				fmt.Fprint(stdout, dashboard.RenderSubjects(subjects, e.cfg.NoColor))
				return nil
			},
			create: func(ctx context.Context, client *api.Client, name string, stdout io.Writer) error {
				subject, err := client.CreateSubject(ctx, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Created subject %s (id %d).\n", subject.Name, subject.ID)
				return nil
			},
		})
	}
}

// namedListOps describes a list/add resource keyed by a name.
type namedListOps struct {
	noun   string
	list   func(ctx context.Context, client *api.Client, e *env, stdout io.Writer) error
	create func(ctx context.Context, client *api.Client, name string, stdout io.Writer) error
}

// runNamedList implements the shared list/add flow for classes and
// subjects.
func runNamedList(cmd *Command, args []string, stdout, stderr io.Writer, ops namedListOps) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}

	adding := len(args) > 0 && args[0] == "add"
	name := ""
	if adding {
		fs := flag.NewFlagSet(cmd.Name+" add", flag.ContinueOnError)
		fs.SetOutput(stderr)
		nameFlag := fs.String("name", "", "Name of the new "+ops.noun)
		if err := fs.Parse(args[1:]); err != nil {
			return ExitUsage
		}
		if *nameFlag == "" {
			fmt.Fprintln(stderr, "--name is required")
			return ExitUsage
		}
		name = *nameFlag
	} else if len(args) > 0 {
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
	if adding {
		if err := ops.create(ctx, client, name, stdout); err != nil {
			return fail(stderr, err)
		}
		return ExitOK
	}
	if err := ops.list(ctx, client, e, stdout); err != nil {
		return fail(stderr, err)
	}
	return ExitOK
}
