// Package cli implements the mcqtest command line interface.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mcqtest <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"mcqtest <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("start", "Take the active test for your class", []string{
		"mcqtest start [--ui auto|live|plain] [--fresh]",
		"mcqtest start [--class <id>] [--roll <no>] [--name <name>] [--section <s>]",
	}, runStart),
	command("result", "Look up a submitted test's result", []string{
		"mcqtest result <test-id>",
	}, runResult),
	command("serve", "Serve result pages over HTTP", []string{
		"mcqtest serve [--addr host:port]",
	}, runServe),
	command("history", "Show locally recorded results", []string{
		"mcqtest history",
	}, runHistory),
	command("login", "Log in as admin or teacher", []string{
		"mcqtest login --role admin|teacher --username <name> --password <secret>",
	}, runLogin),
	command("logout", "Discard the stored access token", []string{
		"mcqtest logout",
	}, runLogout),
	command("dashboard", "Show the admin or teacher overview", []string{
		"mcqtest dashboard",
	}, runDashboard),
	command("performance", "Browse per-class performance and toppers", []string{
		"mcqtest performance [--ui auto|live|plain]",
	}, runPerformance),
	command("teachers", "List or create teacher accounts", []string{
		"mcqtest teachers",
		"mcqtest teachers add --username <name> --password <secret> [--classes 1,2] [--subjects 3]",
	}, runTeachers),
	command("classes", "List or create classes", []string{
		"mcqtest classes",
		"mcqtest classes add --name <name>",
	}, runClasses),
	command("subjects", "List or create subjects", []string{
		"mcqtest subjects",
		"mcqtest subjects add --name <name>",
	}, runSubjects),
	command("tests", "List, schedule, or toggle tests", []string{
		"mcqtest tests",
		"mcqtest tests add --class <id> --subject <id> --date YYYY-MM-DD",
		"mcqtest tests activate <test-id>",
		"mcqtest tests deactivate <test-id>",
	}, runTests),
	command("questions", "List or add questions for a test", []string{
		"mcqtest questions <test-id>",
		"mcqtest questions add --test <id> --text <q> --options a,b,c,d --correct <n> [--type text|image|video|audio] [--media <url>]",
	}, runQuestions),
}
