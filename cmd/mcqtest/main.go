package main

import (
	"os"

	"github.com/dpsrawaljnv/mcq-test-application/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
