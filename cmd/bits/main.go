// Command bits decodes and evaluates BITS packet transmissions.
package main

import (
	"os"

	"github.com/roach88/bits/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
