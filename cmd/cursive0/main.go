// Command cursive0 is the bootstrap compiler's CLI entry point: a single
// `build` command implementing §6's contract.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error; translate to the usage-error
		// exit code since a command-line parse failure is the only way
		// Execute itself returns an error (build's own failures call
		// os.Exit directly with the §6 exit codes).
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cursive0",
		Short:         "Cursive0 bootstrap compiler",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBuildCmd())
	return root
}
