package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run builds a fresh command tree so tests can drive it without shared state.
func run(out, errOut io.Writer, args []string) error {
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "local-authorizers",
		Short: "Replace authorizers with local functions for offline testing",
		Long: `local-authorizers rewrites a serverless service definition so HTTP routes
declaring a localAuthorizer are bound to synthesized stand-in functions that an
offline runner can invoke directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "console", "log format: json or console")

	root.AddCommand(newApplyCmd(), newSchemaCmd())
	return root
}
