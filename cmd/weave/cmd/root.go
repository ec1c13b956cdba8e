// Package cmd implements the weave CLI commands.
//
// The root command dispatches to subcommands (config, run, version).
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/weave/pkg/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// NewRootCommand returns the weave command tree.
func NewRootCommand() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:   "weave",
		Short: "weave - headless reactive UI core",
		Long: `weave runs the update loop of a reactive UI tree without a window:
timers, variables, events, widget updates, layout and render passes.

Use "weave <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&dir, "dir", "C", "", "Project directory (default: the enclosing Go module)")

	resolve := func() (*config.Resolved, error) {
		if dir == "" {
			found, err := config.FindProjectRoot()
			if err != nil {
				return config.Default(), nil
			}
			dir = found
		}
		return config.Resolve(dir)
	}

	root.AddCommand(
		configCmd(resolve),
		runCmd(resolve),
		versionCmd(),
	)
	return root
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}
