package commands

import (
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeLine(cmd.OutOrStdout(), "smellscan %s (commit %s, %s %s/%s)",
				info.Version, info.Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
