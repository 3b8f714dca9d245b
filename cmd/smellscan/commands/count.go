package commands

import (
	"github.com/spf13/cobra"
)

type countOptions struct {
	local bool
	ref   string
}

func newCountCommand(a *app) *cobra.Command {
	opts := &countOptions{}

	cmd := &cobra.Command{
		Use:   "count <repo-url|path>",
		Short: "Count the test files in a repository without parsing them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := a.analyzer(nil)
			if err != nil {
				return err
			}

			n, err := analyzer.CountRepository(cmd.Context(), a.acquirer(opts.local, opts.ref), args[0])
			if err != nil {
				return err
			}

			return writeLine(cmd.OutOrStdout(), "%d", n)
		},
	}

	cmd.Flags().BoolVar(&opts.local, localFlag, false, localUsage)
	cmd.Flags().StringVar(&opts.ref, refFlag, "", refUsage)

	return cmd
}
