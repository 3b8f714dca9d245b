package commands

import (
	"github.com/spf13/cobra"
)

func newDetectorsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List the smell detectors that analyze runs",
		Long: `List the smell detectors that analyze runs, one per line.

When the config file names a detector subset only that subset is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.registry(nil)
			if err != nil {
				return err
			}

			for _, name := range registry.Names() {
				if err := writeLine(cmd.OutOrStdout(), "%s", name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
