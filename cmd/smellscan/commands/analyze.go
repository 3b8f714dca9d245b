package commands

import (
	"github.com/spf13/cobra"

	"github.com/specvital/smellscan/pkg/report"
)

type analyzeOptions struct {
	detectors  []string
	format     string
	local      bool
	ref        string
	smellyOnly bool
}

func newAnalyzeCommand(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <repo-url|path>",
		Short: "Report test smells for every test file in a repository",
		Long: `Clone a repository (or open a local directory with --local), discover its
test files and report the test structure and smells of each one.

Files that fail to parse are reported with zero counts and no smells.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&opts.detectors, detectorsFlag, nil, detectorsUsage)
	cmd.Flags().StringVarP(&opts.format, formatFlag, "f", "", formatUsage)
	cmd.Flags().BoolVar(&opts.local, localFlag, false, localUsage)
	cmd.Flags().StringVar(&opts.ref, refFlag, "", refUsage)
	cmd.Flags().BoolVar(&opts.smellyOnly, smellyOnlyFlag, false, smellyOnlyUsage)

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, opts *analyzeOptions, target string) error {
	formatName := a.cfg.Output.Format
	if cmd.Flags().Changed(formatFlag) {
		formatName = opts.format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	analyzer, err := a.analyzer(opts.detectors)
	if err != nil {
		return err
	}

	results, err := analyzer.AnalyzeRepository(cmd.Context(), a.acquirer(opts.local, opts.ref), target)
	if err != nil {
		return err
	}

	if opts.smellyOnly || a.cfg.Output.SmellyOnly {
		results = report.WithSmells(results)
	}

	return report.Write(cmd.OutOrStdout(), format, results)
}
