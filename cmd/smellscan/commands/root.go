// Package commands implements the smellscan subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specvital/smellscan/internal/config"
	"github.com/specvital/smellscan/pkg/analysis"
	"github.com/specvital/smellscan/pkg/parser"
	"github.com/specvital/smellscan/pkg/smells"
	"github.com/specvital/smellscan/pkg/source"
)

const (
	configFlag      = "config"
	configUsage     = "config file (default .smellscan.yaml in . or $HOME)"
	formatFlag      = "format"
	formatUsage     = "output format: json, csv, yaml or table"
	detectorsFlag   = "detectors"
	detectorsUsage  = "comma-separated detector names to run (default all)"
	localFlag       = "local"
	localUsage      = "treat the argument as a local directory instead of a git URL"
	smellyOnlyFlag  = "smelly-only"
	smellyOnlyUsage = "only report files with at least one smell"
	refFlag         = "ref"
	refUsage        = "branch to clone (default remote HEAD)"
	verboseFlag     = "verbose"
	verboseUsage    = "enable debug logging"

	defaultGitUsername = "x-access-token"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Commit  string
	Version string
}

// app is the state shared by subcommands once configuration is loaded.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	verbose    bool
}

// NewRootCommand builds the smellscan command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "smellscan",
		Short: "Detect test smells in JavaScript and TypeScript repositories",
		Long: `smellscan finds test files in a repository, parses their describe/it
structure and reports test smells per file.

Commands:
  analyze    Report smells and test counts per file
  count      Count test files without parsing them
  detectors  List the available smell detectors`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, configFlag, "", configUsage)
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, verboseFlag, "v", false, verboseUsage)

	rootCmd.AddCommand(newAnalyzeCommand(a))
	rootCmd.AddCommand(newCountCommand(a))
	rootCmd.AddCommand(newDetectorsCommand(a))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

func (a *app) load(logOut io.Writer) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(logOut, handlerOpts)
	if strings.EqualFold(cfg.Logging.Format, "text") {
		handler = slog.NewTextHandler(logOut, handlerOpts)
	}
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)

	return nil
}

// registry returns the configured detector subset, or the full catalog.
func (a *app) registry(names []string) (*smells.Registry, error) {
	if len(names) == 0 {
		names = a.cfg.Detectors
	}
	if len(names) == 0 {
		return smells.Default(), nil
	}
	return smells.Default().Select(names...)
}

func (a *app) analyzer(detectors []string) (*analysis.Analyzer, error) {
	registry, err := a.registry(detectors)
	if err != nil {
		return nil, err
	}

	maxSize, err := a.cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}

	scanner := parser.NewScanner(
		parser.WithPatterns(a.cfg.Scan.Patterns),
		parser.WithExcludeDirs(a.cfg.Scan.ExcludeDirs),
		parser.WithMaxFileSize(maxSize),
	)

	return analysis.New(
		analysis.WithRegistry(registry),
		analysis.WithScanner(scanner),
		analysis.WithLogger(a.logger),
		analysis.WithWorkers(a.cfg.Scan.Workers),
	), nil
}

func (a *app) acquirer(local bool, ref string) analysis.Acquirer {
	if local {
		return analysis.LocalAcquirer()
	}

	opts := &source.GitOptions{
		Ref:     a.cfg.Git.Ref,
		TempDir: a.cfg.Git.TempDir,
		Timeout: a.cfg.Git.CloneTimeout,
	}
	if ref != "" {
		opts.Ref = ref
	}
	if a.cfg.Git.Token != "" {
		username := a.cfg.Git.Username
		if username == "" {
			username = defaultGitUsername
		}
		opts.Credentials = &source.GitCredentials{Username: username, Password: a.cfg.Git.Token}
	}

	return analysis.GitAcquirer(opts)
}

func writeLine(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}
