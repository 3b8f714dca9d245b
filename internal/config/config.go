// Package config loads smellscan settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/specvital/smellscan/pkg/parser"
	"github.com/specvital/smellscan/pkg/report"
)

// Sentinel validation errors.
var (
	ErrInvalidCloneTimeout = errors.New("git clone timeout must be positive")
	ErrInvalidFormat       = errors.New("invalid output format")
	ErrInvalidLogFormat    = errors.New("invalid log format")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidMaxFileSize  = errors.New("invalid max file size")
	ErrInvalidPatterns     = errors.New("invalid test file patterns")
	ErrInvalidWorkers      = errors.New("workers must not be negative")
)

// Config holds all configuration for smellscan.
type Config struct {
	// Detectors restricts the run to these detector names. Empty means all.
	Detectors []string      `mapstructure:"detectors"`
	Git       GitConfig     `mapstructure:"git"`
	Logging   LoggingConfig `mapstructure:"logging"`
	Output    OutputConfig  `mapstructure:"output"`
	Scan      ScanConfig    `mapstructure:"scan"`
}

// ScanConfig holds test file discovery settings.
type ScanConfig struct {
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
	// MaxFileSize is a human readable size such as "512KB" or "10MB".
	MaxFileSize string   `mapstructure:"max_file_size"`
	Patterns    []string `mapstructure:"patterns"`
	Workers     int      `mapstructure:"workers"`
}

// GitConfig holds repository acquisition settings.
type GitConfig struct {
	CloneTimeout time.Duration `mapstructure:"clone_timeout"`
	Ref          string        `mapstructure:"ref"`
	TempDir      string        `mapstructure:"temp_dir"`
	// Token is sent as the HTTP basic auth password, with Username defaulting to x-access-token.
	Token    string `mapstructure:"token"`
	Username string `mapstructure:"username"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format     string `mapstructure:"format"`
	SmellyOnly bool   `mapstructure:"smelly_only"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for .smellscan.yaml in the working directory
// and the home directory; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(FileName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	if err := viperCfg.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so environment overrides are seen by Unmarshal.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("detectors", []string{})

	viperCfg.SetDefault("scan.patterns", parser.DefaultTestFilePatterns)
	viperCfg.SetDefault("scan.exclude_dirs", []string{})
	viperCfg.SetDefault("scan.max_file_size", DefaultMaxFileSize)
	viperCfg.SetDefault("scan.workers", DefaultWorkers)

	viperCfg.SetDefault("git.clone_timeout", DefaultCloneTimeout)
	viperCfg.SetDefault("git.ref", "")
	viperCfg.SetDefault("git.temp_dir", "")
	viperCfg.SetDefault("git.token", "")
	viperCfg.SetDefault("git.username", "")

	viperCfg.SetDefault("output.format", DefaultFormat)
	viperCfg.SetDefault("output.smelly_only", DefaultSmellyOnly)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if err := parser.ValidatePatterns(c.Scan.Patterns); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPatterns, err)
	}

	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Scan.Workers)
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}

	if c.Git.CloneTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCloneTimeout, c.Git.CloneTimeout)
	}

	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// MaxFileSizeBytes parses Scan.MaxFileSize.
func (c *Config) MaxFileSizeBytes() (int64, error) {
	size, err := humanize.ParseBytes(c.Scan.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMaxFileSize, c.Scan.MaxFileSize, err)
	}
	if size == 0 || size > 1<<40 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.Scan.MaxFileSize)
	}
	return int64(size), nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	return level, nil
}
