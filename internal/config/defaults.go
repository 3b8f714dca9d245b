package config

import "time"

// Scan defaults.
const (
	DefaultMaxFileSize = "10MB"
	DefaultWorkers     = 0
)

// Git defaults.
const (
	DefaultCloneTimeout = 2 * time.Minute
)

// Output defaults.
const (
	DefaultFormat     = "json"
	DefaultSmellyOnly = false
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// FileName is the configuration file searched for when no path is given.
const FileName = ".smellscan"

// EnvPrefix prefixes every environment override, e.g. SMELLSCAN_OUTPUT_FORMAT.
const EnvPrefix = "SMELLSCAN"
