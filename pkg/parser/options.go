package parser

// ScanOptions configures test file discovery.
type ScanOptions struct {
	// ExcludeDirs specifies directory names to skip during file discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludeDirs []string

	// MaxFileSize is the maximum file size in bytes to process.
	// Files larger than this are skipped.
	MaxFileSize int64

	// Patterns specifies doublestar glob patterns, matched against slash-separated
	// paths relative to the source root, that identify test files.
	// Empty means DefaultTestFilePatterns.
	Patterns []string
}

// ScanOption is a functional option for configuring Scanner.
type ScanOption func(*ScanOptions)

// WithExcludeDirs adds directory names to skip during file discovery.
func WithExcludeDirs(dirs []string) ScanOption {
	return func(o *ScanOptions) {
		o.ExcludeDirs = dirs
	}
}

// WithMaxFileSize sets the maximum file size to process.
// Negative values are ignored.
func WithMaxFileSize(size int64) ScanOption {
	return func(o *ScanOptions) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithPatterns replaces the test file glob patterns.
func WithPatterns(patterns []string) ScanOption {
	return func(o *ScanOptions) {
		o.Patterns = patterns
	}
}

func applyDefaults(opts *ScanOptions) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultTestFilePatterns
	}
}
