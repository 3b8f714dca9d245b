package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/source"
)

// DefaultMaxFileSize is the default maximum file size for scanning (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// DefaultTestFilePatterns match the conventional JS/TS test file locations.
var DefaultTestFilePatterns = []string{
	"**/*.{test,spec}.{js,jsx,ts,tsx,mjs,cjs}",
	"**/__tests__/**/*.{js,jsx,ts,tsx,mjs,cjs}",
}

// DefaultSkipPatterns contains directory names that are skipped by default during scanning.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	"build",
	".next",
	"coverage",
	".cache",
	"__fixtures__",
	"__mocks__",
}

// ErrInvalidPattern is wrapped by ValidatePatterns for malformed globs.
var ErrInvalidPattern = errors.New("scanner: invalid test file pattern")

// Scanner discovers candidate test files in a source.
// A Scanner holds no per-run state and is safe for concurrent use.
type Scanner struct {
	options *ScanOptions
	skipSet map[string]bool
}

// NewScanner creates a new scanner with the given options.
func NewScanner(opts ...ScanOption) *Scanner {
	options := &ScanOptions{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Scanner{
		options: options,
		skipSet: buildSkipSet(append(append([]string{}, DefaultSkipPatterns...), options.ExcludeDirs...)),
	}
}

// ValidatePatterns reports the first malformed glob pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	return nil
}

// Options returns a copy of the effective options.
func (s *Scanner) Options() ScanOptions {
	return *s.options
}

// Discover walks the source root and returns the relative, slash-separated
// paths of test file candidates in lexicographic order.
// Excluded directories are never entered. Unreadable entries are skipped.
func (s *Scanner) Discover(ctx context.Context, src source.Source) ([]string, error) {
	rootPath := src.Root()

	var files []string

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == rootPath {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, rootPath, s.skipSet) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if !matchesAnyPattern(relPath, s.options.Patterns) {
			return nil
		}

		if s.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil || info.Size() > s.options.MaxFileSize {
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover test files in %s: %w", rootPath, err)
	}

	// WalkDir order is per-directory lexical, which differs from full-path order
	// ("a.test.js" sorts before "a/b.test.js").
	sort.Strings(files)

	return files, nil
}

// Count returns the number of discovered test files.
func (s *Scanner) Count(ctx context.Context, src source.Source) (int, error) {
	files, err := s.Discover(ctx, src)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// Files returns a lazy sequence of discovered test files in path order.
// Content is read only as the sequence is consumed and every range walks the
// source again. A discovery failure is yielded once with an empty Path and
// ends the sequence; a read failure is yielded with the file's Path.
func (s *Scanner) Files(ctx context.Context, src source.Source) iter.Seq2[domain.SourceFile, error] {
	return func(yield func(domain.SourceFile, error) bool) {
		paths, err := s.Discover(ctx, src)
		if err != nil {
			yield(domain.SourceFile{}, err)
			return
		}

		for _, path := range paths {
			content, err := readFileFromSource(ctx, src, path)
			if !yield(domain.SourceFile{Path: path, Content: content}, err) {
				return
			}
		}
	}
}

// readFileFromSource reads a file from source using relative path.
// The relPath must be relative to src.Root().
func readFileFromSource(ctx context.Context, src source.Source, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := src.Open(ctx, relPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", relPath, err)
	}

	return content, nil
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if path == rootPath {
		return false
	}

	return skipSet[filepath.Base(path)]
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
