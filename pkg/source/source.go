// Package source provides read-only snapshots of a repository's file tree.
//
// A Source is owned by exactly one analysis run. Callers must call Close when
// done; for a GitSource that removes the cloned snapshot from disk.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned when a relative path escapes the source root.
var ErrInvalidPath = errors.New("source: invalid path")

// Source is a read-only file tree.
type Source interface {
	// Root returns the absolute path of the snapshot root.
	Root() string
	// Open opens the file at relPath, relative to Root.
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	// Close releases the snapshot.
	Close() error
}

// openUnderRoot opens relPath under root, rejecting paths that leave the root.
func openUnderRoot(ctx context.Context, root, relPath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, relPath)
	}

	f, err := os.Open(filepath.Join(root, cleaned))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", relPath, err)
	}
	return f, nil
}
