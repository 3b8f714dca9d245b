package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSource exposes an existing local directory.
// Close never touches the directory.
type LocalSource struct {
	root string
}

// NewLocalSource creates a Source rooted at path.
// The path must exist and be a directory.
func NewLocalSource(path string) (*LocalSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &AcquisitionError{URL: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &AcquisitionError{URL: path, Err: err}
	}
	if !info.IsDir() {
		return nil, &AcquisitionError{URL: path, Err: fmt.Errorf("%s is not a directory", abs)}
	}

	return &LocalSource{root: abs}, nil
}

func (s *LocalSource) Root() string {
	return s.root
}

func (s *LocalSource) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	return openUnderRoot(ctx, s.root, relPath)
}

func (s *LocalSource) Close() error {
	return nil
}
