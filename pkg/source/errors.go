package source

import (
	"errors"
	"fmt"
)

// ErrAcquisition matches every AcquisitionError via errors.Is.
var ErrAcquisition = errors.New("source: acquisition failed")

// AcquisitionError reports that a repository snapshot could not be obtained:
// the repository is unreachable, does not exist, requires credentials, or
// the fetch exceeded its deadline.
type AcquisitionError struct {
	Err error
	URL string
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisition
}

// CleanupError reports that a snapshot could not be removed.
type CleanupError struct {
	Err  error
	Path string
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("remove snapshot %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}
