package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by ParseError when the content is not valid source.
	ErrSyntax = errors.New("parser: syntax error")
	// ErrUnsupportedFile is wrapped by ParseError for extensions no grammar covers.
	ErrUnsupportedFile = errors.New("parser: unsupported file extension")
)

// ParseError reports that a file could not be turned into a structural model.
// It never aborts an analysis run; the file is reported with an empty model.
type ParseError struct {
	Err error
	// Line is the 1-based line of the first syntax error, or 0 when unknown.
	Line int
	Path string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
