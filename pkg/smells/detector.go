// Package smells holds the test smell detectors and the registry that runs them.
//
// A detector is a pure function of a parsed test file. Detectors never see the
// syntax tree or each other's output, so they can run in any order and on any
// number of files concurrently.
package smells

import (
	"strings"

	"github.com/specvital/smellscan/pkg/domain"
)

// Detector finds one kind of smell in a parsed test file.
// Implementations must be safe for concurrent use and must return no smells
// for an empty file.
type Detector interface {
	// ID returns the internal identifier, e.g. "detectEmptyTest".
	ID() string
	Detect(file *domain.TestFile) []domain.Smell
}

// DetectFunc is the signature of a detector body.
type DetectFunc func(file *domain.TestFile) []domain.Smell

type funcDetector struct {
	id string
	fn DetectFunc
}

// NewDetector wraps fn as a Detector with the given identifier.
func NewDetector(id string, fn DetectFunc) Detector {
	return &funcDetector{id: id, fn: fn}
}

func (d *funcDetector) ID() string { return d.id }

func (d *funcDetector) Detect(file *domain.TestFile) []domain.Smell {
	if file == nil {
		return nil
	}
	return d.fn(file)
}

// DisplayName strips the internal "detect" prefix from a detector identifier.
func DisplayName(id string) string {
	for _, prefix := range []string{"detect", "Detect"} {
		if rest, ok := strings.CutPrefix(id, prefix); ok && rest != "" {
			return rest
		}
	}
	return id
}
