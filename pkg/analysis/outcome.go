package analysis

import (
	"fmt"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/smells"
)

// DetectorFailure reports a detector that panicked on one file.
// The detector contributes no smells for that file; nothing else is affected.
type DetectorFailure struct {
	Cause    any
	Detector string
	Path     string
}

func (e *DetectorFailure) Error() string {
	return fmt.Sprintf("detector %s failed on %s: %v", e.Detector, e.Path, e.Cause)
}

// Unwrap exposes the panic value when it was an error.
func (e *DetectorFailure) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// fileOutcome is the result of analysing one file.
// A degraded outcome carries an empty result and the reason in err.
type fileOutcome struct {
	degraded bool
	err      error
	result   domain.FileResult
}

// detectorOutcome is one detector's contribution to one file.
type detectorOutcome struct {
	err    error
	smells []domain.Smell
}

func runDetector(d smells.Detector, model *domain.TestFile, path string) (out detectorOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = detectorOutcome{err: &DetectorFailure{
				Cause:    r,
				Detector: smells.DisplayName(d.ID()),
				Path:     path,
			}}
		}
	}()

	return detectorOutcome{smells: d.Detect(model)}
}
