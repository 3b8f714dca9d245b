package analysis

import "github.com/specvital/smellscan/pkg/domain"

// TypeUnknown labels files whose structural model could not be built.
const TypeUnknown = "unknown"

// Classifier assigns the opaque type label of a result.
// model is nil when the file could not be parsed.
type Classifier interface {
	Classify(file domain.SourceFile, model *domain.TestFile) string
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(file domain.SourceFile, model *domain.TestFile) string

func (f ClassifierFunc) Classify(file domain.SourceFile, model *domain.TestFile) string {
	return f(file, model)
}

// FrameworkClassifier labels a file with its detected test framework.
var FrameworkClassifier = ClassifierFunc(func(_ domain.SourceFile, model *domain.TestFile) string {
	if model == nil || model.Framework == "" {
		return TypeUnknown
	}
	return model.Framework
})
