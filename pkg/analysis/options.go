package analysis

import (
	"context"
	"log/slog"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser"
	"github.com/specvital/smellscan/pkg/smells"
)

const (
	// DefaultWorkers indicates that the analyzer should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0

	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
)

// Parser turns one source file into a structural model.
type Parser interface {
	Parse(ctx context.Context, file domain.SourceFile) (*domain.TestFile, error)
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithRegistry sets the detectors run on every file.
// Nil values are ignored and smells.Default() is used.
func WithRegistry(r *smells.Registry) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithScanner sets the test file discoverer.
func WithScanner(s *parser.Scanner) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.scanner = s
		}
	}
}

// WithParser sets the structural parser.
func WithParser(p Parser) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.parser = p
		}
	}
}

// WithClassifier sets the labeller for each result's type field.
func WithClassifier(c Classifier) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.classifier = c
		}
	}
}

// WithLogger sets the logger for degraded files, detector failures and cleanup errors.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithWorkers sets the number of files analysed concurrently.
// Zero or negative values use GOMAXPROCS; values above MaxWorkers are capped.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n < 0 {
			n = DefaultWorkers
		}
		a.workers = n
	}
}
