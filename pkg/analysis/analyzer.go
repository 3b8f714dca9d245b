// Package analysis runs the smell detectors over every test file of a source
// and aggregates one result per file.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser"
	"github.com/specvital/smellscan/pkg/parser/jstest"
	"github.com/specvital/smellscan/pkg/smells"
	"github.com/specvital/smellscan/pkg/source"
)

// ErrDiscovery is wrapped when the source tree cannot be walked.
var ErrDiscovery = errors.New("analysis: test file discovery failed")

// Analyzer aggregates smell detection results per file.
// Its configuration is fixed at construction; it is safe for concurrent use.
type Analyzer struct {
	classifier Classifier
	logger     *slog.Logger
	parser     Parser
	registry   *smells.Registry
	scanner    *parser.Scanner
	workers    int
}

// New creates an Analyzer. Without options it uses the default scanner,
// the JavaScript/TypeScript parser and the full detector catalog.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier: FrameworkClassifier,
		logger:     slog.Default(),
		parser:     jstest.NewParser(),
		registry:   smells.Default(),
		scanner:    parser.NewScanner(),
		workers:    DefaultWorkers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the detectors this analyzer runs.
func (a *Analyzer) Registry() *smells.Registry {
	return a.registry
}

func (a *Analyzer) workerCount() int {
	workers := a.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return workers
}

// Count returns the number of test files in src without parsing them.
func (a *Analyzer) Count(ctx context.Context, src source.Source) (int, error) {
	n, err := a.scanner.Count(ctx, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	return n, nil
}

// Analyze returns one result per discovered test file, sorted by path.
// Parse failures and detector panics degrade single files or detectors;
// only discovery failure or cancellation fails the whole call, with no partial results.
func (a *Analyzer) Analyze(ctx context.Context, src source.Source) ([]domain.FileResult, error) {
	sem := semaphore.NewWeighted(int64(a.workerCount()))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu           sync.Mutex
		results      = make([]domain.FileResult, 0)
		degraded     int
		discoveryErr error
	)

	for file, err := range a.scanner.Files(gCtx, src) {
		if err != nil && file.Path == "" {
			discoveryErr = err
			break
		}

		// Acquire before spawning so at most workerCount files are held in memory.
		if acquireErr := sem.Acquire(gCtx, 1); acquireErr != nil {
			break
		}

		readErr := err
		g.Go(func() error {
			defer sem.Release(1)

			out := a.analyzeFile(gCtx, file, readErr)

			mu.Lock()
			results = append(results, out.result)
			if out.degraded {
				degraded++
			}
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if discoveryErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, discoveryErr)
	}

	// Sort by path for deterministic output order.
	// Parallel goroutines complete in variable order based on file size and parsing complexity.
	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})

	a.logger.DebugContext(ctx, "analysis complete",
		"root", src.Root(),
		"files", len(results),
		"degraded", degraded,
	)

	return results, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, file domain.SourceFile, readErr error) fileOutcome {
	model, err := a.parse(ctx, file, readErr)
	if err != nil {
		a.logger.WarnContext(ctx, "test file degraded to empty result",
			"path", file.Path,
			"error", err,
		)
		return fileOutcome{
			degraded: true,
			err:      err,
			result: domain.FileResult{
				File:   file.Path,
				Type:   a.classifier.Classify(file, nil),
				Smells: []domain.Smell{},
			},
		}
	}

	found := make([]domain.Smell, 0)
	for _, d := range a.registry.Detectors() {
		out := runDetector(d, model, file.Path)
		if out.err != nil {
			a.logger.WarnContext(ctx, "detector failed",
				"path", file.Path,
				"detector", smells.DisplayName(d.ID()),
				"error", out.err,
			)
			continue
		}
		found = append(found, out.smells...)
	}

	return fileOutcome{
		result: domain.FileResult{
			DescribeCount: model.CountSuites(),
			File:          file.Path,
			ItCount:       model.CountTests(),
			Smells:        found,
			Type:          a.classifier.Classify(file, model),
		},
	}
}

func (a *Analyzer) parse(ctx context.Context, file domain.SourceFile, readErr error) (model *domain.TestFile, err error) {
	if readErr != nil {
		return nil, &parser.ParseError{Path: file.Path, Err: readErr}
	}

	// A parser panic is a parse failure of this file only.
	defer func() {
		if r := recover(); r != nil {
			model, err = nil, &parser.ParseError{Path: file.Path, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	model, err = a.parser.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	if model == nil {
		model = &domain.TestFile{Path: file.Path}
	}
	return model, nil
}
