package analysis

import (
	"context"
	"errors"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/source"
)

// Acquirer obtains a read-only snapshot for a repository handle.
// The caller owns the returned source and must Close it.
type Acquirer interface {
	Acquire(ctx context.Context, handle string) (source.Source, error)
}

// AcquirerFunc adapts a function to Acquirer.
type AcquirerFunc func(ctx context.Context, handle string) (source.Source, error)

func (f AcquirerFunc) Acquire(ctx context.Context, handle string) (source.Source, error) {
	return f(ctx, handle)
}

// GitAcquirer clones handle as a git URL into a temporary snapshot.
func GitAcquirer(opts *source.GitOptions) Acquirer {
	return AcquirerFunc(func(ctx context.Context, url string) (source.Source, error) {
		src, err := source.NewGitSource(ctx, url, opts)
		if err != nil {
			return nil, err
		}
		return src, nil
	})
}

// LocalAcquirer treats handle as a local directory.
func LocalAcquirer() Acquirer {
	return AcquirerFunc(func(_ context.Context, path string) (source.Source, error) {
		src, err := source.NewLocalSource(path)
		if err != nil {
			return nil, err
		}
		return src, nil
	})
}

// AnalyzeRepository acquires handle, analyses it and releases the snapshot
// on every exit path. Acquisition failures match source.ErrAcquisition.
func (a *Analyzer) AnalyzeRepository(ctx context.Context, acq Acquirer, handle string) ([]domain.FileResult, error) {
	src, err := a.acquire(ctx, acq, handle)
	if err != nil {
		return nil, err
	}
	defer a.release(ctx, src, handle)

	return a.Analyze(ctx, src)
}

// CountRepository acquires handle and counts its test files.
func (a *Analyzer) CountRepository(ctx context.Context, acq Acquirer, handle string) (int, error) {
	src, err := a.acquire(ctx, acq, handle)
	if err != nil {
		return 0, err
	}
	defer a.release(ctx, src, handle)

	return a.Count(ctx, src)
}

func (a *Analyzer) acquire(ctx context.Context, acq Acquirer, handle string) (source.Source, error) {
	src, err := acq.Acquire(ctx, handle)
	if err != nil {
		if !errors.Is(err, source.ErrAcquisition) {
			err = &source.AcquisitionError{URL: handle, Err: err}
		}
		a.logger.ErrorContext(ctx, "repository acquisition failed",
			"handle", handle,
			"error", err,
		)
		return nil, err
	}
	if src == nil {
		return nil, &source.AcquisitionError{URL: handle, Err: errors.New("acquirer returned no source")}
	}
	return src, nil
}

// release closes the snapshot. A cleanup failure is logged and never
// replaces the result already produced.
func (a *Analyzer) release(ctx context.Context, src source.Source, handle string) {
	if err := src.Close(); err != nil {
		a.logger.ErrorContext(context.WithoutCancel(ctx), "failed to release repository snapshot",
			"handle", handle,
			"error", err,
		)
	}
}
