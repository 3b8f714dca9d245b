package analysis_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/specvital/smellscan/pkg/analysis"
	"github.com/specvital/smellscan/pkg/source"
)

type mockAcquirer struct {
	mock.Mock
}

func (m *mockAcquirer) Acquire(ctx context.Context, handle string) (source.Source, error) {
	args := m.Called(ctx, handle)
	src, _ := args.Get(0).(source.Source)
	return src, args.Error(1)
}

// trackedSource delegates reads to a local directory and records Close calls.
type trackedSource struct {
	mock.Mock
	local *source.LocalSource
}

func (s *trackedSource) Root() string { return s.local.Root() }

func (s *trackedSource) Open(ctx context.Context, rel string) (io.ReadCloser, error) {
	return s.local.Open(ctx, rel)
}

func (s *trackedSource) Close() error {
	return s.Called().Error(0)
}

func newTrackedSource(t *testing.T, files map[string]string, closeErr error) *trackedSource {
	t.Helper()

	local, err := source.NewLocalSource(writeRepo(t, files))
	require.NoError(t, err)

	src := &trackedSource{local: local}
	src.On("Close").Return(closeErr).Once()
	return src
}

func TestAnalyzer_AnalyzeRepository(t *testing.T) {
	t.Parallel()

	t.Run("should release snapshot after success", func(t *testing.T) {
		t.Parallel()

		src := newTrackedSource(t, map[string]string{"a.test.js": emptyCase}, nil)
		acq := &mockAcquirer{}
		acq.On("Acquire", mock.Anything, "https://example.com/o/r.git").Return(src, nil).Once()

		results, err := analysis.New(analysis.WithLogger(quietLogger())).
			AnalyzeRepository(context.Background(), acq, "https://example.com/o/r.git")

		require.NoError(t, err)
		assert.Len(t, results, 1)
		acq.AssertExpectations(t)
		src.AssertExpectations(t)
	})

	t.Run("should release snapshot when analysis is cancelled", func(t *testing.T) {
		t.Parallel()

		src := newTrackedSource(t, map[string]string{"a.test.js": emptyCase}, nil)
		acq := &mockAcquirer{}
		acq.On("Acquire", mock.Anything, "repo").Return(src, nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := analysis.New(analysis.WithLogger(quietLogger())).AnalyzeRepository(ctx, acq, "repo")

		assert.ErrorIs(t, err, context.Canceled)
		src.AssertExpectations(t)
	})

	t.Run("should log cleanup failure and keep results", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		cleanupErr := &source.CleanupError{Path: "/tmp/snap", Err: errors.New("permission denied")}
		src := newTrackedSource(t, map[string]string{"a.test.js": emptyCase}, cleanupErr)
		acq := &mockAcquirer{}
		acq.On("Acquire", mock.Anything, "repo").Return(src, nil).Once()

		results, err := analysis.New(analysis.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil)))).
			AnalyzeRepository(context.Background(), acq, "repo")

		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Contains(t, logs.String(), "failed to release repository snapshot")
		src.AssertExpectations(t)
	})

	t.Run("should wrap plain acquirer errors as acquisition errors", func(t *testing.T) {
		t.Parallel()

		acq := &mockAcquirer{}
		acq.On("Acquire", mock.Anything, "repo").Return(nil, errors.New("network unreachable")).Once()

		results, err := analysis.New(analysis.WithLogger(quietLogger())).AnalyzeRepository(context.Background(), acq, "repo")

		assert.Nil(t, results)
		assert.ErrorIs(t, err, source.ErrAcquisition)
		var acqErr *source.AcquisitionError
		require.ErrorAs(t, err, &acqErr)
		assert.Equal(t, "repo", acqErr.URL)
	})

	t.Run("should reject nil source from acquirer", func(t *testing.T) {
		t.Parallel()

		acq := &mockAcquirer{}
		acq.On("Acquire", mock.Anything, "repo").Return(nil, nil).Once()

		_, err := analysis.New(analysis.WithLogger(quietLogger())).AnalyzeRepository(context.Background(), acq, "repo")

		assert.ErrorIs(t, err, source.ErrAcquisition)
	})
}

func TestAnalyzer_CountRepository(t *testing.T) {
	t.Parallel()

	src := newTrackedSource(t, map[string]string{
		"a.test.js": emptyCase,
		"b.spec.js": emptyCase,
	}, nil)
	acq := &mockAcquirer{}
	acq.On("Acquire", mock.Anything, "repo").Return(src, nil).Once()

	count, err := analysis.New().CountRepository(context.Background(), acq, "repo")

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	src.AssertExpectations(t)
}

func TestLocalAcquirer(t *testing.T) {
	t.Parallel()

	t.Run("should open existing directory", func(t *testing.T) {
		t.Parallel()

		dir := writeRepo(t, map[string]string{"a.test.js": emptyCase})

		count, err := analysis.New().CountRepository(context.Background(), analysis.LocalAcquirer(), dir)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("should fail on missing directory", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing")

		_, err := analysis.New(analysis.WithLogger(quietLogger())).
			AnalyzeRepository(context.Background(), analysis.LocalAcquirer(), missing)

		assert.ErrorIs(t, err, source.ErrAcquisition)
	})
}

func TestGitAcquirer_InvalidURL(t *testing.T) {
	t.Parallel()

	acq := analysis.GitAcquirer(&source.GitOptions{TempDir: t.TempDir()})

	src, err := acq.Acquire(context.Background(), "")

	assert.Nil(t, src)
	assert.ErrorIs(t, err, source.ErrAcquisition)
}
