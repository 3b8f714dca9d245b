package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	giturl "github.com/kubescape/go-git-url"
)

const (
	// DefaultCloneTimeout bounds the network wait of a single clone.
	DefaultCloneTimeout = 2 * time.Minute

	snapshotPrefix = "smellscan-"
)

// ErrCloneTimeout is wrapped by the AcquisitionError of a clone that hit its deadline.
var ErrCloneTimeout = errors.New("source: clone timed out")

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// GitCredentials holds HTTP basic auth credentials for private repositories.
type GitCredentials struct {
	Password string
	Username string
}

// GitOptions configures NewGitSource.
type GitOptions struct {
	Credentials *GitCredentials
	// Ref is the branch to clone. Empty means the remote HEAD.
	Ref string
	// TempDir is the parent directory for snapshots. Empty means os.TempDir().
	TempDir string
	// Timeout bounds the clone. Zero or negative values use DefaultCloneTimeout.
	Timeout time.Duration
}

// GitSource is a shallow clone of a remote repository in a temporary directory.
type GitSource struct {
	branch      string
	commitSHA   string
	committedAt time.Time
	root        string
	url         string

	closeOnce sync.Once
	closeErr  error
}

// NewGitSource clones url into a fresh temporary directory.
// Every failure is reported as *AcquisitionError and leaves nothing on disk.
func NewGitSource(ctx context.Context, url string, opts *GitOptions) (*GitSource, error) {
	if url == "" {
		return nil, &AcquisitionError{URL: url, Err: errors.New("URL is required")}
	}
	if opts == nil {
		opts = &GitOptions{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultCloneTimeout
	}

	dir, err := os.MkdirTemp(opts.TempDir, snapshotDirPattern(url))
	if err != nil {
		return nil, &AcquisitionError{URL: url, Err: fmt.Errorf("create snapshot dir: %w", err)}
	}

	src, err := cloneInto(ctx, dir, url, opts, timeout)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, &AcquisitionError{URL: url, Err: err}
	}

	return src, nil
}

func cloneInto(ctx context.Context, dir, url string, opts *GitOptions, timeout time.Duration) (*GitSource, error) {
	cloneCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cloneOpts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if opts.Ref != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Ref)
	}
	if opts.Credentials != nil {
		cloneOpts.Auth = &githttp.BasicAuth{
			Username: opts.Credentials.Username,
			Password: opts.Credentials.Password,
		}
	}

	repo, err := git.PlainCloneContext(cloneCtx, dir, false, cloneOpts)
	if err != nil {
		if errors.Is(cloneCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %w", ErrCloneTimeout, timeout, err)
		}
		return nil, fmt.Errorf("git clone: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit %s: %w", head.Hash(), err)
	}

	return &GitSource{
		branch:      head.Name().Short(),
		commitSHA:   head.Hash().String(),
		committedAt: commit.Committer.When,
		root:        dir,
		url:         url,
	}, nil
}

func (s *GitSource) Root() string {
	return s.root
}

func (s *GitSource) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	return openUnderRoot(ctx, s.root, relPath)
}

// Close removes the snapshot directory. Subsequent calls return the first result.
func (s *GitSource) Close() error {
	s.closeOnce.Do(func() {
		if err := os.RemoveAll(s.root); err != nil {
			s.closeErr = &CleanupError{Path: s.root, Err: err}
		}
	})
	return s.closeErr
}

func (s *GitSource) Branch() string {
	return s.branch
}

func (s *GitSource) CommitSHA() string {
	return s.commitSHA
}

func (s *GitSource) CommittedAt() time.Time {
	return s.committedAt
}

func (s *GitSource) URL() string {
	return s.url
}

// snapshotDirPattern names the temp dir after owner and repo when the host is recognised.
func snapshotDirPattern(url string) string {
	parsed, err := giturl.NewGitURL(url)
	if err != nil {
		return snapshotPrefix + "*"
	}

	name := parsed.GetOwnerName() + "-" + parsed.GetRepoName()
	return snapshotPrefix + unsafePathChars.ReplaceAllString(name, "_") + "-*"
}
