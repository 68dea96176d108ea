package git

import (
	"fmt"
	"os"
	"sync"

	gogit "github.com/go-git/go-git/v5"
)

// GetRepoRoot returns the root directory of the Git repository containing the
// current working directory.
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return GetRepoRootFrom(wd)
}

// GetRepoRootFrom returns the root directory of the Git repository containing dir.
func GetRepoRootFrom(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// ExecRunner implements Runner against a real working copy. Plumbing queries
// that go-git answers in-process (merge-base, repository discovery) use
// go-git; everything that mutates the working tree shells out to git.
type ExecRunner struct {
	root   string
	runner *CommandRunner

	repoOnce sync.Once
	repo     *gogit.Repository
	repoErr  error
}

// NewRunner creates a Runner for the repository rooted at root.
func NewRunner(root string) *ExecRunner {
	return &ExecRunner{
		root:   root,
		runner: NewCommandRunner(root),
	}
}

// OpenRunner discovers the repository containing dir and returns a Runner for it.
func OpenRunner(dir string) (*ExecRunner, error) {
	root, err := GetRepoRootFrom(dir)
	if err != nil {
		return nil, err
	}
	return NewRunner(root), nil
}

// RepoRoot returns the repository root directory
func (r *ExecRunner) RepoRoot() string {
	return r.root
}

func (r *ExecRunner) gogitRepo() (*gogit.Repository, error) {
	r.repoOnce.Do(func() {
		r.repo, r.repoErr = gogit.PlainOpenWithOptions(r.root, &gogit.PlainOpenOptions{
			DetectDotGit: true,
		})
	})
	return r.repo, r.repoErr
}
