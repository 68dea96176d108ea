// Package testhelpers provides real-git repository fixtures for integration
// style tests of the VCS adapter.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo is a scratch Git repository for tests
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new repository with a main branch and test identity
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	repo.Git(t, "config", "user.name", "Test User")
	repo.Git(t, "config", "user.email", "test@example.com")
	repo.Git(t, "config", "commit.gpgsign", "false")

	return repo
}

// Git runs a git command in the repository, failing the test on error
func (r *GitRepo) Git(t *testing.T, args ...string) string {
	t.Helper()

	output, err := r.TryGit(args...)
	if err != nil {
		t.Fatalf("git %s failed: %v", strings.Join(args, " "), err)
	}
	return output
}

// TryGit runs a git command and returns the trimmed output and any error
func (r *GitRepo) TryGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return strings.TrimSpace(string(output)), nil
}

// CommitFile writes content to a file and commits it, returning the new HEAD SHA
func (r *GitRepo) CommitFile(t *testing.T, name, content, message string) string {
	t.Helper()

	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	r.Git(t, "add", name)
	r.Git(t, "commit", "-m", message)
	return r.Head(t)
}

// Head returns the current HEAD SHA
func (r *GitRepo) Head(t *testing.T) string {
	t.Helper()
	return r.Git(t, "rev-parse", "HEAD")
}

// CreateAndCheckoutBranch creates and checks out a branch
func (r *GitRepo) CreateAndCheckoutBranch(t *testing.T, name string) {
	t.Helper()
	r.Git(t, "checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch
func (r *GitRepo) CheckoutBranch(t *testing.T, name string) {
	t.Helper()
	r.Git(t, "checkout", name)
}

// AddRemote configures a remote pointing at another local repository
func (r *GitRepo) AddRemote(t *testing.T, name, url string) {
	t.Helper()
	r.Git(t, "remote", "add", name, url)
}
