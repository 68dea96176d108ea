package git

import (
	"context"
	"fmt"
	"strings"
)

// ResolveRef resolves a ref (branch name, remote ref, or abbreviated SHA) to
// a full commit SHA.
func (r *ExecRunner) ResolveRef(ref string) (string, error) {
	sha, err := r.runner.Run(context.Background(), "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return sha, nil
}

// CurrentBranch returns the name of the currently checked-out branch. The
// result is empty on a detached HEAD.
func (r *ExecRunner) CurrentBranch() (string, error) {
	return r.runner.Run(context.Background(), "branch", "--show-current")
}

// CurrentCommit returns the SHA of HEAD
func (r *ExecRunner) CurrentCommit() (string, error) {
	return r.runner.Run(context.Background(), "rev-parse", "HEAD")
}

// IsClean reports whether the working tree has no uncommitted changes
func (r *ExecRunner) IsClean() (bool, error) {
	status, err := r.runner.Run(context.Background(), "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return status == "", nil
}

// ListBranches returns local branch names starting with prefix. An empty
// prefix lists every local branch.
func (r *ExecRunner) ListBranches(prefix string) ([]string, error) {
	args := []string{"branch", "--list", "--format=%(refname:short)"}
	if prefix != "" {
		args = append(args, prefix+"*")
	}
	lines, err := r.runner.RunLines(context.Background(), args...)
	if err != nil {
		return nil, err
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name != "" {
			branches = append(branches, name)
		}
	}
	return branches, nil
}

// CreateBranch creates a branch at the given start point without checking it out
func (r *ExecRunner) CreateBranch(name, start string) error {
	args := []string{"branch", name}
	if start != "" {
		args = append(args, start)
	}
	_, err := r.runner.Run(context.Background(), args...)
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// HardReset performs a hard reset of the current branch and working tree to target
func (r *ExecRunner) HardReset(ctx context.Context, target string) error {
	_, err := r.runner.Run(ctx, "reset", "--hard", target)
	if err != nil {
		return fmt.Errorf("failed to hard reset to %s: %w", target, err)
	}
	return nil
}
