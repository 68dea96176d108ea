package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// MergeBase returns the nearest common ancestor commit of two refs
func (r *ExecRunner) MergeBase(a, b string) (string, error) {
	repo, err := r.gogitRepo()
	if err != nil {
		return "", err
	}

	hashA, err := r.resolveHash(a)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", a, err)
	}
	hashB, err := r.resolveHash(b)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", b, err)
	}

	commitA, err := repo.CommitObject(hashA)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", a, err)
	}
	commitB, err := repo.CommitObject(hashB)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", b, err)
	}

	mergeBases, err := commitA.MergeBase(commitB)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}
	if len(mergeBases) == 0 {
		return "", fmt.Errorf("no merge base between %s and %s", a, b)
	}

	return mergeBases[0].Hash.String(), nil
}

// resolveHash resolves a ref to a go-git hash, falling back to rev-parse for
// forms go-git's revision parser does not cover (e.g. remote-tracking names).
func (r *ExecRunner) resolveHash(ref string) (plumbing.Hash, error) {
	repo, err := r.gogitRepo()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if hash, err := repo.ResolveRevision(plumbing.Revision(ref)); err == nil {
		return *hash, nil
	}
	sha, err := r.ResolveRef(ref)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return plumbing.NewHash(sha), nil
}

// IsAncestor reports whether ancestor is reachable from descendant
func (r *ExecRunner) IsAncestor(ancestor, descendant string) (bool, error) {
	repo, err := r.gogitRepo()
	if err != nil {
		return false, err
	}

	hashA, err := r.resolveHash(ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", ancestor, err)
	}
	hashD, err := r.resolveHash(descendant)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", descendant, err)
	}

	commitA, err := repo.CommitObject(hashA)
	if err != nil {
		return false, fmt.Errorf("failed to get commit %s: %w", ancestor, err)
	}
	commitD, err := repo.CommitObject(hashD)
	if err != nil {
		return false, fmt.Errorf("failed to get commit %s: %w", descendant, err)
	}

	return commitA.IsAncestor(commitD)
}

// CountCommits returns the number of commits in the exclusive range from..to
func (r *ExecRunner) CountCommits(from, to string) (int, error) {
	output, err := r.runner.Run(context.Background(), "rev-list", "--count", from+".."+to)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", output, err)
	}
	return count, nil
}

// ListCommits returns the commits in the exclusive range from..to. Results
// are newest first unless oldestFirst is set, which matches the order
// cherry-picks must be applied in.
func (r *ExecRunner) ListCommits(from, to string, oldestFirst bool) ([]Commit, error) {
	args := []string{"log", "--format=%h%x00%H%x00%s"}
	if oldestFirst {
		args = append(args, "--reverse")
	}
	args = append(args, from+".."+to)

	lines, err := r.runner.RunLines(context.Background(), args...)
	if err != nil {
		return nil, err
	}

	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\x00", 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, Commit{
			ShortSHA: parts[0],
			SHA:      parts[1],
			Subject:  parts[2],
		})
	}
	return commits, nil
}
