package git

import (
	"context"
	"fmt"
	"strings"
)

// Fetch fetches the latest refs from a remote
func (r *ExecRunner) Fetch(ctx context.Context, remote string) error {
	_, err := r.runner.Run(ctx, "fetch", remote)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}

// ListRemotes returns the names of all configured remotes
func (r *ExecRunner) ListRemotes() ([]string, error) {
	lines, err := r.runner.RunLines(context.Background(), "remote")
	if err != nil {
		return nil, err
	}
	remotes := make([]string, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name != "" {
			remotes = append(remotes, name)
		}
	}
	return remotes, nil
}

// RemoteURL returns the fetch URL configured for a remote
func (r *ExecRunner) RemoteURL(name string) (string, error) {
	url, err := r.runner.Run(context.Background(), "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("failed to get URL for remote %s: %w", name, err)
	}
	return url, nil
}

// ListRemoteBranches returns the remote-tracking branches for a remote, each
// prefixed with the remote name (e.g. "upstream/main"). The HEAD pointer
// entry is excluded.
func (r *ExecRunner) ListRemoteBranches(remote string) ([]string, error) {
	lines, err := r.runner.RunLines(context.Background(), "branch", "-r", "--list", remote+"/*")
	if err != nil {
		return nil, err
	}
	return parseRemoteBranchList(lines), nil
}

// parseRemoteBranchList cleans up `git branch -r` output: strips the current
// markers, drops HEAD pointer lines and "HEAD -> remote/branch" aliases.
func parseRemoteBranchList(lines []string) []string {
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(strings.TrimLeft(line, "* "))
		if name == "" || strings.Contains(name, "->") || strings.HasSuffix(name, "/HEAD") {
			continue
		}
		branches = append(branches, name)
	}
	return branches
}
