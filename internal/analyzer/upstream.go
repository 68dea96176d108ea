package analyzer

import (
	"context"
	"fmt"
	"strings"
)

// UpstreamInfo describes what a rebase against an upstream target would pick up
type UpstreamInfo struct {
	Remote     string
	Branch     string // full remote-tracking name, e.g. "upstream/main"
	OldBase    string // merge-base the local patches currently sit on
	NewHead    string // commit the upstream target currently points at
	NewCommits int    // commits in OldBase..NewHead
}

// AnalyzeUpstream fetches the upstream remote and resolves the rebase target.
// target may be a bare branch name or a remote-qualified ref.
func (a *Analyzer) AnalyzeUpstream(ctx context.Context, state *RepoState, target string) (*UpstreamInfo, error) {
	if state.UpstreamRemote == "" {
		return nil, fmt.Errorf("no upstream remote configured")
	}

	a.splog.Info("Fetching latest from %s...", state.UpstreamRemote)
	if err := a.runner.Fetch(ctx, state.UpstreamRemote); err != nil {
		return nil, err
	}

	upstreamBranch := target
	if !strings.Contains(target, "/") {
		upstreamBranch = state.UpstreamRemote + "/" + target
	}

	newHead, err := a.runner.ResolveRef(upstreamBranch)
	if err != nil {
		return nil, fmt.Errorf("cannot find branch %s: %w", upstreamBranch, err)
	}

	newCommits := 0
	if state.UpstreamBase != "" && newHead != state.UpstreamBase {
		count, err := a.runner.CountCommits(state.UpstreamBase, newHead)
		if err == nil {
			newCommits = count
		}
	}

	return &UpstreamInfo{
		Remote:     state.UpstreamRemote,
		Branch:     upstreamBranch,
		OldBase:    state.UpstreamBase,
		NewHead:    newHead,
		NewCommits: newCommits,
	}, nil
}
