package analyzer

import (
	"math"
	"strings"
)

// activityWeight is the mild tie-break favoring upstream branches that have
// kept moving since the fork point. The exact arithmetic is a heuristic, not
// a correctness guarantee.
const activityWeight = 0.1

// DetectTargetBranch resolves which upstream branch the current branch was
// forked from, in priority order:
//
//  1. exact name match on the upstream remote
//  2. history walk: lowest score = distance − 0.1×upstream activity
//  3. main, then master, whichever exists on upstream
//  4. the literal "main" even if unresolved; callers must handle the guess
//     being wrong
func (a *Analyzer) DetectTargetBranch(currentBranch, upstreamRemote string) string {
	if upstreamRemote == "" {
		return "main"
	}

	if currentBranch != "" && currentBranch != "HEAD" {
		if _, err := a.runner.ResolveRef(upstreamRemote + "/" + currentBranch); err == nil {
			a.splog.Debug("exact upstream match for %s", currentBranch)
			return currentBranch
		}
	}

	if target := a.findOriginBranch(upstreamRemote); target != "" {
		return target
	}

	for _, fallback := range []string{"main", "master"} {
		if _, err := a.runner.ResolveRef(upstreamRemote + "/" + fallback); err == nil {
			a.splog.Warn("Could not detect origin branch, falling back to %s", fallback)
			return fallback
		}
	}

	a.splog.Warn("No upstream branches found, assuming main")
	return "main"
}

// findOriginBranch walks every branch on the upstream remote and scores it by
// how far HEAD has diverged from its merge-base (distance) against how much
// the branch itself has moved since (activity). The lowest score wins.
// Branches that fail to yield a merge-base are skipped, not errors.
func (a *Analyzer) findOriginBranch(upstreamRemote string) string {
	remoteBranches, err := a.runner.ListRemoteBranches(upstreamRemote)
	if err != nil {
		return ""
	}

	bestScore := math.Inf(1)
	bestBranch := ""
	bestDistance := 0

	for _, remoteBranch := range remoteBranches {
		mergeBase, err := a.runner.MergeBase("HEAD", remoteBranch)
		if err != nil || mergeBase == "" {
			continue
		}

		distance, err := a.runner.CountCommits(mergeBase, "HEAD")
		if err != nil {
			continue
		}
		activity, err := a.runner.CountCommits(mergeBase, remoteBranch)
		if err != nil {
			continue
		}

		score := float64(distance) - activityWeight*float64(activity)
		if score < bestScore {
			bestScore = score
			bestBranch = strings.TrimPrefix(remoteBranch, upstreamRemote+"/")
			bestDistance = distance
		}
	}

	if bestBranch != "" {
		a.splog.Debug("detected origin branch %s (distance: %d commits)", bestBranch, bestDistance)
	}
	return bestBranch
}
