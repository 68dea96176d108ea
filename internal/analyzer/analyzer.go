// Package analyzer reads repository state and computes what a rebase needs:
// which remote is the upstream, which remote hosts the fork, which upstream
// branch the current branch forked from, and which local commits are the
// fork's patch set.
package analyzer

import (
	"strings"

	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/internal/tui"
)

// Repository identities used to recognize remotes by URL. The upstream is
// matched in any transport form; the fork identity additionally matches the
// scp-like ssh syntax (git@github.com:canopybmc/openbmc).
const (
	upstreamIdentity = "openbmc/openbmc"
	forkIdentity     = "canopybmc/openbmc"
	forkIdentitySSH  = "github.com:canopybmc/openbmc"
)

// RepoState is a snapshot of the working copy taken at the start of a
// top-level operation. It is read fresh every time and never cached across
// invocations.
type RepoState struct {
	Root           string
	Head           string
	Branch         string
	Clean          bool
	UpstreamRemote string // empty when no upstream remote was found
	ForkRemote     string // empty when no fork remote was found
	UpstreamBase   string // merge-base with upstream trunk; empty when unknown
}

// Analyzer computes repository state through the VCS backend
type Analyzer struct {
	runner git.Runner
	splog  *tui.Splog
}

// New creates an Analyzer
func New(runner git.Runner, splog *tui.Splog) *Analyzer {
	return &Analyzer{runner: runner, splog: splog}
}

// AnalyzeCurrentState reads the current repository state
func (a *Analyzer) AnalyzeCurrentState() (*RepoState, error) {
	head, err := a.runner.CurrentCommit()
	if err != nil {
		return nil, err
	}
	branch, err := a.runner.CurrentBranch()
	if err != nil {
		return nil, err
	}
	clean, err := a.runner.IsClean()
	if err != nil {
		return nil, err
	}

	state := &RepoState{
		Root:           a.runner.RepoRoot(),
		Head:           head,
		Branch:         branch,
		Clean:          clean,
		UpstreamRemote: a.FindUpstreamRemote(),
		ForkRemote:     a.FindForkRemote(),
	}
	state.UpstreamBase = a.FindUpstreamBase(state.UpstreamRemote)
	return state, nil
}

// FindUpstreamRemote returns the remote tracking the upstream repository:
// a remote literally named "upstream" wins, otherwise the first remote whose
// URL carries the upstream identity. Returns empty when no remote matches.
func (a *Analyzer) FindUpstreamRemote() string {
	remotes, err := a.runner.ListRemotes()
	if err != nil {
		return ""
	}

	for _, remote := range remotes {
		if remote == "upstream" {
			return remote
		}
	}

	for _, remote := range remotes {
		url, err := a.runner.RemoteURL(remote)
		if err != nil {
			// A broken remote entry is "not a candidate", keep scanning.
			continue
		}
		if strings.Contains(url, upstreamIdentity) {
			return remote
		}
	}
	return ""
}

// FindForkRemote returns the remote hosting the downstream fork, matched by
// URL identity in both https and ssh forms. "origin" is accepted only when
// its URL also matches the fork identity.
func (a *Analyzer) FindForkRemote() string {
	remotes, err := a.runner.ListRemotes()
	if err != nil {
		return ""
	}

	for _, remote := range remotes {
		url, err := a.runner.RemoteURL(remote)
		if err != nil {
			continue
		}
		if strings.Contains(url, forkIdentity) || strings.Contains(url, forkIdentitySSH) {
			return remote
		}
	}
	return ""
}

// FindUpstreamBase computes the merge-base between HEAD and the upstream
// trunk, trying main before master. Empty when neither resolves.
func (a *Analyzer) FindUpstreamBase(upstreamRemote string) string {
	if upstreamRemote == "" {
		return ""
	}
	for _, trunk := range []string{"main", "master"} {
		base, err := a.runner.MergeBase("HEAD", upstreamRemote+"/"+trunk)
		if err == nil && base != "" {
			return base
		}
	}
	return ""
}
