package git

import (
	"context"
)

// Commit identifies a single commit in the patch set. The full SHA is
// authoritative; the short SHA and subject exist for display.
type Commit struct {
	SHA      string `json:"sha"`
	ShortSHA string `json:"shortSha"`
	Subject  string `json:"subject"`
}

// PickResult represents the outcome of a cherry-pick operation
type PickResult int

const (
	// PickDone indicates the commit applied cleanly
	PickDone PickResult = iota
	// PickConflict indicates the cherry-pick stopped on a merge conflict
	PickConflict
)

// RebaseResult represents the outcome of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase completed successfully
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

// Runner defines the version-control backend used by the analyzer, backup
// manager, and rebase engine. Conflicts are reported through PickResult and
// RebaseResult, never through error text; a result value is meaningful only
// when the accompanying error is nil. The backend performs no retries; retry
// and resume policy belongs to the engine.
type Runner interface {
	// Repository information
	RepoRoot() string
	ResolveRef(ref string) (string, error)
	CurrentBranch() (string, error)
	CurrentCommit() (string, error)
	IsClean() (bool, error)

	// Remotes
	Fetch(ctx context.Context, remote string) error
	ListRemotes() ([]string, error)
	RemoteURL(name string) (string, error)
	ListRemoteBranches(remote string) ([]string, error)

	// History
	MergeBase(a, b string) (string, error)
	IsAncestor(ancestor, descendant string) (bool, error)
	CountCommits(from, to string) (int, error)
	ListCommits(from, to string, oldestFirst bool) ([]Commit, error)

	// Branch and tree mutation
	ListBranches(prefix string) ([]string, error)
	CreateBranch(name, start string) error
	HardReset(ctx context.Context, target string) error

	// Cherry-pick
	CherryPick(ctx context.Context, commit string) (PickResult, error)
	CherryPickContinue(ctx context.Context) (PickResult, error)
	CherryPickAbort(ctx context.Context) error
	ConflictedFiles() ([]string, error)
	IsCherryPickInProgress() bool

	// Rebase (feature-branch path)
	RebaseOnto(ctx context.Context, target string) (RebaseResult, error)
	RebaseContinue(ctx context.Context) (RebaseResult, error)
	RebaseAbort(ctx context.Context) error
	IsRebaseInProgress() bool
}

var (
	_ Runner = (*ExecRunner)(nil)
	_ Runner = (*FakeRunner)(nil)
)
