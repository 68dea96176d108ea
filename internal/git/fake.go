package git

import (
	"context"
	"fmt"
)

// PickOutcome scripts the result of a single cherry-pick attempt against the
// FakeRunner.
type PickOutcome struct {
	Result PickResult
	Files  []string
	Err    error
}

// RebaseOutcome scripts the result of a single rebase attempt against the
// FakeRunner.
type RebaseOutcome struct {
	Result RebaseResult
	Err    error
}

// FakeRunner is a deterministic in-memory Runner used to test the analyzer,
// backup manager, and rebase engine without a real working copy. Commit
// graphs are described by explicit maps rather than simulated object stores:
// tests set the merge-bases, ranges, and counts they care about and the fake
// fails loudly on anything unconfigured.
type FakeRunner struct {
	Root   string
	Branch string
	Head   string
	Clean  bool

	Refs           map[string]string
	Remotes        []string
	RemoteURLs     map[string]string
	RemoteBranches map[string][]string
	MergeBases     map[string]string
	CommitCounts   map[string]int
	CommitRanges   map[string][]Commit

	// Scripted outcomes, consumed in order. An empty queue applies cleanly.
	PickOutcomes     []PickOutcome
	ContinueOutcomes []PickOutcome
	RebaseOutcomes   []RebaseOutcome

	Conflicts        []string
	cherryPickActive bool
	rebaseActive     bool

	// Mutation record for assertions
	Fetched         []string
	Resets          []string
	CreatedBranches map[string]string
	Picked          []string
	PickAborts      int
	RebaseAborts    int
}

// NewFakeRunner returns a FakeRunner describing a clean repository on main
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Root:            "/fake/repo",
		Branch:          "main",
		Head:            "headheadheadheadheadheadheadheadheadhead",
		Clean:           true,
		Refs:            map[string]string{},
		RemoteURLs:      map[string]string{},
		RemoteBranches:  map[string][]string{},
		MergeBases:      map[string]string{},
		CommitCounts:    map[string]int{},
		CommitRanges:    map[string][]Commit{},
		CreatedBranches: map[string]string{},
	}
}

// SetMergeBase records the merge base for a pair of refs in both orders
func (f *FakeRunner) SetMergeBase(a, b, sha string) {
	f.MergeBases[a+" "+b] = sha
	f.MergeBases[b+" "+a] = sha
}

// SetRange records the commit list and count for the exclusive range from..to
func (f *FakeRunner) SetRange(from, to string, commits []Commit) {
	key := from + ".." + to
	f.CommitRanges[key] = commits
	f.CommitCounts[key] = len(commits)
}

// RepoRoot returns the configured root path
func (f *FakeRunner) RepoRoot() string { return f.Root }

// ResolveRef resolves through the Refs map; HEAD resolves to the fake head
func (f *FakeRunner) ResolveRef(ref string) (string, error) {
	if ref == "HEAD" {
		return f.Head, nil
	}
	if sha, ok := f.Refs[ref]; ok {
		return sha, nil
	}
	return "", fmt.Errorf("failed to resolve %s: unknown ref", ref)
}

// CurrentBranch returns the configured branch name
func (f *FakeRunner) CurrentBranch() (string, error) { return f.Branch, nil }

// CurrentCommit returns the configured head SHA
func (f *FakeRunner) CurrentCommit() (string, error) { return f.Head, nil }

// IsClean reports the configured cleanliness flag
func (f *FakeRunner) IsClean() (bool, error) { return f.Clean, nil }

// Fetch records the fetched remote
func (f *FakeRunner) Fetch(_ context.Context, remote string) error {
	f.Fetched = append(f.Fetched, remote)
	return nil
}

// ListRemotes returns the configured remote names
func (f *FakeRunner) ListRemotes() ([]string, error) { return f.Remotes, nil }

// RemoteURL returns the configured URL for a remote
func (f *FakeRunner) RemoteURL(name string) (string, error) {
	if url, ok := f.RemoteURLs[name]; ok {
		return url, nil
	}
	return "", fmt.Errorf("no such remote %q", name)
}

// ListRemoteBranches returns the configured remote-tracking branches
func (f *FakeRunner) ListRemoteBranches(remote string) ([]string, error) {
	return f.RemoteBranches[remote], nil
}

// MergeBase looks up a merge base recorded with SetMergeBase
func (f *FakeRunner) MergeBase(a, b string) (string, error) {
	if sha, ok := f.MergeBases[a+" "+b]; ok {
		return sha, nil
	}
	return "", fmt.Errorf("no merge base between %s and %s", a, b)
}

// IsAncestor answers from the merge-base map after resolving both refs; a
// commit is always its own ancestor.
func (f *FakeRunner) IsAncestor(ancestor, descendant string) (bool, error) {
	a := f.resolve(ancestor)
	d := f.resolve(descendant)
	if a == d {
		return true, nil
	}
	if base, ok := f.MergeBases[ancestor+" "+descendant]; ok {
		return base == a, nil
	}
	if base, ok := f.MergeBases[a+" "+d]; ok {
		return base == a, nil
	}
	return false, nil
}

func (f *FakeRunner) resolve(ref string) string {
	if ref == "HEAD" {
		return f.Head
	}
	if sha, ok := f.Refs[ref]; ok {
		return sha
	}
	return ref
}

// CountCommits returns a count recorded with SetRange or CommitCounts
func (f *FakeRunner) CountCommits(from, to string) (int, error) {
	if count, ok := f.CommitCounts[from+".."+to]; ok {
		return count, nil
	}
	return 0, fmt.Errorf("unconfigured range %s..%s", from, to)
}

// ListCommits returns a range recorded with SetRange, reversing when asked
func (f *FakeRunner) ListCommits(from, to string, oldestFirst bool) ([]Commit, error) {
	commits, ok := f.CommitRanges[from+".."+to]
	if !ok {
		return nil, fmt.Errorf("unconfigured range %s..%s", from, to)
	}
	if !oldestFirst {
		reversed := make([]Commit, len(commits))
		for i, c := range commits {
			reversed[len(commits)-1-i] = c
		}
		return reversed, nil
	}
	return commits, nil
}

// ListBranches filters created branches and Refs entries by prefix
func (f *FakeRunner) ListBranches(prefix string) ([]string, error) {
	var names []string
	for name := range f.CreatedBranches {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name)
		}
	}
	return names, nil
}

// CreateBranch records the branch and makes it resolvable
func (f *FakeRunner) CreateBranch(name, start string) error {
	sha := start
	if sha == "" {
		sha = f.Head
	}
	if resolved, ok := f.Refs[sha]; ok {
		sha = resolved
	}
	f.CreatedBranches[name] = sha
	f.Refs[name] = sha
	return nil
}

// HardReset records the reset and moves the fake head
func (f *FakeRunner) HardReset(_ context.Context, target string) error {
	f.Resets = append(f.Resets, target)
	if sha, ok := f.Refs[target]; ok {
		f.Head = sha
	} else {
		f.Head = target
	}
	return nil
}

// CherryPick consumes the next scripted outcome; an empty queue applies cleanly
func (f *FakeRunner) CherryPick(_ context.Context, commit string) (PickResult, error) {
	outcome := PickOutcome{Result: PickDone}
	if len(f.PickOutcomes) > 0 {
		outcome = f.PickOutcomes[0]
		f.PickOutcomes = f.PickOutcomes[1:]
	}
	if outcome.Err != nil {
		return PickDone, outcome.Err
	}
	if outcome.Result == PickConflict {
		f.cherryPickActive = true
		f.Conflicts = outcome.Files
		return PickConflict, nil
	}
	f.Picked = append(f.Picked, commit)
	return PickDone, nil
}

// CherryPickContinue consumes the next scripted continue outcome
func (f *FakeRunner) CherryPickContinue(_ context.Context) (PickResult, error) {
	outcome := PickOutcome{Result: PickDone}
	if len(f.ContinueOutcomes) > 0 {
		outcome = f.ContinueOutcomes[0]
		f.ContinueOutcomes = f.ContinueOutcomes[1:]
	}
	if outcome.Err != nil {
		return PickDone, outcome.Err
	}
	if outcome.Result == PickConflict {
		f.Conflicts = outcome.Files
		return PickConflict, nil
	}
	f.cherryPickActive = false
	f.Conflicts = nil
	return PickDone, nil
}

// CherryPickAbort clears the in-flight cherry-pick
func (f *FakeRunner) CherryPickAbort(_ context.Context) error {
	f.PickAborts++
	f.cherryPickActive = false
	f.Conflicts = nil
	return nil
}

// ConflictedFiles returns the currently conflicted paths
func (f *FakeRunner) ConflictedFiles() ([]string, error) { return f.Conflicts, nil }

// IsCherryPickInProgress reports whether a scripted conflict is unresolved
func (f *FakeRunner) IsCherryPickInProgress() bool { return f.cherryPickActive }

// RebaseOnto consumes the next scripted rebase outcome
func (f *FakeRunner) RebaseOnto(_ context.Context, target string) (RebaseResult, error) {
	outcome := RebaseOutcome{Result: RebaseDone}
	if len(f.RebaseOutcomes) > 0 {
		outcome = f.RebaseOutcomes[0]
		f.RebaseOutcomes = f.RebaseOutcomes[1:]
	}
	if outcome.Err != nil {
		return RebaseDone, outcome.Err
	}
	if outcome.Result == RebaseConflict {
		f.rebaseActive = true
		return RebaseConflict, nil
	}
	if sha, ok := f.Refs[target]; ok {
		f.Head = sha
	}
	return RebaseDone, nil
}

// RebaseContinue consumes the next scripted rebase outcome
func (f *FakeRunner) RebaseContinue(_ context.Context) (RebaseResult, error) {
	outcome := RebaseOutcome{Result: RebaseDone}
	if len(f.RebaseOutcomes) > 0 {
		outcome = f.RebaseOutcomes[0]
		f.RebaseOutcomes = f.RebaseOutcomes[1:]
	}
	if outcome.Err != nil {
		return RebaseDone, outcome.Err
	}
	if outcome.Result == RebaseConflict {
		return RebaseConflict, nil
	}
	f.rebaseActive = false
	return RebaseDone, nil
}

// RebaseAbort clears the in-flight rebase
func (f *FakeRunner) RebaseAbort(_ context.Context) error {
	f.RebaseAborts++
	f.rebaseActive = false
	return nil
}

// IsRebaseInProgress reports whether a scripted rebase conflict is unresolved
func (f *FakeRunner) IsRebaseInProgress() bool { return f.rebaseActive }
