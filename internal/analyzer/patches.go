package analyzer

import (
	"canopy.dev/canopyctl/internal/git"
)

// FindPatches returns the fork's local commits in base..head, oldest first,
// which is the order cherry-picks must be applied in. Each commit's full SHA
// is re-resolved from its short id to guard against abbreviation ambiguity;
// a commit that no longer resolves is dropped with a warning rather than
// failing the whole rebase.
func (a *Analyzer) FindPatches(base, head string) ([]git.Commit, error) {
	if base == "" || base == head {
		return nil, nil
	}

	commits, err := a.runner.ListCommits(base, head, true)
	if err != nil {
		return nil, err
	}

	patches := make([]git.Commit, 0, len(commits))
	for _, commit := range commits {
		full, err := a.runner.ResolveRef(commit.ShortSHA)
		if err != nil {
			a.splog.Warn("Skipping commit %s (%s): no longer resolves", commit.ShortSHA, commit.Subject)
			continue
		}
		commit.SHA = full
		patches = append(patches, commit)
	}
	return patches, nil
}
