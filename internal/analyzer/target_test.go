package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"canopy.dev/canopyctl/internal/git"
)

func TestDetectTargetBranch(t *testing.T) {
	t.Run("prefers an exact name match on the upstream remote", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Branch = "LTS/2025.08"
		runner.Refs["upstream/LTS/2025.08"] = "1111111111111111111111111111111111111111"

		target := newAnalyzer(runner).DetectTargetBranch(runner.Branch, "upstream")
		require.Equal(t, "LTS/2025.08", target)
	})

	t.Run("walks history and picks the nearest fork point", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Branch = "feature/psu-fix"
		runner.RemoteBranches["upstream"] = []string{"upstream/LTS/2025.08", "upstream/main"}

		// Forked off LTS/2025.08: 5 commits away versus 12 from main,
		// with no upstream movement on either since.
		runner.SetMergeBase("HEAD", "upstream/LTS/2025.08", "ltsbase")
		runner.CommitCounts["ltsbase..HEAD"] = 5
		runner.CommitCounts["ltsbase..upstream/LTS/2025.08"] = 0

		runner.SetMergeBase("HEAD", "upstream/main", "mainbase")
		runner.CommitCounts["mainbase..HEAD"] = 12
		runner.CommitCounts["mainbase..upstream/main"] = 0

		target := newAnalyzer(runner).DetectTargetBranch(runner.Branch, "upstream")
		require.Equal(t, "LTS/2025.08", target)
	})

	t.Run("upstream activity nudges the score but distance dominates", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Branch = "feature/psu-fix"
		runner.RemoteBranches["upstream"] = []string{"upstream/busy", "upstream/quiet"}

		// Equal distance; the branch that kept moving upstream wins.
		runner.SetMergeBase("HEAD", "upstream/busy", "busybase")
		runner.CommitCounts["busybase..HEAD"] = 7
		runner.CommitCounts["busybase..upstream/busy"] = 40

		runner.SetMergeBase("HEAD", "upstream/quiet", "quietbase")
		runner.CommitCounts["quietbase..HEAD"] = 7
		runner.CommitCounts["quietbase..upstream/quiet"] = 2

		target := newAnalyzer(runner).DetectTargetBranch(runner.Branch, "upstream")
		require.Equal(t, "busy", target)
	})

	t.Run("skips branches without a merge base", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Branch = "feature/psu-fix"
		runner.RemoteBranches["upstream"] = []string{"upstream/orphan", "upstream/main"}

		runner.SetMergeBase("HEAD", "upstream/main", "mainbase")
		runner.CommitCounts["mainbase..HEAD"] = 3
		runner.CommitCounts["mainbase..upstream/main"] = 0

		target := newAnalyzer(runner).DetectTargetBranch(runner.Branch, "upstream")
		require.Equal(t, "main", target)
	})

	t.Run("falls back to main when the walk finds nothing", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Branch = "feature/psu-fix"
		runner.Refs["upstream/main"] = "2222222222222222222222222222222222222222"

		target := newAnalyzer(runner).DetectTargetBranch(runner.Branch, "upstream")
		require.Equal(t, "main", target)
	})

	t.Run("falls back to master when upstream has no main", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Branch = "feature/psu-fix"
		runner.Refs["upstream/master"] = "3333333333333333333333333333333333333333"

		target := newAnalyzer(runner).DetectTargetBranch(runner.Branch, "upstream")
		require.Equal(t, "master", target)
	})

	t.Run("guesses main when nothing resolves at all", func(t *testing.T) {
		runner := git.NewFakeRunner()
		target := newAnalyzer(runner).DetectTargetBranch("feature/psu-fix", "upstream")
		require.Equal(t, "main", target)
	})

	t.Run("guesses main without an upstream remote", func(t *testing.T) {
		runner := git.NewFakeRunner()
		target := newAnalyzer(runner).DetectTargetBranch("feature/psu-fix", "")
		require.Equal(t, "main", target)
	})
}
