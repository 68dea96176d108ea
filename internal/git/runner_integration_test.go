package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/testhelpers"
)

func TestExecRunnerAgainstRealRepo(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	first := repo.CommitFile(t, "README.md", "canopy\n", "initial commit")
	second := repo.CommitFile(t, "meta-canopy/recipe.bb", "SUMMARY = \"x\"\n", "add recipe")

	runner := git.NewRunner(repo.Dir)

	t.Run("resolves refs to full SHAs", func(t *testing.T) {
		sha, err := runner.ResolveRef("main")
		require.NoError(t, err)
		require.Equal(t, second, sha)

		sha, err = runner.ResolveRef(second[:7])
		require.NoError(t, err)
		require.Equal(t, second, sha)

		_, err = runner.ResolveRef("no-such-ref")
		require.Error(t, err)
	})

	t.Run("reports branch, head, and cleanliness", func(t *testing.T) {
		branch, err := runner.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		head, err := runner.CurrentCommit()
		require.NoError(t, err)
		require.Equal(t, second, head)

		clean, err := runner.IsClean()
		require.NoError(t, err)
		require.True(t, clean)
	})

	t.Run("lists commits oldest first", func(t *testing.T) {
		commits, err := runner.ListCommits(first, second, true)
		require.NoError(t, err)
		require.Len(t, commits, 1)
		require.Equal(t, second, commits[0].SHA)
		require.Equal(t, "add recipe", commits[0].Subject)

		count, err := runner.CountCommits(first, second)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("computes merge bases via go-git", func(t *testing.T) {
		repo.CreateAndCheckoutBranch(t, "feature/side")
		repo.CommitFile(t, "side.txt", "side\n", "side work")
		repo.CheckoutBranch(t, "main")

		base, err := runner.MergeBase("main", "feature/side")
		require.NoError(t, err)
		require.Equal(t, second, base)
	})

	t.Run("answers ancestry queries", func(t *testing.T) {
		ok, err := runner.IsAncestor(first, second)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = runner.IsAncestor(second, first)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = runner.IsAncestor(first, "HEAD")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("creates branches without switching", func(t *testing.T) {
		require.NoError(t, runner.CreateBranch("canopy-backup-1700000000", second))

		branches, err := runner.ListBranches("canopy-backup-")
		require.NoError(t, err)
		require.Equal(t, []string{"canopy-backup-1700000000"}, branches)

		branch, err := runner.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})
}

func TestCherryPickRoundTrip(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	repo.CommitFile(t, "base.txt", "base\n", "initial commit")

	repo.CreateAndCheckoutBranch(t, "patches")
	patch := repo.CommitFile(t, "patch.txt", "patch\n", "a clean patch")
	repo.CheckoutBranch(t, "main")

	runner := git.NewRunner(repo.Dir)

	result, err := runner.CherryPick(context.Background(), patch)
	require.NoError(t, err)
	require.Equal(t, git.PickDone, result)
	require.False(t, runner.IsCherryPickInProgress())

	subject := repo.Git(t, "log", "-1", "--format=%s")
	require.Equal(t, "a clean patch", subject)
}

func TestCherryPickConflictDetection(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	repo.CommitFile(t, "file.txt", "original\n", "initial commit")

	repo.CreateAndCheckoutBranch(t, "patches")
	patch := repo.CommitFile(t, "file.txt", "patched\n", "conflicting patch")
	repo.CheckoutBranch(t, "main")
	repo.CommitFile(t, "file.txt", "diverged\n", "diverging change")

	runner := git.NewRunner(repo.Dir)

	result, err := runner.CherryPick(context.Background(), patch)
	require.NoError(t, err)
	require.Equal(t, git.PickConflict, result)
	require.True(t, runner.IsCherryPickInProgress())

	files, err := runner.ConflictedFiles()
	require.NoError(t, err)
	require.Equal(t, []string{"file.txt"}, files)

	require.NoError(t, runner.CherryPickAbort(context.Background()))
	require.False(t, runner.IsCherryPickInProgress())

	clean, err := runner.IsClean()
	require.NoError(t, err)
	require.True(t, clean)
}
