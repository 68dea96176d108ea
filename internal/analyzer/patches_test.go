package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"canopy.dev/canopyctl/internal/analyzer"
	"canopy.dev/canopyctl/internal/git"
)

func TestFindPatches(t *testing.T) {
	t.Run("returns patches oldest first with full SHAs", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.SetRange("base", "head", []git.Commit{
			{ShortSHA: "1111111", Subject: "first patch"},
			{ShortSHA: "2222222", Subject: "second patch"},
		})
		runner.Refs["1111111"] = "1111111111111111111111111111111111111111"
		runner.Refs["2222222"] = "2222222222222222222222222222222222222222"

		patches, err := newAnalyzer(runner).FindPatches("base", "head")
		require.NoError(t, err)
		require.Len(t, patches, 2)
		require.Equal(t, "first patch", patches[0].Subject)
		require.Equal(t, "1111111111111111111111111111111111111111", patches[0].SHA)
		require.Equal(t, "second patch", patches[1].Subject)
	})

	t.Run("drops commits that no longer resolve", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.SetRange("base", "head", []git.Commit{
			{ShortSHA: "1111111", Subject: "kept"},
			{ShortSHA: "dead000", Subject: "vanished"},
		})
		runner.Refs["1111111"] = "1111111111111111111111111111111111111111"

		patches, err := newAnalyzer(runner).FindPatches("base", "head")
		require.NoError(t, err)
		require.Len(t, patches, 1)
		require.Equal(t, "kept", patches[0].Subject)
	})

	t.Run("no base means no patches", func(t *testing.T) {
		runner := git.NewFakeRunner()
		patches, err := newAnalyzer(runner).FindPatches("", "head")
		require.NoError(t, err)
		require.Nil(t, patches)
	})

	t.Run("base at head means no patches", func(t *testing.T) {
		runner := git.NewFakeRunner()
		patches, err := newAnalyzer(runner).FindPatches("same", "same")
		require.NoError(t, err)
		require.Nil(t, patches)
	})
}

func TestAnalyzeUpstream(t *testing.T) {
	t.Run("fetches and counts new upstream commits", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Refs["upstream/main"] = "newheadnewheadnewheadnewheadnewheadnewh1"
		runner.CommitCounts["oldbase..newheadnewheadnewheadnewheadnewheadnewh1"] = 4

		state := &analyzer.RepoState{UpstreamRemote: "upstream", UpstreamBase: "oldbase"}
		info, err := newAnalyzer(runner).AnalyzeUpstream(context.Background(), state, "main")
		require.NoError(t, err)
		require.Equal(t, []string{"upstream"}, runner.Fetched)
		require.Equal(t, "upstream/main", info.Branch)
		require.Equal(t, "newheadnewheadnewheadnewheadnewheadnewh1", info.NewHead)
		require.Equal(t, 4, info.NewCommits)
	})

	t.Run("keeps a remote-qualified target as given", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Refs["obmc/master"] = "newheadnewheadnewheadnewheadnewheadnewh1"

		state := &analyzer.RepoState{UpstreamRemote: "obmc", UpstreamBase: ""}
		info, err := newAnalyzer(runner).AnalyzeUpstream(context.Background(), state, "obmc/master")
		require.NoError(t, err)
		require.Equal(t, "obmc/master", info.Branch)
		require.Zero(t, info.NewCommits)
	})

	t.Run("fails when the target branch does not exist", func(t *testing.T) {
		runner := git.NewFakeRunner()
		state := &analyzer.RepoState{UpstreamRemote: "upstream"}

		_, err := newAnalyzer(runner).AnalyzeUpstream(context.Background(), state, "nope")
		require.Error(t, err)
		require.Contains(t, err.Error(), "upstream/nope")
	})
}
