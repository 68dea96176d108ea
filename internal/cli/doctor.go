package cli

import (
	"os"

	"github.com/spf13/cobra"

	"canopy.dev/canopyctl/internal/analyzer"
	"canopy.dev/canopyctl/internal/github"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the repository is set up for rebasing",
		Long: `Check that the repository is set up for rebasing: working tree state,
upstream and fork remotes, and (when a GitHub token is available) whether
the upstream repository's default branch matches the detected target.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRuntimeContext()
			if err != nil {
				return err
			}
			defer func() { _ = rc.Splog.Close() }()

			splog := rc.Splog
			an := analyzer.New(rc.Runner, splog)
			state, err := an.AnalyzeCurrentState()
			if err != nil {
				return err
			}

			splog.Info("Repository: %s", state.Root)
			splog.Info("Branch:     %s @ %s", state.Branch, state.Head[:min(8, len(state.Head))])

			if state.Clean {
				splog.Info("Working tree is clean")
			} else {
				splog.Warn("Working tree has uncommitted changes; rebase will refuse to start")
			}

			if state.UpstreamRemote == "" {
				splog.Warn("No upstream remote found")
				splog.Tip("git remote add upstream https://github.com/openbmc/openbmc.git")
			} else {
				splog.Info("Upstream remote: %s", state.UpstreamRemote)
			}

			if state.ForkRemote == "" {
				splog.Warn("No fork remote found (expected a canopybmc/openbmc URL)")
			} else {
				splog.Info("Fork remote:     %s", state.ForkRemote)
			}

			if state.UpstreamRemote != "" {
				detected := an.DetectTargetBranch(state.Branch, state.UpstreamRemote)
				splog.Info("Detected target branch: %s", detected)
				checkUpstreamOnGitHub(cmd, rc, detected, state.UpstreamRemote)
			}

			return nil
		},
	}
}

// checkUpstreamOnGitHub cross-checks the detected target against the
// upstream repository's default branch via the GitHub API. Failures here are
// advisory only; the rebase never depends on the network beyond git fetch.
func checkUpstreamOnGitHub(cmd *cobra.Command, rc *runtimeContext, detected, upstreamRemote string) {
	ctx := cmd.Context()
	splog := rc.Splog

	url, err := rc.Runner.RemoteURL(upstreamRemote)
	if err != nil {
		return
	}
	owner, name, err := github.ParseRemoteURL(url)
	if err != nil {
		splog.Debug("cannot parse upstream URL: %v", err)
		return
	}

	token := github.GetToken(ctx, os.Getenv)
	repo, err := github.NewClient(ctx, token).GetRepo(ctx, owner, name)
	if err != nil {
		splog.Debug("GitHub lookup skipped: %v", err)
		return
	}

	if repo.Archived {
		splog.Warn("Upstream %s/%s is archived on GitHub", owner, name)
	}
	if repo.DefaultBranch != detected {
		splog.Info("GitHub default branch for %s/%s is %q (detected target: %q)", owner, name, repo.DefaultBranch, detected)
	} else {
		splog.Info("Detected target matches the GitHub default branch")
	}
}
