package engine

import (
	"context"
	"fmt"

	canopyerrors "canopy.dev/canopyctl/internal/errors"
	"canopy.dev/canopyctl/internal/session"
)

// Execute performs a fresh rebase attempt. Pre-flight validation happens
// before any mutation: a dirty tree, a missing upstream remote, or an
// existing session all fail fast without creating a backup or touching HEAD.
func (e *Engine) Execute(ctx context.Context, opts Options) error {
	if e.store.Exists() {
		return canopyerrors.NewPreconditionError(canopyerrors.ErrRebaseInProgress,
			"Finish it first:\n"+
				"  canopyctl rebase --continue\n"+
				"  canopyctl rebase --abort")
	}

	e.splog.Info("Analyzing repository state...")
	state, err := e.analyzer.AnalyzeCurrentState()
	if err != nil {
		return err
	}
	if opts.Remote != "" {
		// The detected base belongs to the detected remote; an overridden
		// remote needs its own merge-base before validation.
		state.UpstreamRemote = opts.Remote
		state.UpstreamBase = e.analyzer.FindUpstreamBase(opts.Remote)
	}

	if !state.Clean {
		return canopyerrors.NewPreconditionError(canopyerrors.ErrDirtyWorkingTree,
			"Commit or stash your changes first:\n"+
				"  git add . && git commit -m \"Work in progress\"\n"+
				"  # or: git stash push -m \"Before rebase\"")
	}
	if state.UpstreamRemote == "" {
		return canopyerrors.NewPreconditionError(canopyerrors.ErrNoUpstreamRemote,
			"Add the upstream remote first:\n"+
				"  git remote add upstream https://github.com/openbmc/openbmc.git\n"+
				"  git fetch upstream")
	}
	if state.UpstreamBase == "" {
		return canopyerrors.NewPreconditionError(canopyerrors.ErrNoUpstreamBase,
			"Make sure your branch history shares a commit with upstream.")
	}

	target := opts.Target
	if target == "" {
		target = e.analyzer.DetectTargetBranch(state.Branch, state.UpstreamRemote)
		e.splog.Info("Auto-detected target branch: %s", target)
	}

	info, err := e.analyzer.AnalyzeUpstream(ctx, state, target)
	if err != nil {
		return err
	}

	patches, err := e.analyzer.FindPatches(state.UpstreamBase, state.Head)
	if err != nil {
		return err
	}

	e.splog.Info("Found %d local patches on top of %s", len(patches), shortSHA(state.UpstreamBase))
	e.splog.Info("Upstream %s has %d new commits", info.Branch, info.NewCommits)

	if len(patches) == 0 {
		e.splog.Info("No local patches to rebase - you're up to date!")
		return nil
	}
	if info.NewCommits == 0 {
		e.splog.Info("Already up to date with upstream.")
		return nil
	}

	strategy := session.StrategyRebase
	if state.Branch == "main" || state.Branch == "master" {
		strategy = session.StrategyCherryPick
	}

	if !opts.Force {
		prompt := fmt.Sprintf("Rebase %d patches onto %s (%d new upstream commits)?",
			len(patches), info.Branch, info.NewCommits)
		confirmed, err := e.confirm(prompt, true)
		if err != nil {
			return err
		}
		if !confirmed {
			return canopyerrors.ErrAborted
		}
	}

	e.splog.Info("Creating safety backup...")
	backupName, err := e.backups.Create(state.Head)
	if err != nil {
		return err
	}
	e.splog.Info("Backup branch created: %s", backupName)

	sess := &session.Session{
		BackupName:   backupName,
		OriginalHead: state.Head,
		TargetHead:   info.NewHead,
		TargetRef:    info.Branch,
		Strategy:     strategy,
		Patches:      patches,
		NextPatch:    0,
		Status:       session.StatusInProgress,
	}
	if err := e.store.Save(sess); err != nil {
		return err
	}

	if strategy == session.StrategyRebase {
		return e.runRebase(ctx, sess)
	}

	e.splog.Info("Resetting to upstream: %s", shortSHA(info.NewHead))
	if err := e.runner.HardReset(ctx, info.NewHead); err != nil {
		return err
	}
	return e.replayPatches(ctx, sess)
}
