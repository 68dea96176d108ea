package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RebaseOnto rebases the current branch onto target. Used on feature
// branches where git's own rebase machinery replays the local patches.
func (r *ExecRunner) RebaseOnto(ctx context.Context, target string) (RebaseResult, error) {
	_, err := r.runner.Run(ctx, "rebase", target)
	if err == nil {
		return RebaseDone, nil
	}

	if r.IsRebaseInProgress() {
		return RebaseConflict, nil
	}
	return RebaseDone, fmt.Errorf("rebase onto %s failed: %w", target, err)
}

// RebaseContinue continues an in-progress rebase
func (r *ExecRunner) RebaseContinue(ctx context.Context) (RebaseResult, error) {
	_, err := r.runner.Run(ctx, "-c", "core.editor=true", "rebase", "--continue")
	if err == nil {
		return RebaseDone, nil
	}

	if r.IsRebaseInProgress() {
		return RebaseConflict, nil
	}
	return RebaseDone, fmt.Errorf("rebase continue failed: %w", err)
}

// RebaseAbort aborts an in-progress rebase
func (r *ExecRunner) RebaseAbort(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress by looking
// for the rebase-merge or rebase-apply directories. This is more reliable
// than REBASE_HEAD, which can persist after a rebase finishes.
func (r *ExecRunner) IsRebaseInProgress() bool {
	gitDir, err := r.runner.Run(context.Background(), "rev-parse", "--absolute-git-dir")
	if err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-merge")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-apply")); err == nil {
		return true
	}
	return false
}
