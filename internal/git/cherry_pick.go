package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// CherryPick applies a single commit onto the current HEAD. A merge conflict
// is an expected outcome reported as PickConflict with a nil error; only a
// non-conflict failure returns an error.
func (r *ExecRunner) CherryPick(ctx context.Context, commit string) (PickResult, error) {
	_, err := r.runner.Run(ctx, "cherry-pick", commit)
	if err == nil {
		return PickDone, nil
	}

	// A conflict leaves CHERRY_PICK_HEAD behind; anything else is a hard
	// failure surfaced to the caller.
	if r.IsCherryPickInProgress() {
		return PickConflict, nil
	}
	return PickDone, fmt.Errorf("cherry-pick of %s failed: %w", commit, err)
}

// CherryPickContinue resumes a cherry-pick after the operator staged the
// resolved files. The commit message from the original commit is kept as-is.
func (r *ExecRunner) CherryPickContinue(ctx context.Context) (PickResult, error) {
	_, err := r.runner.Run(ctx, "-c", "core.editor=true", "cherry-pick", "--continue")
	if err == nil {
		return PickDone, nil
	}

	if r.IsCherryPickInProgress() {
		return PickConflict, nil
	}
	return PickDone, fmt.Errorf("cherry-pick continue failed: %w", err)
}

// CherryPickAbort aborts an in-progress cherry-pick
func (r *ExecRunner) CherryPickAbort(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "cherry-pick", "--abort")
	if err != nil {
		return fmt.Errorf("cherry-pick abort failed: %w", err)
	}
	return nil
}

// ConflictedFiles returns the paths that currently carry merge conflicts
func (r *ExecRunner) ConflictedFiles() ([]string, error) {
	lines, err := r.runner.RunLines(context.Background(), "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// IsCherryPickInProgress reports whether a cherry-pick is mid-flight
func (r *ExecRunner) IsCherryPickInProgress() bool {
	gitDir, err := r.runner.Run(context.Background(), "rev-parse", "--absolute-git-dir")
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(gitDir, "CHERRY_PICK_HEAD"))
	return err == nil
}
