package engine

import (
	"context"
	"fmt"
	"strings"

	canopyerrors "canopy.dev/canopyctl/internal/errors"
	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/internal/session"
)

// Continue resumes a rebase after the operator resolved conflicts and staged
// the files. The engine verifies no conflicted files remain before asking
// the backend to continue.
func (e *Engine) Continue(ctx context.Context) error {
	sess, err := e.store.Load()
	if err != nil {
		return canopyerrors.NewPreconditionError(canopyerrors.ErrNoRebaseInProgress,
			"Start one with: canopyctl rebase")
	}

	if sess.Strategy == session.StrategyRebase {
		return e.continueRebase(ctx, sess)
	}
	return e.continueCherryPick(ctx, sess)
}

func (e *Engine) continueCherryPick(ctx context.Context, sess *session.Session) error {
	if e.runner.IsCherryPickInProgress() {
		if err := e.requireNoConflicts(); err != nil {
			return err
		}

		result, err := e.runner.CherryPickContinue(ctx)
		if err != nil {
			return err
		}
		if result == git.PickConflict {
			sess.Status = session.StatusConflict
			if saveErr := e.store.Save(sess); saveErr != nil {
				e.splog.Warn("Could not save rebase state: %v", saveErr)
			}
			e.reportConflict()
			return fmt.Errorf("patch still stopped on a %w", canopyerrors.ErrConflict)
		}

		e.splog.Info("Conflict resolved, continuing...")
		sess.NextPatch++
		sess.Status = session.StatusInProgress
		if err := e.store.Save(sess); err != nil {
			e.splog.Warn("Could not save rebase state: %v", err)
		}
	}

	return e.replayPatches(ctx, sess)
}

func (e *Engine) continueRebase(ctx context.Context, sess *session.Session) error {
	if e.runner.IsRebaseInProgress() {
		if err := e.requireNoConflicts(); err != nil {
			return err
		}

		result, err := e.runner.RebaseContinue(ctx)
		if err != nil {
			return err
		}
		if result == git.RebaseConflict {
			sess.Status = session.StatusConflict
			if saveErr := e.store.Save(sess); saveErr != nil {
				e.splog.Warn("Could not save rebase state: %v", saveErr)
			}
			e.reportConflict()
			return fmt.Errorf("rebase still stopped on a %w", canopyerrors.ErrConflict)
		}

		return e.complete(sess)
	}

	// No rebase in flight. Either it finished out-of-band or it never ran:
	// a hard failure on start, or the operator ran git rebase --abort by
	// hand. Complete only when HEAD actually contains the target.
	rebased, err := e.runner.IsAncestor(sess.TargetHead, "HEAD")
	if err != nil {
		return err
	}
	if !rebased {
		e.splog.Info("No rebase in flight, restarting...")
		sess.Status = session.StatusInProgress
		if saveErr := e.store.Save(sess); saveErr != nil {
			e.splog.Warn("Could not save rebase state: %v", saveErr)
		}
		return e.runRebase(ctx, sess)
	}

	return e.complete(sess)
}

// requireNoConflicts fails when unresolved conflict markers remain, listing
// the files and the staging instructions. No state changes.
func (e *Engine) requireNoConflicts() error {
	files, err := e.runner.ConflictedFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	e.splog.Error("Conflicts still exist in:")
	for _, file := range files {
		e.splog.Info("   - %s", file)
	}
	e.splog.Tip("Resolve them, stage with 'git add <file>', then rerun: canopyctl rebase --continue")
	return fmt.Errorf("%d file(s) still conflicted: %s", len(files), strings.Join(files, ", "))
}

// Abort rolls back an in-progress rebase: any mid-flight backend operation is
// aborted best-effort, the backup is verified and restored, and the session
// is deleted. Abort with no session reports and mutates nothing.
func (e *Engine) Abort(ctx context.Context) error {
	sess, err := e.store.Load()
	if err != nil {
		return canopyerrors.NewPreconditionError(canopyerrors.ErrNoRebaseInProgress, "")
	}

	e.splog.Info("Aborting rebase...")

	// Best-effort: clear whatever the backend has in flight so the reset
	// below starts from a quiet working tree.
	if e.runner.IsCherryPickInProgress() {
		if err := e.runner.CherryPickAbort(ctx); err != nil {
			e.splog.Debug("cherry-pick abort: %v", err)
		}
	}
	if e.runner.IsRebaseInProgress() {
		if err := e.runner.RebaseAbort(ctx); err != nil {
			e.splog.Debug("rebase abort: %v", err)
		}
	}

	// A backup mismatch is fatal and leaves the session in place so the
	// operator can recover manually.
	if err := e.backups.Restore(ctx, sess.BackupName, sess.OriginalHead); err != nil {
		return err
	}

	if err := e.store.Clear(); err != nil {
		return err
	}

	e.splog.Info("Rebase aborted successfully.")
	e.splog.Info("   Restored to original state: %s", shortSHA(sess.OriginalHead))
	return nil
}
