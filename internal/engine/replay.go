package engine

import (
	"context"
	"fmt"

	canopyerrors "canopy.dev/canopyctl/internal/errors"
	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/internal/session"
)

// maxConflictFiles caps how many conflicted paths are listed before
// collapsing the rest into an overflow count.
const maxConflictFiles = 5

// replayPatches cherry-picks every patch from the session's current index
// onward, persisting the session after every attempt. A conflict pauses the
// loop with the session pointing at the conflicting patch; a hard failure
// does the same but surfaces the backend error instead.
func (e *Engine) replayPatches(ctx context.Context, sess *session.Session) error {
	total := len(sess.Patches)
	if total == 0 {
		e.splog.Info("No patches to replay.")
		return e.complete(sess)
	}

	for i := sess.NextPatch; i < total; i++ {
		patch := sess.Patches[i]
		e.splog.Info("[%d/%d] %s %q", i+1, total, patch.ShortSHA, patch.Subject)

		result, err := e.runner.CherryPick(ctx, patch.SHA)
		if err != nil {
			sess.NextPatch = i
			sess.Status = session.StatusInProgress
			if saveErr := e.store.Save(sess); saveErr != nil {
				e.splog.Warn("Could not save rebase state: %v", saveErr)
			}
			// The adapter error already names the failed commit.
			return err
		}

		if result == git.PickConflict {
			sess.NextPatch = i
			sess.Status = session.StatusConflict
			if saveErr := e.store.Save(sess); saveErr != nil {
				e.splog.Warn("Could not save rebase state: %v", saveErr)
			}
			e.reportConflict()
			return fmt.Errorf("patch %s stopped on a %w", patch.ShortSHA, canopyerrors.ErrConflict)
		}

		sess.NextPatch = i + 1
		if err := e.store.Save(sess); err != nil {
			e.splog.Warn("Could not save rebase state: %v", err)
		}
	}

	return e.complete(sess)
}

// runRebase is the feature-branch path: git's own rebase machinery replays
// the patches against the target ref.
func (e *Engine) runRebase(ctx context.Context, sess *session.Session) error {
	e.splog.Info("Rebasing %s onto %s...", shortSHA(sess.OriginalHead), sess.TargetRef)

	result, err := e.runner.RebaseOnto(ctx, sess.TargetRef)
	if err != nil {
		sess.Status = session.StatusInProgress
		if saveErr := e.store.Save(sess); saveErr != nil {
			e.splog.Warn("Could not save rebase state: %v", saveErr)
		}
		return err
	}
	if result == git.RebaseConflict {
		sess.Status = session.StatusConflict
		if saveErr := e.store.Save(sess); saveErr != nil {
			e.splog.Warn("Could not save rebase state: %v", saveErr)
		}
		e.reportConflict()
		return fmt.Errorf("rebase stopped on a %w", canopyerrors.ErrConflict)
	}

	return e.complete(sess)
}

// reportConflict lists the conflicted files (capped) and the commands that
// resume or abort the rebase.
func (e *Engine) reportConflict() {
	files, err := e.runner.ConflictedFiles()
	if err != nil {
		e.splog.Debug("could not list conflicted files: %v", err)
	}

	e.splog.Error("Conflict in %d file(s):", len(files))
	for i, file := range files {
		if i == maxConflictFiles {
			e.splog.Info("   ... and %d more", len(files)-maxConflictFiles)
			break
		}
		e.splog.Info("   - %s", file)
	}

	e.splog.Newline()
	e.splog.Tip("To resolve:")
	e.splog.Info("   1. Edit the conflicted files")
	e.splog.Info("   2. Stage them: git add <file>")
	e.splog.Info("   3. Continue: canopyctl rebase --continue")
	e.splog.Info("   Or abort:    canopyctl rebase --abort")
}

// complete clears the persisted session and prints the summary. The backup
// branch is deliberately kept for manual recovery.
func (e *Engine) complete(sess *session.Session) error {
	if err := e.store.Clear(); err != nil {
		return err
	}

	e.splog.Newline()
	e.splog.Info("Rebase completed successfully!")
	e.splog.Info("   Rebased %d patches", len(sess.Patches))
	e.splog.Info("   New base: %s", shortSHA(sess.TargetHead))
	e.splog.Info("   Backup kept for safety: %s", sess.BackupName)
	e.splog.Newline()
	e.splog.Tip("Push when ready: git push --force-with-lease origin <branch>")
	return nil
}
