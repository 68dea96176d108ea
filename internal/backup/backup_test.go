package backup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"canopy.dev/canopyctl/internal/backup"
	canopyerrors "canopy.dev/canopyctl/internal/errors"
	"canopy.dev/canopyctl/internal/git"
)

const headSHA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 123456789) }
}

func TestCreate(t *testing.T) {
	t.Run("names the backup after the current second", func(t *testing.T) {
		runner := git.NewFakeRunner()
		mgr := backup.NewManagerWithClock(runner, fixedClock(1700000000))

		name, err := mgr.Create(headSHA)
		require.NoError(t, err)
		require.Equal(t, "canopy-backup-1700000000", name)
		require.Equal(t, headSHA, runner.CreatedBranches[name])
	})

	t.Run("falls back to nanoseconds on a same-second collision", func(t *testing.T) {
		runner := git.NewFakeRunner()
		mgr := backup.NewManagerWithClock(runner, fixedClock(1700000000))

		first, err := mgr.Create(headSHA)
		require.NoError(t, err)

		second, err := mgr.Create(headSHA)
		require.NoError(t, err)
		require.NotEqual(t, first, second)
		require.Equal(t, "canopy-backup-1700000000123456789", second)
	})
}

func TestRestore(t *testing.T) {
	t.Run("hard-resets to a verified backup", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Refs["canopy-backup-1700000000"] = headSHA
		mgr := backup.NewManager(runner)

		err := mgr.Restore(context.Background(), "canopy-backup-1700000000", headSHA)
		require.NoError(t, err)
		require.Equal(t, []string{"canopy-backup-1700000000"}, runner.Resets)
	})

	t.Run("refuses a tampered backup without resetting", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.Refs["canopy-backup-1700000000"] = "cccccccccccccccccccccccccccccccccccccccc"
		mgr := backup.NewManager(runner)

		err := mgr.Restore(context.Background(), "canopy-backup-1700000000", headSHA)
		require.ErrorIs(t, err, canopyerrors.ErrBackupMismatch)
		require.Empty(t, runner.Resets)
	})

	t.Run("fails when the backup is gone", func(t *testing.T) {
		runner := git.NewFakeRunner()
		mgr := backup.NewManager(runner)

		err := mgr.Restore(context.Background(), "canopy-backup-1700000000", headSHA)
		require.Error(t, err)
		require.Empty(t, runner.Resets)
	})
}

func TestList(t *testing.T) {
	t.Run("lists backups newest first", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.CreatedBranches["canopy-backup-1700000000"] = headSHA
		runner.CreatedBranches["canopy-backup-1700000100"] = headSHA
		mgr := backup.NewManager(runner)

		backups, err := mgr.List()
		require.NoError(t, err)
		require.Len(t, backups, 2)
		require.Equal(t, "canopy-backup-1700000100", backups[0].Name)
		require.Equal(t, "canopy-backup-1700000000", backups[1].Name)
	})

	t.Run("skips malformed names", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.CreatedBranches["canopy-backup-1700000000"] = headSHA
		runner.CreatedBranches["canopy-backup-not-a-timestamp"] = headSHA
		runner.CreatedBranches["canopy-backup-"] = headSHA
		mgr := backup.NewManager(runner)

		backups, err := mgr.List()
		require.NoError(t, err)
		require.Len(t, backups, 1)
		require.Equal(t, "canopy-backup-1700000000", backups[0].Name)
	})

	t.Run("parses nanosecond fallback names", func(t *testing.T) {
		runner := git.NewFakeRunner()
		runner.CreatedBranches["canopy-backup-1700000000123456789"] = headSHA
		mgr := backup.NewManager(runner)

		backups, err := mgr.List()
		require.NoError(t, err)
		require.Len(t, backups, 1)
		require.Equal(t, time.Unix(1700000000, 123456789), backups[0].CreatedAt)
	})
}
