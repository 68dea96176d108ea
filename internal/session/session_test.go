package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/internal/session"
)

func sampleSession() *session.Session {
	return &session.Session{
		BackupName:   "canopy-backup-1700000000",
		OriginalHead: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		TargetHead:   "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		TargetRef:    "upstream/main",
		Strategy:     session.StrategyCherryPick,
		Patches: []git.Commit{
			{SHA: "1111111111111111111111111111111111111111", ShortSHA: "1111111", Subject: "first patch"},
			{SHA: "2222222222222222222222222222222222222222", ShortSHA: "2222222", Subject: "second patch"},
		},
		NextPatch: 1,
		Status:    session.StatusConflict,
	}
}

func newFileStore(t *testing.T) *session.FileStore {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0750))
	return session.NewFileStore(root)
}

func TestFileStore(t *testing.T) {
	t.Run("round-trips a session", func(t *testing.T) {
		store := newFileStore(t)
		original := sampleSession()

		require.NoError(t, store.Save(original))
		require.True(t, store.Exists())

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, original, loaded)
	})

	t.Run("load fails when no session exists", func(t *testing.T) {
		store := newFileStore(t)
		require.False(t, store.Exists())

		_, err := store.Load()
		require.Error(t, err)
	})

	t.Run("clear removes the session", func(t *testing.T) {
		store := newFileStore(t)
		require.NoError(t, store.Save(sampleSession()))

		require.NoError(t, store.Clear())
		require.False(t, store.Exists())
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := newFileStore(t)
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})

	t.Run("load rejects a corrupt session", func(t *testing.T) {
		store := newFileStore(t)
		corrupt := sampleSession()
		corrupt.NextPatch = 5 // beyond the patch list

		require.NoError(t, store.Save(corrupt))
		_, err := store.Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "out of range")
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("round-trips a session", func(t *testing.T) {
		store := session.NewMemoryStore()
		original := sampleSession()

		require.NoError(t, store.Save(original))
		loaded, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, original, loaded)
	})

	t.Run("save stores a copy", func(t *testing.T) {
		store := session.NewMemoryStore()
		original := sampleSession()
		require.NoError(t, store.Save(original))

		original.NextPatch = 2
		loaded, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, 1, loaded.NextPatch)
	})
}

func TestSessionValidate(t *testing.T) {
	t.Run("accepts a well-formed session", func(t *testing.T) {
		require.NoError(t, sampleSession().Validate())
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		s := sampleSession()
		s.Status = "paused"
		require.Error(t, s.Validate())
	})

	t.Run("rejects a negative patch index", func(t *testing.T) {
		s := sampleSession()
		s.NextPatch = -1
		require.Error(t, s.Validate())
	})

	t.Run("rejects a missing backup name", func(t *testing.T) {
		s := sampleSession()
		s.BackupName = ""
		require.Error(t, s.Validate())
	})
}
