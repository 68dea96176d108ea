// Package backup manages the disposable branch snapshots that make every
// rebase recoverable. A backup is a branch ref pinned to the pre-rebase head;
// backups are never deleted automatically.
package backup

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	canopyerrors "canopy.dev/canopyctl/internal/errors"
	"canopy.dev/canopyctl/internal/git"
)

// NamePrefix is the branch-name prefix identifying canopyctl backups
const NamePrefix = "canopy-backup-"

// Backup describes one safety snapshot
type Backup struct {
	Name      string
	CreatedAt time.Time
}

// Manager creates, verifies, and lists backup branches
type Manager struct {
	runner git.Runner
	now    func() time.Time
}

// NewManager creates a backup manager backed by the given runner
func NewManager(runner git.Runner) *Manager {
	return &Manager{runner: runner, now: time.Now}
}

// NewManagerWithClock creates a manager with an injected clock, for tests
func NewManagerWithClock(runner git.Runner, now func() time.Time) *Manager {
	return &Manager{runner: runner, now: now}
}

// Create snapshots commitID under a timestamped branch name and returns the
// name. When a branch for the current second already exists (two backups in
// the same second), the name falls back to nanosecond resolution.
func (m *Manager) Create(commitID string) (string, error) {
	now := m.now()
	name := NamePrefix + strconv.FormatInt(now.Unix(), 10)
	if _, err := m.runner.ResolveRef(name); err == nil {
		name = NamePrefix + strconv.FormatInt(now.UnixNano(), 10)
	}

	if err := m.runner.CreateBranch(name, commitID); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return name, nil
}

// Restore hard-resets the current branch to the named backup after verifying
// the backup still points at expectedCommit. A mismatch means the backup ref
// was moved or reused since the session began and is fatal: restoring it
// would not recover the recorded state.
func (m *Manager) Restore(ctx context.Context, name, expectedCommit string) error {
	actual, err := m.runner.ResolveRef(name)
	if err != nil {
		return fmt.Errorf("backup %s not found: %w", name, err)
	}
	if actual != expectedCommit {
		return canopyerrors.NewBackupMismatchError(name, expectedCommit, actual)
	}

	if err := m.runner.HardReset(ctx, name); err != nil {
		return fmt.Errorf("failed to restore backup %s: %w", name, err)
	}
	return nil
}

// List enumerates backup branches, newest first. Branch names whose suffix
// does not parse as a timestamp are skipped, not errors.
func (m *Manager) List() ([]Backup, error) {
	names, err := m.runner.ListBranches(NamePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := make([]Backup, 0, len(names))
	for _, name := range names {
		createdAt, ok := parseBackupName(name)
		if !ok {
			continue
		}
		backups = append(backups, Backup{Name: name, CreatedAt: createdAt})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// parseBackupName extracts the creation time from a backup branch name.
// Values past 1e12 are nanosecond timestamps from the collision fallback.
func parseBackupName(name string) (time.Time, bool) {
	suffix := strings.TrimPrefix(name, NamePrefix)
	if suffix == name || suffix == "" {
		return time.Time{}, false
	}
	value, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || value <= 0 {
		return time.Time{}, false
	}
	if value > 1e12 {
		return time.Unix(0, value), true
	}
	return time.Unix(value, 0), true
}
