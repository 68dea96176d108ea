// Package session persists the state of an in-progress rebase so it can be
// resumed or aborted across process invocations. The existence of a persisted
// session is the sole source of truth for "a rebase is in progress"; exactly
// one session may exist per working copy.
package session

import (
	"fmt"

	"canopy.dev/canopyctl/internal/git"
)

// Session status values
const (
	StatusInProgress = "in_progress"
	StatusConflict   = "conflict"
	StatusComplete   = "complete"
)

// Strategy values for how the patch set is replayed
const (
	StrategyCherryPick = "cherry-pick" // trunk: reset to target, replay patches
	StrategyRebase     = "rebase"      // feature branch: git rebase onto target
)

// Session captures everything needed to resume or abort a rebase after the
// process exits: which backup protects the original state, where the replay
// stands, and what remains to be applied.
type Session struct {
	BackupName   string       `json:"backupName"`
	OriginalHead string       `json:"originalHead"`
	TargetHead   string       `json:"targetHead"`
	TargetRef    string       `json:"targetRef"`
	Strategy     string       `json:"strategy"`
	Patches      []git.Commit `json:"patches"`
	NextPatch    int          `json:"nextPatch"`
	Status       string       `json:"status"`
}

// Validate checks the structural invariants of a loaded session
func (s *Session) Validate() error {
	if s.BackupName == "" {
		return fmt.Errorf("session has no backup name")
	}
	if s.OriginalHead == "" {
		return fmt.Errorf("session has no original head")
	}
	if s.NextPatch < 0 || s.NextPatch > len(s.Patches) {
		return fmt.Errorf("session patch index %d out of range [0, %d]", s.NextPatch, len(s.Patches))
	}
	switch s.Status {
	case StatusInProgress, StatusConflict, StatusComplete:
	default:
		return fmt.Errorf("unknown session status %q", s.Status)
	}
	return nil
}

// Store persists rebase sessions. Implementations must treat Save as an
// atomic overwrite of the single session slot.
type Store interface {
	// Load returns the persisted session, or os.ErrNotExist-compatible
	// error when none exists.
	Load() (*Session, error)
	// Save overwrites the persisted session
	Save(s *Session) error
	// Clear removes the persisted session; clearing an absent session is not an error
	Clear() error
	// Exists reports whether a session is persisted
	Exists() bool
}
