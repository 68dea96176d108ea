// Package engine drives the rebase state machine: analyze, back up, replay
// the patch set, and persist progress after every step so a crash loses at
// most the in-flight patch.
package engine

import (
	"canopy.dev/canopyctl/internal/analyzer"
	"canopy.dev/canopyctl/internal/backup"
	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/internal/session"
	"canopy.dev/canopyctl/internal/tui"
)

// ConfirmFunc asks the operator to approve a mutation before it starts
type ConfirmFunc func(prompt string, defaultValue bool) (bool, error)

// Engine orchestrates a rebase against the upstream remote
type Engine struct {
	runner   git.Runner
	store    session.Store
	backups  *backup.Manager
	analyzer *analyzer.Analyzer
	splog    *tui.Splog
	confirm  ConfirmFunc
}

// Options configures a single rebase attempt
type Options struct {
	// Remote overrides the detected upstream remote name
	Remote string
	// Target overrides the detected upstream branch name
	Target string
	// Force skips the confirmation prompt
	Force bool
}

// New creates an Engine. The confirm function may be nil, in which case every
// mutation is approved (used by --force and by tests).
func New(runner git.Runner, store session.Store, splog *tui.Splog, confirm ConfirmFunc) *Engine {
	if confirm == nil {
		confirm = func(string, bool) (bool, error) { return true, nil }
	}
	return &Engine{
		runner:   runner,
		store:    store,
		backups:  backup.NewManager(runner),
		analyzer: analyzer.New(runner, splog),
		splog:    splog,
		confirm:  confirm,
	}
}

// InProgress reports whether a persisted rebase session exists
func (e *Engine) InProgress() bool {
	return e.store.Exists()
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
