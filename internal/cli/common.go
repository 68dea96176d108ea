package cli

import (
	"fmt"

	"canopy.dev/canopyctl/internal/engine"
	"canopy.dev/canopyctl/internal/git"
	"canopy.dev/canopyctl/internal/session"
	"canopy.dev/canopyctl/internal/tui"
)

// quiet is bound to the root command's persistent --quiet flag
var quiet bool

// runtimeContext bundles the pieces every command needs
type runtimeContext struct {
	Runner *git.ExecRunner
	Store  session.Store
	Splog  *tui.Splog
	Engine *engine.Engine
}

// newRuntimeContext discovers the enclosing repository and wires up the
// engine with the real backend, the on-disk session store, and the survey
// confirmation prompt.
func newRuntimeContext() (*runtimeContext, error) {
	runner, err := git.OpenRunner(".")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	splog := tui.NewSplogForRepo(runner.RepoRoot())
	splog.SetQuiet(quiet)
	store := session.NewFileStore(runner.RepoRoot())
	eng := engine.New(runner, store, splog, tui.PromptConfirm)

	return &runtimeContext{
		Runner: runner,
		Store:  store,
		Splog:  splog,
		Engine: eng,
	}, nil
}
