package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"canopy.dev/canopyctl/internal/engine"
)

// newRebaseCmd creates the rebase command
func newRebaseCmd() *cobra.Command {
	var (
		continueFlag bool
		abortFlag    bool
		force        bool
		remote       string
		target       string
	)

	cmd := &cobra.Command{
		Use:   "rebase",
		Short: "Rebase the local patch set onto the latest upstream",
		Long: `Rebase the local patch set onto the latest upstream.

A safety backup branch is created before anything is rewritten. On a
conflict the rebase pauses; resolve the files, stage them, and rerun with
--continue, or roll everything back with --abort.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if continueFlag && abortFlag {
				return fmt.Errorf("--continue and --abort are mutually exclusive")
			}

			rc, err := newRuntimeContext()
			if err != nil {
				return err
			}
			defer func() { _ = rc.Splog.Close() }()

			ctx := cmd.Context()
			switch {
			case abortFlag:
				return rc.Engine.Abort(ctx)
			case continueFlag:
				return rc.Engine.Continue(ctx)
			default:
				return rc.Engine.Execute(ctx, engine.Options{
					Remote: remote,
					Target: target,
					Force:  force,
				})
			}
		},
	}

	cmd.Flags().BoolVar(&continueFlag, "continue", false, "Continue after resolving conflicts")
	cmd.Flags().BoolVar(&abortFlag, "abort", false, "Abort and restore the original state")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Don't prompt for confirmation")
	cmd.Flags().StringVar(&remote, "remote", "", "Upstream remote to rebase against (default: auto-detected)")
	cmd.Flags().StringVar(&target, "target", "", "Upstream branch to rebase onto (default: auto-detected)")

	return cmd
}
