// Package cli defines the canopyctl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "canopyctl",
		Short:         "canopyctl keeps a downstream fork's patch set rebased on upstream",
		Long:          "canopyctl automates rebasing the Canopy patch set onto upstream OpenBMC,\nwith a safety backup and resumable conflict handling.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(newRebaseCmd())
	rootCmd.AddCommand(newBackupsCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "canopyctl %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
