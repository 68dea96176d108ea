package cli

import (
	"github.com/spf13/cobra"

	"canopy.dev/canopyctl/internal/backup"
)

// newBackupsCmd creates the backups command
func newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List safety backups created by previous rebases",
		RunE: func(_ *cobra.Command, _ []string) error {
			rc, err := newRuntimeContext()
			if err != nil {
				return err
			}
			defer func() { _ = rc.Splog.Close() }()

			backups, err := backup.NewManager(rc.Runner).List()
			if err != nil {
				return err
			}

			if len(backups) == 0 {
				rc.Splog.Info("No backups found.")
				return nil
			}

			for _, b := range backups {
				rc.Splog.Info("%s  (created %s)", b.Name, b.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			rc.Splog.Newline()
			rc.Splog.Tip("Restore manually with: git reset --hard <backup-name>")
			return nil
		},
	}
}
