package cleanup

import (
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/diskmanager"
	"github.com/spf13/cobra"
)

// Command creates the cleanup command sweeping expired offline bundles.
func Command(ctx *conf.Context) *cobra.Command {
	var keepDays int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete offline bundles past the retention window",
		Long:  `Delete offline bundles whose last access is older than the retention window. The window comes from --keep-days, else the persisted preference, else the default of 30 days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return diskmanager.CleanupExpiredSites(ctx.Settings, keepDays, ctx.Metrics)
		},
	}

	cmd.Flags().IntVar(&keepDays, "keep-days", 0, "Retention window in days (overrides the configured preference)")

	return cmd
}
