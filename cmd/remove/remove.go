package remove

import (
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/diskmanager"
	"github.com/spf13/cobra"
)

// Command creates the remove command deleting downloaded site bundles.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [site name]...",
		Short: "Delete downloaded site bundles",
		Long:  `Delete the offline bundles of the named sites regardless of age. Removing a site that has no bundle is not an error.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return diskmanager.ManualDeleteSites(ctx.Settings, args, ctx.Metrics)
		},
	}

	return cmd
}
