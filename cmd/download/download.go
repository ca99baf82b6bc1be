package download

import (
	"fmt"

	"github.com/sitewarden/sitewarden/internal/bundle"
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/remote"
	"github.com/spf13/cobra"
)

// Command creates the download command fetching a site's offline bundle.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [site name]",
		Short: "Download a site's inspections for offline use",
		Long:  `Download the full inspection history of one site into a private offline bundle. An existing bundle for the site is replaced.`,
		Args:  cobra.ExactArgs(1), // the command expects exactly one argument
		RunE: func(cmd *cobra.Command, args []string) error {
			siteName := args[0]

			accessor, err := remote.Open(ctx.Settings)
			if err != nil {
				return err
			}
			defer accessor.Close()

			manager := bundle.NewManager(ctx.Settings.BundlesRoot(), accessor, ctx.Metrics)
			if err := manager.Download(siteName); err != nil {
				return err
			}

			fmt.Printf("Downloaded %s\n", siteName)
			return nil
		},
	}

	return cmd
}
