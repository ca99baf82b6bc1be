package downloads

import (
	"fmt"
	"time"

	"github.com/sitewarden/sitewarden/internal/bundle"
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/spf13/cobra"
)

// Command creates the downloads command listing downloaded site bundles.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "downloads",
		Short: "List downloaded site bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := bundle.NewManager(ctx.Settings.BundlesRoot(), nil, ctx.Metrics)
			sites, err := manager.DownloadedSites()
			if err != nil {
				return err
			}

			for _, site := range sites {
				lastAccessed := time.UnixMilli(site.LastAccessed).Format("2006-01-02 15:04")
				fmt.Printf("%-40s %-20s %-12s last accessed %s\n",
					site.NameSite, site.County, site.InspectDate, lastAccessed)
			}
			return nil
		},
	}

	return cmd
}
