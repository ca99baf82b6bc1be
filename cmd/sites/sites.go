package sites

import (
	"fmt"

	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/inspection"
	"github.com/sitewarden/sitewarden/internal/remote"
	"github.com/spf13/cobra"
)

// Command creates the sites command listing all sites from the remote service.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List all sites",
		Long:  `List all inspection sites known to the remote service, ordered by name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			accessor, err := remote.Open(ctx.Settings)
			if err != nil {
				return err
			}
			defer accessor.Close()

			service := inspection.NewService(accessor, ctx.Metrics)
			sites, err := service.Sites()
			if err != nil {
				return err
			}

			for _, site := range sites {
				fmt.Printf("%-40s %-20s %s\n", site.NameSite, site.County, site.InspectDate)
			}
			return nil
		},
	}

	return cmd
}
