package show

import (
	"fmt"

	"github.com/sitewarden/sitewarden/internal/bundle"
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/inspection"
	"github.com/sitewarden/sitewarden/internal/remote"
	"github.com/spf13/cobra"
)

// Command creates the show command printing a site's inspection history.
func Command(ctx *conf.Context) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "show [site name]",
		Short: "Show a site's inspections",
		Long:  `Show the inspection history of one site, newest first, from the remote service or from the site's offline bundle.`,
		Args:  cobra.ExactArgs(1), // the command expects exactly one argument
		RunE: func(cmd *cobra.Command, args []string) error {
			siteName := args[0]

			details, err := fetch(ctx, siteName, offline)
			if err != nil {
				return err
			}

			for i := range details {
				printDetail(&details[i])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Read from the site's offline bundle instead of the remote service")

	return cmd
}

func fetch(ctx *conf.Context, siteName string, offline bool) ([]inspection.InspectionDetail, error) {
	if offline {
		manager := bundle.NewManager(ctx.Settings.BundlesRoot(), nil, ctx.Metrics)
		return manager.DetailsOffline(siteName)
	}

	accessor, err := remote.Open(ctx.Settings)
	if err != nil {
		return nil, err
	}
	defer accessor.Close()

	service := inspection.NewService(accessor, ctx.Metrics)
	return service.DetailsOnline(siteName)
}

func printDetail(d *inspection.InspectionDetail) {
	fmt.Printf("%s  #%d  %s / %s  region=%s area=%s\n",
		d.InspectDate, d.InspectNo, d.InspectType, d.SubType, d.Region, d.Area)
	if d.Steward != nil {
		fmt.Printf("  steward: %s\n", *d.Steward)
	}
	if d.StewardGuest != nil {
		fmt.Printf("  guest steward: %s\n", *d.StewardGuest)
	}
	if d.NaturalnessScore != nil {
		fmt.Printf("  naturalness: %s\n", *d.NaturalnessScore)
	}
	if d.NaturalnessDetails != nil {
		fmt.Printf("  naturalness details: %s\n", *d.NaturalnessDetails)
	}
	if len(d.Notes) > 0 {
		fmt.Printf("  notes: %s\n", inspection.JoinNotes(d.Notes))
	}
}
