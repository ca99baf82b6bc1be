package purge

import (
	"strconv"

	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/remote"
	"github.com/spf13/cobra"
)

// Command creates the hidden purge maintenance command deleting all
// observation detail rows of one inspection on the remote service.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "purge-details [inspection id]",
		Short:  "Delete all observation detail rows of an inspection",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspectionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			accessor, err := remote.Open(ctx.Settings)
			if err != nil {
				return err
			}
			defer accessor.Close()

			return accessor.DeleteDetailRowsForInspection(inspectionID)
		},
	}

	return cmd
}
