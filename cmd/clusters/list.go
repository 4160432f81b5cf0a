package clusters

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
)

var (
	listLimit  int
	listStatus string
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clusters in the configured project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		res, err := svc.ListClusters(cmd.Context(), hcp.ClusterListOptions{
			Status: listStatus,
			Limit:  listLimit,
			Offset: listOffset,
		})
		if err != nil {
			return err
		}
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of clusters to return (0 for all)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "only list clusters in this status")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "number of clusters to skip from the start of the listing")
}
