package nodepools

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
)

var (
	listCluster string
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List nodepools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		clusterID, err := resolveClusterFlag(cmd, svc, listCluster)
		if err != nil {
			return err
		}
		res, err := svc.ListNodePools(cmd.Context(), hcp.NodePoolListOptions{
			ClusterID: clusterID,
			Limit:     listLimit,
		})
		if err != nil {
			return err
		}
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	listCmd.Flags().StringVar(&listCluster, "cluster", "", "only list nodepools of this cluster (ID, name, or ID prefix)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of nodepools to return (0 for all)")
}
