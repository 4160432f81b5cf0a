package nodepools

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
)

var describeCluster string

var describeCmd = &cobra.Command{
	Use:   "describe NODEPOOL",
	Short: "Show the full definition of one nodepool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		clusterID, err := resolveClusterFlag(cmd, svc, describeCluster)
		if err != nil {
			return err
		}
		id, err := svc.ResolveNodePool(cmd.Context(), args[0], clusterID)
		if err != nil {
			return err
		}
		res, err := svc.DescribeNodePool(cmd.Context(), id)
		if err != nil {
			return err
		}
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeCluster, "cluster", "", "owning cluster (ID, name, or ID prefix)")
}
