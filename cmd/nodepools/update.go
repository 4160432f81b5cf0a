package nodepools

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var (
	updateCluster      string
	updateNodeCount    int
	updateInstanceType string
	updateAutoRepair   bool
	updateLabels       []string
)

var updateCmd = &cobra.Command{
	Use:   "update NODEPOOL",
	Short: "Update fields of a nodepool",
	Long: `Sends a partial update containing exactly the flags that were
provided. Fields that were not provided are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		clusterID, err := resolveClusterFlag(cmd, svc, updateCluster)
		if err != nil {
			return err
		}
		id, err := svc.ResolveNodePool(cmd.Context(), args[0], clusterID)
		if err != nil {
			return err
		}

		var upd hcp.NodePoolUpdate
		if cmd.Flags().Changed("node-count") {
			upd.NodeCount = &updateNodeCount
		}
		if cmd.Flags().Changed("instance-type") {
			upd.InstanceType = &updateInstanceType
		}
		if cmd.Flags().Changed("auto-repair") {
			upd.AutoRepair = &updateAutoRepair
		}
		if cmd.Flags().Changed("labels") {
			labels, err := hcp.ParseLabels(updateLabels)
			if err != nil {
				return err
			}
			upd.Labels = labels
		}

		res, err := svc.UpdateNodePool(cmd.Context(), id, upd)
		if err != nil {
			return err
		}
		logger.Get().Info("nodepool updated", "id", id)
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateCluster, "cluster", "", "owning cluster (ID, name, or ID prefix)")
	updateCmd.Flags().IntVar(&updateNodeCount, "node-count", 0, "new number of nodes in the pool")
	updateCmd.Flags().StringVar(&updateInstanceType, "instance-type", "", "new GCP machine type for the nodes")
	updateCmd.Flags().BoolVar(&updateAutoRepair, "auto-repair", false, "automatically replace unhealthy nodes")
	updateCmd.Flags().StringSliceVar(&updateLabels, "labels", nil, "replacement node labels as key=value (repeatable)")
}
