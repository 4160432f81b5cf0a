package nodepools

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var (
	createCluster      string
	createReplicas     int
	createInstanceType string
	createDiskSize     int
	createDiskType     string
	createAutoRepair   bool
	createLabels       []string
	createTaints       []string
	createDryRun       bool
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a nodepool in a cluster",
	Long: `Creates a nodepool in the cluster given with --cluster. Labels are
repeated key=value pairs; taints are key=value:effect with effect one
of NoSchedule, PreferNoSchedule or NoExecute.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		if createCluster == "" {
			return clierr.New(clierr.Validation, "cluster is required; use --cluster")
		}
		labels, err := hcp.ParseLabels(createLabels)
		if err != nil {
			return err
		}
		taints, err := hcp.ParseTaints(createTaints)
		if err != nil {
			return err
		}
		clusterID, err := svc.ResolveCluster(cmd.Context(), createCluster)
		if err != nil {
			return err
		}

		spec := hcp.NodePoolSpec{
			Name:         args[0],
			ClusterID:    clusterID,
			Replicas:     createReplicas,
			InstanceType: createInstanceType,
			DiskSize:     createDiskSize,
			DiskType:     createDiskType,
			AutoRepair:   createAutoRepair,
			Labels:       labels,
			Taints:       taints,
		}

		if createDryRun {
			body, err := svc.NodePoolPayload(spec)
			if err != nil {
				return err
			}
			return cmdutil.Render(cmd, api.ItemResult(body))
		}

		res, err := svc.CreateNodePool(cmd.Context(), spec)
		if err != nil {
			return err
		}
		if cmdutil.Quiet(cmd) {
			if item := res.Item(); item != nil {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), item.String("id"))
				return err
			}
			return nil
		}
		if item := res.Item(); item != nil {
			logger.Get().Info("nodepool created",
				"id", item.String("id"), "name", item.String("name"), "cluster", clusterID)
		}
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	createCmd.Flags().StringVar(&createCluster, "cluster", "", "owning cluster (ID, name, or ID prefix)")
	createCmd.Flags().IntVar(&createReplicas, "replicas", 2, "number of nodes in the pool")
	createCmd.Flags().StringVar(&createInstanceType, "instance-type", "n2-standard-4", "GCP machine type for the nodes")
	createCmd.Flags().IntVar(&createDiskSize, "disk-size", 128, "root volume size in GiB")
	createCmd.Flags().StringVar(&createDiskType, "disk-type", "pd-ssd", "root volume disk type")
	createCmd.Flags().BoolVar(&createAutoRepair, "auto-repair", true, "automatically replace unhealthy nodes")
	createCmd.Flags().StringSliceVar(&createLabels, "labels", nil, "node labels as key=value (repeatable)")
	createCmd.Flags().StringSliceVar(&createTaints, "taints", nil, "node taints as key=value:effect (repeatable)")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "print the request body instead of creating the nodepool")
}
