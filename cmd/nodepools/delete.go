package nodepools

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var (
	deleteCluster string
	deleteYes     bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete NODEPOOL",
	Short: "Delete a nodepool",
	Long: `Deletes a nodepool and its nodes. Asks for confirmation unless --yes
is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		clusterID, err := resolveClusterFlag(cmd, svc, deleteCluster)
		if err != nil {
			return err
		}
		id, err := svc.ResolveNodePool(cmd.Context(), args[0], clusterID)
		if err != nil {
			return err
		}

		if !deleteYes {
			name := args[0]
			replicas := 0
			if res, err := svc.DescribeNodePool(cmd.Context(), id); err == nil && res.Item() != nil {
				if n := res.Item().String("name"); n != "" {
					name = n
				}
				replicas = hcp.NodePoolReplicas(res.Item())
			}
			prompt := fmt.Sprintf("Delete nodepool %s (%s)?", name, id)
			if replicas > 0 {
				prompt = fmt.Sprintf("Delete nodepool %s (%s) with %d nodes?", name, id, replicas)
			}
			if !cmdutil.Confirm(cmd, prompt) {
				logger.Get().Info("delete aborted", "id", id)
				return nil
			}
		}

		if err := svc.DeleteNodePool(cmd.Context(), id); err != nil {
			return err
		}
		if cmdutil.Quiet(cmd) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		}
		logger.Get().Info("nodepool deleted", "id", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteCluster, "cluster", "", "owning cluster (ID, name, or ID prefix)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
