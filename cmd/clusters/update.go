package clusters

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var (
	updateDescription string
	updateRegion      string
)

var updateCmd = &cobra.Command{
	Use:   "update CLUSTER",
	Short: "Update fields of a cluster",
	Long: `Sends a partial update containing exactly the flags that were
provided. Fields that were not provided are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		id, err := svc.ResolveCluster(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var upd hcp.ClusterUpdate
		if cmd.Flags().Changed("description") {
			upd.Description = &updateDescription
		}
		if cmd.Flags().Changed("region") {
			upd.Region = &updateRegion
		}

		res, err := svc.UpdateCluster(cmd.Context(), id, upd)
		if err != nil {
			return err
		}
		logger.Get().Info("cluster updated", "id", id)
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new cluster description")
	updateCmd.Flags().StringVar(&updateRegion, "region", "", "new GCP region")
}
