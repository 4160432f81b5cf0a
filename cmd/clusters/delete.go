package clusters

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete CLUSTER",
	Short: "Delete a cluster",
	Long: `Deletes a cluster and everything in it, including its nodepools.
Asks for confirmation unless --yes is given.`,
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

		if !deleteYes {
			name := args[0]
			if res, err := svc.DescribeCluster(cmd.Context(), id); err == nil && res.Item() != nil {
				if n := res.Item().String("name"); n != "" {
					name = n
				}
			}
			if !cmdutil.Confirm(cmd, fmt.Sprintf("Delete cluster %s (%s)? This cannot be undone.", name, id)) {
				logger.Get().Info("delete aborted", "id", id)
				return nil
			}
		}

		if err := svc.DeleteCluster(cmd.Context(), id); err != nil {
			return err
		}
		if cmdutil.Quiet(cmd) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		}
		logger.Get().Info("cluster deleted", "id", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
