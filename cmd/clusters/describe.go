package clusters

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
)

var describeCmd = &cobra.Command{
	Use:   "describe CLUSTER",
	Short: "Show the full definition of one cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		id, err := svc.ResolveCluster(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		res, err := svc.DescribeCluster(cmd.Context(), id)
		if err != nil {
			return err
		}
		return cmdutil.Render(cmd, res)
	},
}
