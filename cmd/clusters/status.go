package clusters

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var (
	statusWatch    bool
	statusInterval time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status CLUSTER",
	Short: "Show the controller status of one cluster",
	Long: `Fetches the status detail for a cluster. With --watch the status is
re-fetched every interval until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		id, err := svc.ResolveCluster(ctx, args[0])
		if err != nil {
			return err
		}

		fetch := func() error {
			res, err := svc.ClusterStatus(ctx, id)
			if err != nil {
				return err
			}
			return cmdutil.Render(cmd, res)
		}

		if err := fetch(); err != nil {
			return err
		}
		if !statusWatch {
			return nil
		}

		log := logger.Get()
		log.Debug("watching cluster status", "cluster", id, "interval", statusInterval)
		ticker := time.NewTicker(statusInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				fmt.Fprintln(cmd.OutOrStdout())
				if err := fetch(); err != nil {
					return err
				}
			}
		}
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "keep re-fetching the status until interrupted")
	statusCmd.Flags().DurationVar(&statusInterval, "interval", 10*time.Second, "refresh interval used with --watch")
}
