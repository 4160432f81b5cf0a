package clusters

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var (
	createRegion         string
	createDescription    string
	createInfraID        string
	createIAMConfigFile  string
	createSigningKeyFile string
	createDryRun         bool
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a cluster",
	Long: `Creates a Hosted Control Plane cluster in the configured project.
With --dry-run the request body is printed instead of sent, so the
platform spec can be inspected before committing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cfg, err := cmdutil.NewService(cmd)
		if err != nil {
			return err
		}
		spec := hcp.ClusterSpec{
			Name:           args[0],
			Project:        cfg.DefaultProject,
			Region:         createRegion,
			Description:    createDescription,
			InfraID:        createInfraID,
			IAMConfigFile:  createIAMConfigFile,
			SigningKeyFile: createSigningKeyFile,
		}

		if createDryRun {
			body, err := svc.ClusterPayload(spec)
			if err != nil {
				return err
			}
			return cmdutil.Render(cmd, api.ItemResult(body))
		}

		res, err := svc.CreateCluster(cmd.Context(), spec)
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
			logger.Get().Info("cluster created", "id", item.String("id"), "name", item.String("name"))
		}
		return cmdutil.Render(cmd, res)
	},
}

func init() {
	createCmd.Flags().StringVar(&createRegion, "region", "us-central1", "GCP region for the cluster")
	createCmd.Flags().StringVar(&createDescription, "description", "", "free-form cluster description")
	createCmd.Flags().StringVar(&createInfraID, "infra-id", "", "infrastructure identifier (defaults to the cluster name)")
	createCmd.Flags().StringVar(&createIAMConfigFile, "iam-config-file", "", "workload identity configuration JSON from infrastructure provisioning")
	createCmd.Flags().StringVar(&createSigningKeyFile, "signing-key-file", "", "PEM service account signing key to embed in the spec")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "print the request body instead of creating the cluster")
}
