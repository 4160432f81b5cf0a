// cmd/root.go
package cmd

import (
	authcmd "github.com/gcp-hcp/gcphcp/cmd/auth"
	"github.com/gcp-hcp/gcphcp/cmd/clusters"
	configcmd "github.com/gcp-hcp/gcphcp/cmd/config"
	"github.com/gcp-hcp/gcphcp/cmd/nodepools"
	"github.com/gcp-hcp/gcphcp/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	apiEndpoint  string
	project      string
	outputFormat string
	verbosity    int
	quiet        bool
)

// RootCmd is the root of the gcphcp command tree.
var RootCmd = &cobra.Command{
	Use:   "gcphcp",
	Short: "CLI for managing GCP Hosted Control Plane clusters",
	Long: `gcphcp is the unified CLI for managing GCP Hosted Control Plane (HCP)
clusters and their nodepools.

Configuration priority: CLI flags > environment variables (GCPHCP_*) >
config file (~/.gcphcp/config.yaml) > built-in defaults.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(verbosity, quiet)
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(authcmd.AuthCmd)
	RootCmd.AddCommand(configcmd.ConfigCmd)
	RootCmd.AddCommand(clusters.ClustersCmd)
	RootCmd.AddCommand(nodepools.NodePoolsCmd)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default: ~/.gcphcp/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&apiEndpoint, "api-endpoint", "", "API endpoint URL (env: GCPHCP_API_ENDPOINT)")
	RootCmd.PersistentFlags().StringVar(&project, "project", "", "GCP project ID (env: GCPHCP_PROJECT)")
	RootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table, json, yaml, csv, value")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase logging verbosity (repeatable)")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
}
