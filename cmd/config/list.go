package config

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/api"
	internalconfig "github.com/gcp-hcp/gcphcp/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the values stored in the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := internalconfig.ListFile(filePath(cmd))
		if err != nil {
			return err
		}
		items := make([]*api.Document, 0, len(pairs))
		for _, p := range pairs {
			items = append(items, api.NewDocument().
				Set("key", p[0]).
				Set("value", p[1]))
		}
		return cmdutil.Render(cmd, api.CollectionResult(items))
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write([]byte(filePath(cmd) + "\n"))
		return err
	},
}
