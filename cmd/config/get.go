package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
	internalconfig "github.com/gcp-hcp/gcphcp/internal/config"
)

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a single configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, ok, err := internalconfig.GetKey(filePath(cmd), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return clierr.Newf(clierr.NotFound, "key %q is not set", args[0])
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	},
}
