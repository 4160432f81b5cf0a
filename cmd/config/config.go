// cmd/config/config.go
package config

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the parent "config" command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify the gcphcp configuration file",
	Long: `Commands for the gcphcp configuration file. Values resolve in priority
order: CLI flags > GCPHCP_* environment variables > config file > defaults.`,
}

func init() {
	ConfigCmd.AddCommand(initCmd)
	ConfigCmd.AddCommand(setCmd)
	ConfigCmd.AddCommand(getCmd)
	ConfigCmd.AddCommand(listCmd)
	ConfigCmd.AddCommand(pathCmd)
}

// filePath returns the config file the command should operate on,
// honoring the global --config flag.
func filePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return defaultPath()
}
