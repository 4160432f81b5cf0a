package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the CLI version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the gcphcp version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "gcphcp v0.1.0")
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
