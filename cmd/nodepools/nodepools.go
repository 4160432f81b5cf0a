// cmd/nodepools/nodepools.go
package nodepools

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/internal/hcp"
)

// NodePoolsCmd is the parent "nodepools" command.
var NodePoolsCmd = &cobra.Command{
	Use:     "nodepools",
	Aliases: []string{"nodepool", "np"},
	Short:   "Manage cluster nodepools",
	Long: `Commands for the nodepool lifecycle: list, create, describe, update
and delete. Nodepools are addressed by full ID, exact name, or a unique
ID prefix of at least 8 characters; --cluster narrows name resolution
to one owning cluster.`,
}

// resolveClusterFlag turns an optional --cluster value into a full
// cluster ID. An empty value stays empty.
func resolveClusterFlag(cmd *cobra.Command, svc *hcp.Service, identifier string) (string, error) {
	if identifier == "" {
		return "", nil
	}
	return svc.ResolveCluster(cmd.Context(), identifier)
}

func init() {
	NodePoolsCmd.AddCommand(listCmd)
	NodePoolsCmd.AddCommand(createCmd)
	NodePoolsCmd.AddCommand(describeCmd)
	NodePoolsCmd.AddCommand(updateCmd)
	NodePoolsCmd.AddCommand(deleteCmd)
}
