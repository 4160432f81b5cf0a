// cmd/clusters/clusters.go
package clusters

import (
	"github.com/spf13/cobra"
)

// ClustersCmd is the parent "clusters" command.
var ClustersCmd = &cobra.Command{
	Use:     "clusters",
	Aliases: []string{"cluster"},
	Short:   "Manage Hosted Control Plane clusters",
	Long: `Commands for the cluster lifecycle: list, create, describe, status,
update and delete. Clusters are addressed by full ID, exact name, or a
unique ID prefix of at least 8 characters.`,
}

func init() {
	ClustersCmd.AddCommand(listCmd)
	ClustersCmd.AddCommand(createCmd)
	ClustersCmd.AddCommand(describeCmd)
	ClustersCmd.AddCommand(statusCmd)
	ClustersCmd.AddCommand(updateCmd)
	ClustersCmd.AddCommand(deleteCmd)
}
