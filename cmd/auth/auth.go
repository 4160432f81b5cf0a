// cmd/auth/auth.go
package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd is the parent "auth" command.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage OAuth credentials for the HCP API",
	Long: `Commands for the OAuth 2.0 credential lifecycle: browser-based login,
token inspection, status reporting and logout.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(tokenCmd)
	AuthCmd.AddCommand(logoutCmd)
}
