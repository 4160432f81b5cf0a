package auth

import (
	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential",
	Long:  `Clears the credential file. Logging out while already logged out succeeds silently.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := cmdutil.NewAuthManager(cmd)
		if err != nil {
			return err
		}
		if err := mgr.Logout(); err != nil {
			return err
		}
		logger.Get().Info("logged out")
		return nil
	},
}
