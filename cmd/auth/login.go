package auth

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in via the OAuth 2.0 browser flow",
	Long: `Starts the OAuth 2.0 authorization-code flow: opens the consent page
in a browser, waits for the redirect on a local port, exchanges the code and
persists the credential. Logging in again replaces the stored credential.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		mgr, _, err := cmdutil.NewAuthManager(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		cred, err := mgr.Login(ctx)
		if err != nil {
			return err
		}
		if cred.AccountEmail != "" {
			log.Info("logged in", "account", cred.AccountEmail)
		} else {
			log.Info("logged in")
		}
		return nil
	},
}
