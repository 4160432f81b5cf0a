package auth

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
	"github.com/gcp-hcp/gcphcp/internal/api"
	internalauth "github.com/gcp-hcp/gcphcp/internal/auth"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current authentication state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := cmdutil.NewAuthManager(cmd)
		if err != nil {
			return err
		}

		state, cred := mgr.Status()
		doc := api.NewDocument().Set("state", state.String())
		if cred != nil {
			if cred.AccountEmail != "" {
				doc.Set("account", cred.AccountEmail)
			}
			doc.Set("expiry", cred.Expiry.Format(time.RFC3339))
			if state == internalauth.Valid {
				doc.Set("expires_in", time.Until(cred.Expiry).Round(time.Second).String())
			}
		}
		return cmdutil.Render(cmd, api.ItemResult(doc))
	},
}
