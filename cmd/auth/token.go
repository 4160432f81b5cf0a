package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/cmd/cmdutil"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a currently valid access token",
	Long: `Prints a presently valid access token to stdout, refreshing it first
when the stored one has expired. Intended for scripting; fails when
reauthentication is required rather than printing a stale token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cfg, err := cmdutil.NewAuthManager(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		token, err := mgr.Token(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}
