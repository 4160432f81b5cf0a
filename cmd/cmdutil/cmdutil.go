// Package cmdutil wires the config, credential, auth and API layers
// together for the command tree.
package cmdutil

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/auth"
	"github.com/gcp-hcp/gcphcp/internal/config"
	"github.com/gcp-hcp/gcphcp/internal/credstore"
	"github.com/gcp-hcp/gcphcp/internal/hcp"
	"github.com/gcp-hcp/gcphcp/internal/output"
)

// ResolveConfig merges all configuration layers using the global
// persistent flags as the highest-priority layer.
func ResolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	endpoint, _ := cmd.Flags().GetString("api-endpoint")
	project, _ := cmd.Flags().GetString("project")
	return config.Resolve(config.Overrides{
		ConfigFile:  cfgFile,
		APIEndpoint: endpoint,
		Project:     project,
	})
}

// ResolveLocalConfig merges layers without requiring api_endpoint,
// for commands that never touch the resource API.
func ResolveLocalConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	endpoint, _ := cmd.Flags().GetString("api-endpoint")
	project, _ := cmd.Flags().GetString("project")
	return config.ResolveLocal(config.Overrides{
		ConfigFile:  cfgFile,
		APIEndpoint: endpoint,
		Project:     project,
	})
}

// NewAuthManager builds the auth manager over the configured
// credential store. Auth operations talk only to the OAuth provider,
// so api_endpoint is not required.
func NewAuthManager(cmd *cobra.Command) (*auth.Manager, *config.Config, error) {
	cfg, err := ResolveLocalConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store := credstore.New(cfg.CredentialsPath)
	return auth.NewManager(cfg, store, nil), cfg, nil
}

// NewService builds the full stack: config, credential store, auth
// manager, API client and resource service. Resolution is strict
// here: a missing api_endpoint fails before any network call.
func NewService(cmd *cobra.Command) (*hcp.Service, *config.Config, error) {
	cfg, err := ResolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store := credstore.New(cfg.CredentialsPath)
	mgr := auth.NewManager(cfg, store, nil)
	client, err := api.New(cfg, mgr)
	if err != nil {
		return nil, nil, err
	}
	return hcp.New(client, cfg.DefaultProject), cfg, nil
}

// Format parses the global --format flag.
func Format(cmd *cobra.Command) (output.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return output.ParseFormat(s)
}

// Quiet reports the global --quiet flag.
func Quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

// Render writes the result to the command's stdout in the selected
// format.
func Render(cmd *cobra.Command, res *api.Result) error {
	format, err := Format(cmd)
	if err != nil {
		return err
	}
	return output.Render(cmd.OutOrStdout(), res, format)
}

// Confirm prompts on stderr and reads a yes/no answer from the
// command's stdin. Anything other than y/yes declines.
func Confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
