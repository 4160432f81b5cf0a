package config

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcp-hcp/gcphcp/internal/api"
	internalconfig "github.com/gcp-hcp/gcphcp/internal/config"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create the configuration file",
	Long: `Prompts for the API endpoint and default project and writes them to
the config file. Pressing enter keeps the current value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filePath(cmd)
		reader := bufio.NewReader(cmd.InOrStdin())

		prompts := []struct {
			key, label string
		}{
			{internalconfig.KeyAPIEndpoint, "API endpoint"},
			{internalconfig.KeyDefaultProject, "Default project"},
		}
		for _, p := range prompts {
			current, _, err := internalconfig.GetKey(path, p.key)
			if err != nil {
				current = ""
			}
			if current != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s]: ", p.label, current)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", p.label)
			}
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				break
			}
			value := strings.TrimSpace(line)
			if value == "" {
				continue
			}
			if err := internalconfig.SetKey(path, p.key, value); err != nil {
				return err
			}
			if p.key == internalconfig.KeyAPIEndpoint {
				checkEndpoint(cmd, value)
			}
		}
		logger.Get().Info("config initialized", "file", path)
		return nil
	},
}

// checkEndpoint probes the endpoint's health route. Unreachable is a
// warning, not an error: the API may simply not be up yet.
func checkEndpoint(cmd *cobra.Command, endpoint string) {
	log := logger.Get()
	if err := api.CheckHealth(cmd.Context(), endpoint); err != nil {
		log.Warn("endpoint saved but not reachable", "endpoint", endpoint, "error", err.Error())
		return
	}
	log.Info("endpoint is healthy", "endpoint", endpoint)
}
