package config

import (
	"github.com/spf13/cobra"

	internalconfig "github.com/gcp-hcp/gcphcp/internal/config"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

func defaultPath() string { return internalconfig.DefaultPath() }

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Persist a single configuration key",
	Long: `Writes one key into the config file. The write is atomic, so an
interrupted command never leaves a corrupt file behind.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filePath(cmd)
		if err := internalconfig.SetKey(path, args[0], args[1]); err != nil {
			return err
		}
		logger.Get().Info("config updated", "key", args[0], "file", path)
		return nil
	},
}
