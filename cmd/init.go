package cmd

import (
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rushsh/rush/core/config"
)

// initCmd scaffolds the shell configuration directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)
		return config.Initialize(afero.NewOsFs(), cfgDir, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
