package main

import (
	"github.com/sandevgo/saya/internal/config"
	"github.com/sandevgo/saya/internal/service/installer"
	"github.com/sandevgo/saya/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Create the runtime directory, .env and persona files",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		state, err := installer.RunWizard(config.GetRuntimePath())
		if err != nil {
			return err
		}

		logger.Info().Msgf("initialized runtime directory at: %s", state.RuntimePath)
		logger.Info().Msg("Installation complete! You can now run 'saya start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
