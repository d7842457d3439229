package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sandevgo/saya/internal/config"
	"github.com/sandevgo/saya/pkg/log"
	"github.com/spf13/cobra"
)

var backupOutput string

var backupCmd = &cobra.Command{
	Use:          "backup",
	Short:        "Dump every memory and user name as JSON",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// stdout may carry the backup itself
		var flushLog func()
		ctx, flushLog = log.NewContextWithOptions(ctx, log.Options{
			Debug: debug || config.IsDebug(),
			Out:   os.Stderr,
		})
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg, err := config.ParseAppConfig()
		if err != nil {
			return err
		}

		db, store, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		backup, err := store.DumpAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to dump store: %w", err)
		}

		var out io.Writer = cmd.OutOrStdout()
		if backupOutput != "" {
			f, err := os.OpenFile(backupOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(backup); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().
			Int("memories", len(backup.Memories)).
			Int("names", len(backup.Names)).
			Msg("backup written")
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(backupCmd)
}
