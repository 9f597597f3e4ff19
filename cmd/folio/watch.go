package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartymode/folio/pkg/adapters/fs"
	"github.com/smartymode/folio/pkg/adapters/lifecycle"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-export whenever local or editor content changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := runExport(cmd); err != nil {
			return err
		}

		app, err := openApp(nil)
		if err != nil {
			return err
		}
		events, err := fs.Watch(ctx, app.WatchRoots(), fs.WatchOptions{
			Debounce: watchDebounce,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		batches := lifecycle.NewSource(events)
		if err := batches.Start(ctx); err != nil {
			return err
		}
		logger.Info("watching", "roots", app.WatchRoots())

		for b := range batches.Events() {
			logger.Info("content changed", "batch", b.String())
			if _, err := runExport(cmd); err != nil {
				logger.Error("export failed", "error", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Quiet period before a batch of changes triggers an export")
}
