package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldtasks/internal/service"
)

var (
	orphansWatch bool
	orphansAt    string
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Report child rows whose task no longer exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !orphansWatch {
			report, err := a.integrity.FindOrphans(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		scan := func() {
			jobCtx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			if _, err := a.integrity.FindOrphans(jobCtx); err != nil {
				logger.Error("orphan scan", zap.Error(err))
			}
		}

		scheduler := service.NewSchedulerService(time.Local, logger)
		if orphansAt != "" {
			_, err = scheduler.ScheduleDaily(orphansAt, scan)
		} else {
			_, err = scheduler.ScheduleInterval(cfg.OrphanScanInterval, scan)
		}
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()

		logger.Info("watching for orphans", zap.Duration("interval", cfg.OrphanScanInterval), zap.String("at", orphansAt))
		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	orphansCmd.Flags().BoolVar(&orphansWatch, "watch", false, "keep scanning on a schedule")
	orphansCmd.Flags().StringVar(&orphansAt, "at", "", "with --watch, scan daily at HH:MM instead of ORPHAN_SCAN_INTERVAL")
}
