package main

import (
	"github.com/spf13/cobra"

	"fieldtasks/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve task aggregates and metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		srv := api.New(a.tasks, a.registry, logger.Named("api"))
		return srv.Run(cmd.Context(), cfg.HTTPAddr)
	},
}
