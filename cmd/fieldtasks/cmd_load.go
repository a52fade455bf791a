package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <task-id>...",
	Short: "Print task aggregates as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		aggs, err := a.loader.LoadMany(cmd.Context(), args)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if len(aggs) == 1 {
			return enc.Encode(aggs[0])
		}
		return enc.Encode(aggs)
	},
}
