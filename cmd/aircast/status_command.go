package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aircast/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check readiness of directories, endpoints, and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var rows [][]string
			failed := false
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				if !result.Passed {
					failed = true
				}
				rows = append(rows, []string{result.Name, yesNo(result.Passed), result.Detail})
			}
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				if !status.Available && !status.Optional {
					failed = true
				}
				detail := status.Detail
				if status.Available {
					detail = status.Description
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
			}

			table := renderTable(
				[]string{"CHECK", "OK", "DETAIL"},
				rows,
			)
			fmt.Fprintln(out, table)
			if failed {
				return fmt.Errorf("one or more readiness checks failed")
			}
			return nil
		},
	}
}
