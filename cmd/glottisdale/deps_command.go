package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glottisdale/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.Check(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "available"
				if !s.Available {
					state = "missing"
				}
				detail := s.Path
				if detail == "" {
					detail = s.Detail
				}
				rows = append(rows, []string{s.Name, s.Command, yesNo(!s.Optional), state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]tableColumn{
				{Header: "Tool"}, {Header: "Command"}, {Header: "Required"}, {Header: "Status"}, {Header: "Detail"},
			}, rows))
			return deps.EnsureRequired(statuses)
		},
	}
}
