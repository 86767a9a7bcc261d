package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/user/boxrec-service/pkg/client"
)

func newBoxerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "boxer <id>...",
		Short: "Shows one or more boxer profiles.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := opts.client.GetBatchBoxers(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				if len(profiles) == 1 {
					return printJSON(out, profiles[0])
				}
				return printJSON(out, profiles)
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"ID", "Name", "Nickname", "Record", "KOs", "Bouts"})
			for _, p := range profiles {
				t.AppendRow(table.Row{p.ID, p.Name, p.Nickname, formatRecord(p.Record), p.KOs, len(p.Bouts)})
			}
			t.Render()
			return nil
		},
	}
}

func formatRecord(r client.Record) string {
	return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Draws)
}
