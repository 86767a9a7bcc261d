package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Searches boxers by name.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := opts.client.SearchBoxers(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, results)
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"ID", "Name", "Record", "Last fight"})
			for _, r := range results {
				t.AppendRow(table.Row{r.ID, r.Name, r.Record, r.LastFight})
			}
			t.Render()
			return nil
		},
	}
}
