package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/user/boxrec-service/internal/adapter/boxrec"
)

func newDivisionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "divisions",
		Short: "Lists the division names accepted by ratings and top.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := boxrec.Divisions()
			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, names)
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"Division", "Upstream code"})
			for _, name := range names {
				t.AppendRow(table.Row{name, boxrec.DivisionCode(name)})
			}
			t.Render()
			return nil
		},
	}
}
