package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/user/boxrec-service/pkg/client"
)

func newRatingsCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ratings <division>",
		Short: "Shows the ratings of a weight division.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client.GetRatings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if limit > 0 && len(res.Ratings) > limit {
				res.Ratings = res.Ratings[:limit]
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, res)
			}

			t := newTable(out)
			t.SetTitle(res.Division)
			appendRatings(t, res.Ratings)
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the first N entries (0 = all)")
	return cmd
}

func appendRatings(t table.Writer, entries []client.RatingEntry) {
	t.AppendHeader(table.Row{"Rank", "ID", "Name", "Points", "Record"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Rank, e.ID, e.Name, e.Points, e.Record})
	}
}
