package commands

import (
	"github.com/spf13/cobra"
	"github.com/user/boxrec-service/pkg/client"
)

var defaultTopDivisions = []string{"heavyweight", "middleweight", "lightweight"}

func newTopCmd(opts *options) *cobra.Command {
	var (
		divisions []string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Shows the top rated boxers of several divisions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			top, err := opts.client.GetTopBoxersAcrossDivisions(cmd.Context(), divisions, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, top)
			}

			// Divisions print in flag order, not map order.
			for _, d := range divisions {
				t := newTable(out)
				t.SetTitle(d)
				appendRatings(t, top[d])
				t.Render()
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&divisions, "division", defaultTopDivisions, "divisions to include (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", client.DefaultTopLimit, "entries per division")
	return cmd
}
