package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticates with BoxRec and stores the session token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				username = os.Getenv("BOXREC_USERNAME")
			}
			if password == "" {
				password = os.Getenv("BOXREC_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("username and password are required (flags or BOXREC_USERNAME/BOXREC_PASSWORD)")
			}

			res, err := opts.client.Authenticate(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := opts.saveSession(opts.client.Session()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (session saved to %s)\n", res.Message, opts.sessionFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "BoxRec username")
	cmd.Flags().StringVar(&password, "password", "", "BoxRec password")
	return cmd
}
