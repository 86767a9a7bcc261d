package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/boxrec-service/pkg/client"
)

type options struct {
	server      string
	sessionFile string
	timeout     time.Duration
	json        bool

	client *client.Client
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "boxrec-cli",
		Short:         "boxrec-cli is a command line client for the BoxRec proxy API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.client = client.New(client.Config{BaseURL: opts.server, Timeout: opts.timeout})
			token, err := opts.loadSession()
			if err != nil {
				return err
			}
			opts.client.SetSession(token)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("BOXREC_SERVER", "http://localhost:8080"), "base URL of the API server")
	flags.StringVar(&opts.sessionFile, "session-file", defaultSessionFile(), "file holding the session token")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "request timeout")
	flags.BoolVar(&opts.json, "json", false, "print raw JSON instead of tables")

	rootCmd.AddCommand(
		newLoginCmd(opts),
		newBoxerCmd(opts),
		newSearchCmd(opts),
		newRatingsCmd(opts),
		newTopCmd(opts),
		newDivisionsCmd(opts),
	)
	return rootCmd
}

func (o *options) loadSession() (string, error) {
	raw, err := os.ReadFile(o.sessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (o *options) saveSession(token string) error {
	if dir := filepath.Dir(o.sessionFile); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(o.sessionFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".boxrec-session"
	}
	return filepath.Join(home, ".boxrec-session")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
