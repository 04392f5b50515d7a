package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

type logoutOptions struct {
	sessions session.Store
	out      io.Writer
}

// LogoutOption configures runLogout for testing
type LogoutOption func(*logoutOptions)

func WithLogoutSessions(s session.Store) LogoutOption {
	return func(o *logoutOptions) { o.sessions = s }
}

func WithLogoutOutput(w io.Writer) LogoutOption {
	return func(o *logoutOptions) { o.out = w }
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout(opts ...LogoutOption) error {
	o := &logoutOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if o.sessions == nil {
		sessions, err := session.Default()
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		o.sessions = sessions
	}

	// Clearing an already-empty store is fine; logout is idempotent.
	if err := o.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Fprintln(o.out, "Logged out.")
	return nil
}
