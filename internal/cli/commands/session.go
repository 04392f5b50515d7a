package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

type sessionOptions struct {
	sessions session.Store
	out      io.Writer
}

// SessionOption configures runSession for testing
type SessionOption func(*sessionOptions)

func WithSessionStore(s session.Store) SessionOption {
	return func(o *sessionOptions) { o.sessions = s }
}

func WithSessionOutput(w io.Writer) SessionOption {
	return func(o *sessionOptions) { o.out = w }
}

// NewSessionCmd creates the session command
func NewSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the stored admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession()
		},
	}
}

func runSession(opts ...SessionOption) error {
	o := &sessionOptions{out: os.Stdout}
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

	token, err := o.sessions.Token()
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(o.out, "No active session. Run 'kisanctl login' to sign in.")
		return nil
	}

	fmt.Fprintln(o.out, "Active session")
	if profile := o.sessions.Profile(); profile != nil {
		if profile.Name != "" {
			fmt.Fprintf(o.out, "  Admin: %s\n", profile.Name)
		}
		if profile.Email != "" {
			fmt.Fprintf(o.out, "  Email: %s\n", profile.Email)
		}
		if profile.Role != "" {
			fmt.Fprintf(o.out, "  Role: %s\n", profile.Role)
		}
	}

	if expiry, ok := tokenExpiry(token); ok {
		fmt.Fprintf(o.out, "  Token expires: %s\n", expiry.Format(time.RFC3339))
	}

	return nil
}

// tokenExpiry decodes the exp claim for display only. The token is opaque to
// this client; validity is always decided by the backend.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
