package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// loginAPI is the slice of the API client the login command needs
type loginAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
}

type loginOptions struct {
	client   loginAPI
	sessions session.Store
	out      io.Writer
}

// LoginOption configures runLogin for testing
type LoginOption func(*loginOptions)

func WithLoginClient(c loginAPI) LoginOption {
	return func(o *loginOptions) { o.client = c }
}

func WithLoginSessions(s session.Store) LoginOption {
	return func(o *loginOptions) { o.sessions = s }
}

func WithLoginOutput(w io.Writer) LoginOption {
	return func(o *loginOptions) { o.out = w }
}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, envName string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the KisanSetu backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password, envName)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set KISANSETU_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set KISANSETU_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runLogin(email, password, envName string, opts ...LoginOption) error {
	o := &loginOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	// Environment variables are useful for CI/CD
	if email == "" {
		email = os.Getenv("KISANSETU_EMAIL")
	}
	if password == "" {
		password = os.Getenv("KISANSETU_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or KISANSETU_EMAIL env var)")
	}

	if o.client == nil || o.sessions == nil {
		app, err := newAppContext(envName)
		if err != nil {
			return err
		}
		if o.client == nil {
			o.client = app.client
		}
		if o.sessions == nil {
			o.sessions = app.sessions
		}
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Fprint(o.out, "Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Fprintln(o.out)
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or KISANSETU_PASSWORD env var)")
		}
	}

	resp, err := o.client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Token and profile are persisted together; a half-written session is
	// worse than none.
	if err := o.sessions.Set(resp.Token, &resp.Admin); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(o.out, "Login successful.")
	fmt.Fprintf(o.out, "  Admin: %s (%s)\n", resp.Admin.Name, resp.Admin.Email)
	if resp.Admin.Role != "" {
		fmt.Fprintf(o.out, "  Role: %s\n", resp.Admin.Role)
	}

	return nil
}
