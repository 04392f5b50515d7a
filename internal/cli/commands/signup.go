package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// signupAPI is the slice of the API client the signup command needs
type signupAPI interface {
	Signup(ctx context.Context, req api.SignupRequest) (*api.LoginResponse, error)
}

type signupOptions struct {
	client   signupAPI
	sessions session.Store
	out      io.Writer
}

// SignupOption configures runSignup for testing
type SignupOption func(*signupOptions)

func WithSignupClient(c signupAPI) SignupOption {
	return func(o *signupOptions) { o.client = c }
}

func WithSignupSessions(s session.Store) SignupOption {
	return func(o *signupOptions) { o.sessions = s }
}

func WithSignupOutput(w io.Writer) SignupOption {
	return func(o *signupOptions) { o.out = w }
}

// signupForm mirrors the registration form. The checks here run before any
// network call; the backend still validates the secret key.
type signupForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	SecretKey       string `validate:"required"`
}

var signupValidator = validator.New(validator.WithRequiredStructEnabled())

// validateSignupForm maps validator failures onto the console's messages.
// A password mismatch is reported before a too-short password.
func validateSignupForm(form signupForm) error {
	err := signupValidator.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, fe := range verrs {
		if fe.Field() == "ConfirmPassword" && fe.Tag() == "eqfield" {
			return errors.New("passwords do not match")
		}
	}
	for _, fe := range verrs {
		if fe.Field() == "Password" && fe.Tag() == "min" {
			return errors.New("password must be at least 6 characters long")
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", flagName(fe.Field()))
	case "email":
		return errors.New("a valid email address is required")
	}
	return err
}

// flagName turns a form field name into its flag spelling
func flagName(field string) string {
	switch field {
	case "ConfirmPassword":
		return "confirm-password"
	case "SecretKey":
		return "secret-key"
	default:
		return strings.ToLower(field)
	}
}

// NewSignupCmd creates the signup command
func NewSignupCmd() *cobra.Command {
	var form signupForm
	var envName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new admin account",
		Long: `Register a new admin account.

Registration requires the admin secret key configured on the backend.
On success the new account is signed in immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(form, envName)
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password (min 6 characters)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "Password confirmation")
	cmd.Flags().StringVar(&form.SecretKey, "secret-key", "", "Admin secret key")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runSignup(form signupForm, envName string, opts ...SignupOption) error {
	o := &signupOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	// Local validation happens before any backend round-trip
	if err := validateSignupForm(form); err != nil {
		return err
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

	resp, err := o.client.Signup(context.Background(), api.SignupRequest{
		Name:      form.Name,
		Email:     form.Email,
		Password:  form.Password,
		SecretKey: form.SecretKey,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	// Signup logs the new admin in immediately
	if err := o.sessions.Set(resp.Token, &resp.Admin); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(o.out, "Admin account created successfully.")
	fmt.Fprintf(o.out, "  Admin: %s (%s)\n", resp.Admin.Name, resp.Admin.Email)

	return nil
}
