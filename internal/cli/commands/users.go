package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/guard"
	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// userActions are the moderation actions the backend accepts for accounts.
var userActions = map[string]bool{
	"suspend":    true,
	"activate":   true,
	"deactivate": true,
	"reactivate": true,
	"delete":     true,
}

// usersAPI is the slice of the API client the user commands need
type usersAPI interface {
	guard.ProfileFetcher
	ListUsers(ctx context.Context, role, status, search string) (*api.UserList, error)
	UserAction(ctx context.Context, id, action string) error
}

type usersOptions struct {
	client   usersAPI
	sessions session.Store
	out      io.Writer
}

// UsersOption configures the user run functions for testing
type UsersOption func(*usersOptions)

func WithUsersClient(c usersAPI) UsersOption {
	return func(o *usersOptions) { o.client = c }
}

func WithUsersSessions(s session.Store) UsersOption {
	return func(o *usersOptions) { o.sessions = s }
}

func WithUsersOutput(w io.Writer) UsersOption {
	return func(o *usersOptions) { o.out = w }
}

func (o *usersOptions) ensure(envName string) error {
	if o.client != nil && o.sessions != nil {
		return nil
	}
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
	return nil
}

// NewUsersCmd creates the users command group
func NewUsersCmd() *cobra.Command {
	var role, status, search, envName string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage marketplace accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersList(envName, role, status, search)
		},
	}

	cmd.Flags().StringVar(&role, "role", "all", "Filter by role (farmer, buyer, seller, delivery_partner)")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by account status")
	cmd.Flags().StringVar(&search, "search", "", "Search by name or email")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	cmd.AddCommand(newUsersActionCmd())

	return cmd
}

func newUsersActionCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "action <user-id> <suspend|activate|deactivate|reactivate|delete>",
		Short: "Apply a moderation action to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersAction(envName, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runUsersList(envName, role, status, search string, opts ...UsersOption) error {
	o := &usersOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.ensure(envName); err != nil {
		return err
	}

	ctx := context.Background()
	if err := guard.Check(ctx, o.sessions, o.client); err != nil {
		return err
	}

	list, err := o.client.ListUsers(ctx, role, status, search)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(list.Users) == 0 {
		fmt.Fprintln(o.out, "No users found.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range list.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			u.ID,
			u.Name,
			u.Email,
			u.Role,
			u.Status,
		)
	}
	w.Flush()

	return nil
}

func runUsersAction(envName, id, action string, opts ...UsersOption) error {
	o := &usersOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if !userActions[action] {
		return fmt.Errorf("invalid action '%s': must be one of suspend, activate, deactivate, reactivate, delete", action)
	}

	if err := o.ensure(envName); err != nil {
		return err
	}

	ctx := context.Background()
	if err := guard.Check(ctx, o.sessions, o.client); err != nil {
		return err
	}

	if err := o.client.UserAction(ctx, id, action); err != nil {
		return fmt.Errorf("failed to %s user: %w", action, err)
	}

	fmt.Fprintf(o.out, "User %s %s.\n", id, pastTense(action))
	return nil
}
