package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/guard"
	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// partnersAPI is the slice of the API client the partner commands need
type partnersAPI interface {
	guard.ProfileFetcher
	ListPartners(ctx context.Context, status string) (*api.PartnerList, error)
	PartnerDetails(ctx context.Context, id string) (*api.PartnerDetails, error)
	VerifyPartner(ctx context.Context, id, action string) error
}

type partnersOptions struct {
	client   partnersAPI
	sessions session.Store
	out      io.Writer
}

// PartnersOption configures the partner run functions for testing
type PartnersOption func(*partnersOptions)

func WithPartnersClient(c partnersAPI) PartnersOption {
	return func(o *partnersOptions) { o.client = c }
}

func WithPartnersSessions(s session.Store) PartnersOption {
	return func(o *partnersOptions) { o.sessions = s }
}

func WithPartnersOutput(w io.Writer) PartnersOption {
	return func(o *partnersOptions) { o.out = w }
}

func (o *partnersOptions) ensure(envName string) error {
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

// NewPartnersCmd creates the partners command group
func NewPartnersCmd() *cobra.Command {
	var status, envName string

	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Review delivery-partner applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPartnersList(envName, status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "Filter by status (pending, approved)")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	cmd.AddCommand(newPartnersDetailsCmd())
	cmd.AddCommand(newPartnersVerifyCmd())

	return cmd
}

func newPartnersDetailsCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "details <partner-id>",
		Short: "Show a partner's full application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPartnersDetails(envName, args[0])
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func newPartnersVerifyCmd() *cobra.Command {
	var action, envName string

	cmd := &cobra.Command{
		Use:   "verify <partner-id>",
		Short: "Approve or reject a partner application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPartnersVerify(envName, args[0], action)
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Verification action: approve or reject")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runPartnersList(envName, status string, opts ...PartnersOption) error {
	o := &partnersOptions{out: os.Stdout}
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

	list, err := o.client.ListPartners(ctx, status)
	if err != nil {
		return fmt.Errorf("failed to list delivery partners: %w", err)
	}

	if len(list.Partners) == 0 {
		fmt.Fprintln(o.out, "No delivery-partner applications found.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tAPPROVED\tAPPLIED")
	for _, p := range list.Partners {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
			p.ID,
			p.Name,
			p.Email,
			p.Phone,
			p.IsApproved,
			p.ApplicationDate,
		)
	}
	w.Flush()

	return nil
}

func runPartnersDetails(envName, id string, opts ...PartnersOption) error {
	o := &partnersOptions{out: os.Stdout}
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

	p, err := o.client.PartnerDetails(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load partner details: %w", err)
	}

	fmt.Fprintf(o.out, "%s <%s>\n", p.Name, p.Email)
	fmt.Fprintf(o.out, "  Phone: %s\n", p.Phone)
	if p.Address != "" {
		fmt.Fprintf(o.out, "  Address: %s\n", p.Address)
	}
	fmt.Fprintf(o.out, "  Approved: %t\n", p.IsApproved)
	if p.Vehicle.Type != "" {
		fmt.Fprintf(o.out, "  Vehicle: %s %s (capacity %s)\n", p.Vehicle.Type, p.Vehicle.Number, p.Vehicle.Capacity)
	}
	if len(p.ServiceArea.Cities) > 0 {
		fmt.Fprintf(o.out, "  Service area: %s (max %d km)\n",
			strings.Join(p.ServiceArea.Cities, ", "), p.ServiceArea.MaxDistance)
	}
	if p.BankDetails.AccountNumber != "" {
		fmt.Fprintf(o.out, "  Bank: %s, account ending %s, IFSC %s\n",
			p.BankDetails.AccountHolderName,
			lastFour(p.BankDetails.AccountNumber),
			p.BankDetails.IFSCCode,
		)
	}
	if p.Documents.DrivingLicense != "" {
		fmt.Fprintf(o.out, "  Driving license: %s\n", p.Documents.DrivingLicense)
	}

	return nil
}

// lastFour masks an account number down to its final digits
func lastFour(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

func runPartnersVerify(envName, id, action string, opts ...PartnersOption) error {
	o := &partnersOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if action != "approve" && action != "reject" {
		return fmt.Errorf("invalid action '%s': must be approve or reject", action)
	}

	if err := o.ensure(envName); err != nil {
		return err
	}

	ctx := context.Background()
	if err := guard.Check(ctx, o.sessions, o.client); err != nil {
		return err
	}

	if err := o.client.VerifyPartner(ctx, id, action); err != nil {
		return fmt.Errorf("failed to %s partner: %w", action, err)
	}

	fmt.Fprintf(o.out, "Partner %s %s.\n", id, pastTense(action))
	return nil
}
