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

// productionsAPI is the slice of the API client the productions commands need
type productionsAPI interface {
	guard.ProfileFetcher
	ListProductions(ctx context.Context, status, category string) (*api.ProductionList, error)
	VerifyProduction(ctx context.Context, id, action string) (*api.VerifyResponse, error)
}

type productionsOptions struct {
	client   productionsAPI
	sessions session.Store
	out      io.Writer
}

// ProductionsOption configures the productions run functions for testing
type ProductionsOption func(*productionsOptions)

func WithProductionsClient(c productionsAPI) ProductionsOption {
	return func(o *productionsOptions) { o.client = c }
}

func WithProductionsSessions(s session.Store) ProductionsOption {
	return func(o *productionsOptions) { o.sessions = s }
}

func WithProductionsOutput(w io.Writer) ProductionsOption {
	return func(o *productionsOptions) { o.out = w }
}

func (o *productionsOptions) ensure(envName string) error {
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

// NewProductionsCmd creates the productions command group
func NewProductionsCmd() *cobra.Command {
	var status, category, envName string

	cmd := &cobra.Command{
		Use:   "productions",
		Short: "Review farmer production listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductionsList(envName, status, category)
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "Filter by status (pending, approved, rejected)")
	cmd.Flags().StringVar(&category, "category", "all", "Filter by crop category")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	cmd.AddCommand(newProductionsVerifyCmd())

	return cmd
}

func newProductionsVerifyCmd() *cobra.Command {
	var action, envName string

	cmd := &cobra.Command{
		Use:   "verify <production-id>",
		Short: "Approve or reject a production listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductionsVerify(envName, args[0], action)
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Verification action: approve or reject")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runProductionsList(envName, status, category string, opts ...ProductionsOption) error {
	o := &productionsOptions{out: os.Stdout}
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

	list, err := o.client.ListProductions(ctx, status, category)
	if err != nil {
		return fmt.Errorf("failed to list productions: %w", err)
	}

	if len(list.Productions) == 0 {
		fmt.Fprintln(o.out, "No production listings found.")
		return nil
	}

	fmt.Fprintf(o.out, "Production listings (total %d, pending %d, approved %d, rejected %d):\n\n",
		list.Total, list.Pending, list.Approved, list.Rejected)

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCROP\tQTY (KG)\tGRADE\tFARMER\tSTATUS\tHARVEST")
	for _, p := range list.Productions {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.CropType,
			p.Quantity,
			p.QualityGrade,
			p.Farmer.Name,
			p.Status,
			p.ExpectedHarvestDate,
		)
	}
	w.Flush()

	return nil
}

func runProductionsVerify(envName, id, action string, opts ...ProductionsOption) error {
	o := &productionsOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	// Malformed actions never leave the client
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

	resp, err := o.client.VerifyProduction(ctx, id, action)
	if err != nil {
		return fmt.Errorf("failed to %s production: %w", action, err)
	}

	if resp.Message != "" {
		fmt.Fprintln(o.out, resp.Message)
	} else {
		fmt.Fprintf(o.out, "Production %s %s.\n", id, pastTense(action))
	}

	return nil
}
