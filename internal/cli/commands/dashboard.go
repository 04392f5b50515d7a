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

// dashboardAPI is the slice of the API client the dashboard command needs
type dashboardAPI interface {
	guard.ProfileFetcher
	DashboardStats(ctx context.Context) (*api.DashboardStats, error)
}

type dashboardOptions struct {
	client   dashboardAPI
	sessions session.Store
	out      io.Writer
}

// DashboardOption configures runDashboard for testing
type DashboardOption func(*dashboardOptions)

func WithDashboardClient(c dashboardAPI) DashboardOption {
	return func(o *dashboardOptions) { o.client = c }
}

func WithDashboardSessions(s session.Store) DashboardOption {
	return func(o *dashboardOptions) { o.sessions = s }
}

func WithDashboardOutput(w io.Writer) DashboardOption {
	return func(o *dashboardOptions) { o.out = w }
}

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show platform overview counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(envName)
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runDashboard(envName string, opts ...DashboardOption) error {
	o := &dashboardOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
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

	ctx := context.Background()
	if err := guard.Check(ctx, o.sessions, o.client); err != nil {
		return err
	}

	stats, err := o.client.DashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	fmt.Fprintln(o.out, "KisanSetu platform overview")
	fmt.Fprintln(o.out)

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(w, "Farmers\t%d\n", stats.Farmers)
	fmt.Fprintf(w, "Buyers\t%d\n", stats.Buyers)
	fmt.Fprintf(w, "Sellers\t%d\n", stats.Sellers)
	fmt.Fprintf(w, "Delivery partners\t%d\n", stats.DeliveryPartners)
	fmt.Fprintf(w, "Pending verifications\t%d\n", stats.PendingVerifications)
	fmt.Fprintf(w, "Approved verifications\t%d\n", stats.ApprovedVerifications)
	fmt.Fprintf(w, "Rejected verifications\t%d\n", stats.RejectedVerifications)
	fmt.Fprintf(w, "Total orders\t%d\n", stats.TotalOrders)
	fmt.Fprintf(w, "Total revenue\t₹%.2f\n", stats.TotalRevenue)
	fmt.Fprintf(w, "Crops listed\t%d\n", stats.TotalCrops)
	fmt.Fprintf(w, "Products listed\t%d\n", stats.TotalProducts)
	w.Flush()

	return nil
}
