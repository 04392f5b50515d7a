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

var analyticsRanges = map[string]bool{
	"7days":  true,
	"30days": true,
	"90days": true,
}

// analyticsAPI is the slice of the API client the analytics command needs
type analyticsAPI interface {
	guard.ProfileFetcher
	Analytics(ctx context.Context, timeRange, userType string) (*api.Analytics, error)
}

type analyticsOptions struct {
	client   analyticsAPI
	sessions session.Store
	out      io.Writer
}

// AnalyticsOption configures runAnalytics for testing
type AnalyticsOption func(*analyticsOptions)

func WithAnalyticsClient(c analyticsAPI) AnalyticsOption {
	return func(o *analyticsOptions) { o.client = c }
}

func WithAnalyticsSessions(s session.Store) AnalyticsOption {
	return func(o *analyticsOptions) { o.sessions = s }
}

func WithAnalyticsOutput(w io.Writer) AnalyticsOption {
	return func(o *analyticsOptions) { o.out = w }
}

// NewAnalyticsCmd creates the analytics command
func NewAnalyticsCmd() *cobra.Command {
	var timeRange, userType, envName string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show platform analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalytics(envName, timeRange, userType)
		},
	}

	cmd.Flags().StringVar(&timeRange, "range", "30days", "Time range: 7days, 30days or 90days")
	cmd.Flags().StringVar(&userType, "user-type", "all", "Filter by user type")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runAnalytics(envName, timeRange, userType string, opts ...AnalyticsOption) error {
	o := &analyticsOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if !analyticsRanges[timeRange] {
		return fmt.Errorf("invalid range '%s': must be 7days, 30days or 90days", timeRange)
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

	analytics, err := o.client.Analytics(ctx, timeRange, userType)
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	fmt.Fprintf(o.out, "Analytics (%s)\n\n", timeRange)

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total users\t%d\n", analytics.Overview.TotalUsers)
	fmt.Fprintf(w, "Active users\t%d\n", analytics.Overview.ActiveUsers)
	fmt.Fprintf(w, "Total orders\t%d\n", analytics.Overview.TotalOrders)
	fmt.Fprintf(w, "Total revenue\t₹%.2f\n", analytics.Overview.TotalRevenue)
	w.Flush()

	fmt.Fprintln(o.out, "\nOrders by status")
	w = tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Pending\t%d\n", analytics.OrderStats.Pending)
	fmt.Fprintf(w, "Processing\t%d\n", analytics.OrderStats.Processing)
	fmt.Fprintf(w, "Completed\t%d\n", analytics.OrderStats.Completed)
	fmt.Fprintf(w, "Cancelled\t%d\n", analytics.OrderStats.Cancelled)
	w.Flush()

	if len(analytics.TopProducts) > 0 {
		fmt.Fprintln(o.out, "\nTop products")
		w = tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tSALES\tREVENUE")
		for _, p := range analytics.TopProducts {
			fmt.Fprintf(w, "%s\t%d\t₹%.2f\n", p.Name, p.Sales, p.Revenue)
		}
		w.Flush()
	}

	return nil
}
