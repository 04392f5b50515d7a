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

// orderActions are the actions the backend accepts for orders.
var orderActions = map[string]bool{
	"confirm":  true,
	"cancel":   true,
	"complete": true,
}

// ordersAPI is the slice of the API client the order commands need
type ordersAPI interface {
	guard.ProfileFetcher
	ListOrders(ctx context.Context, status string) (*api.OrderList, error)
	OrderAction(ctx context.Context, id, action string) error
}

type ordersOptions struct {
	client   ordersAPI
	sessions session.Store
	out      io.Writer
}

// OrdersOption configures the order run functions for testing
type OrdersOption func(*ordersOptions)

func WithOrdersClient(c ordersAPI) OrdersOption {
	return func(o *ordersOptions) { o.client = c }
}

func WithOrdersSessions(s session.Store) OrdersOption {
	return func(o *ordersOptions) { o.sessions = s }
}

func WithOrdersOutput(w io.Writer) OrdersOption {
	return func(o *ordersOptions) { o.out = w }
}

func (o *ordersOptions) ensure(envName string) error {
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

// NewOrdersCmd creates the orders command group
func NewOrdersCmd() *cobra.Command {
	var status, envName string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Track and manage marketplace orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersList(envName, status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "Filter by order status")
	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	cmd.AddCommand(newOrdersActionCmd())

	return cmd
}

func newOrdersActionCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "action <order-id> <confirm|cancel|complete>",
		Short: "Apply an action to an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersAction(envName, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "Environment name from kisansetu.json")

	return cmd
}

func runOrdersList(envName, status string, opts ...OrdersOption) error {
	o := &ordersOptions{out: os.Stdout}
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

	list, err := o.client.ListOrders(ctx, status)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	if len(list.Orders) == 0 {
		fmt.Fprintln(o.out, "No orders found.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tBUYER\tSELLER\tITEMS\tTOTAL\tPAYMENT\tSTATUS")
	for _, ord := range list.Orders {
		ref := ord.OrderID
		if ref == "" {
			ref = ord.ID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t₹%.2f\t%s\t%s\n",
			ref,
			ord.Buyer.Name,
			ord.Seller.Name,
			len(ord.Items),
			ord.Total,
			ord.PaymentStatus,
			ord.Status,
		)
	}
	w.Flush()

	return nil
}

func runOrdersAction(envName, id, action string, opts ...OrdersOption) error {
	o := &ordersOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if !orderActions[action] {
		return fmt.Errorf("invalid action '%s': must be one of confirm, cancel, complete", action)
	}

	if err := o.ensure(envName); err != nil {
		return err
	}

	ctx := context.Background()
	if err := guard.Check(ctx, o.sessions, o.client); err != nil {
		return err
	}

	if err := o.client.OrderAction(ctx, id, action); err != nil {
		return fmt.Errorf("failed to %s order: %w", action, err)
	}

	fmt.Fprintf(o.out, "Order %s %s.\n", id, pastTense(action))
	return nil
}
