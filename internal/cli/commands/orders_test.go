package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/session"
)

type mockOrdersClient struct {
	actionCalls int

	lastStatus string
	lastID     string
	lastAction string

	list *api.OrderList
}

func (m *mockOrdersClient) Profile(ctx context.Context) (*session.Profile, error) {
	return &session.Profile{Name: "Admin"}, nil
}

func (m *mockOrdersClient) ListOrders(ctx context.Context, status string) (*api.OrderList, error) {
	m.lastStatus = status
	return m.list, nil
}

func (m *mockOrdersClient) OrderAction(ctx context.Context, id, action string) error {
	m.actionCalls++
	m.lastID = id
	m.lastAction = action
	return nil
}

func TestOrdersList_RendersTable(t *testing.T) {
	mock := &mockOrdersClient{
		list: &api.OrderList{
			Orders: []api.Order{
				{
					ID:            "o1",
					OrderID:       "ORD-1001",
					Buyer:         api.NamedRef{Name: "Asha"},
					Seller:        api.NamedRef{Name: "Ravi"},
					Items:         []api.OrderItem{{Name: "wheat", Quantity: 2, Price: 50}},
					Total:         100,
					PaymentStatus: "paid",
					Status:        "pending",
				},
			},
		},
	}

	var output bytes.Buffer

	err := runOrdersList("", "pending",
		WithOrdersClient(mock),
		WithOrdersSessions(seededSessions(t)),
		WithOrdersOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if mock.lastStatus != "pending" {
		t.Errorf("expected status filter forwarded, got %q", mock.lastStatus)
	}

	out := output.String()
	for _, want := range []string{"ORD-1001", "Asha", "Ravi", "paid", "pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestOrdersList_FallsBackToDocumentID(t *testing.T) {
	mock := &mockOrdersClient{
		list: &api.OrderList{
			Orders: []api.Order{{ID: "651f1e2a9c", Status: "pending"}},
		},
	}

	var output bytes.Buffer

	err := runOrdersList("", "all",
		WithOrdersClient(mock),
		WithOrdersSessions(seededSessions(t)),
		WithOrdersOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !strings.Contains(output.String(), "651f1e2a9c") {
		t.Errorf("expected document id fallback, got: %s", output.String())
	}
}

func TestOrdersAction_SendsKnownActions(t *testing.T) {
	for _, action := range []string{"confirm", "cancel", "complete"} {
		t.Run(action, func(t *testing.T) {
			mock := &mockOrdersClient{}

			var output bytes.Buffer

			err := runOrdersAction("", "o1", action,
				WithOrdersClient(mock),
				WithOrdersSessions(seededSessions(t)),
				WithOrdersOutput(&output),
			)
			if err != nil {
				t.Fatalf("expected success, got error: %v", err)
			}
			if mock.lastID != "o1" || mock.lastAction != action {
				t.Errorf("expected action(o1, %s), got (%q, %q)", action, mock.lastID, mock.lastAction)
			}
		})
	}
}

func TestOrdersAction_InvalidActionStaysLocal(t *testing.T) {
	mock := &mockOrdersClient{}

	err := runOrdersAction("", "o1", "refund",
		WithOrdersClient(mock),
		WithOrdersSessions(seededSessions(t)),
		WithOrdersOutput(&bytes.Buffer{}),
	)
	if err == nil {
		t.Fatal("expected invalid action error, got nil")
	}
	if mock.actionCalls != 0 {
		t.Errorf("expected no backend call for invalid action, got %d", mock.actionCalls)
	}
}
