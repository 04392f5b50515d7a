package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/session"
)

type mockPartnersClient struct {
	verifyCalls int
	lastID      string
	lastAction  string

	list    *api.PartnerList
	details *api.PartnerDetails
}

func (m *mockPartnersClient) Profile(ctx context.Context) (*session.Profile, error) {
	return &session.Profile{Name: "Admin"}, nil
}

func (m *mockPartnersClient) ListPartners(ctx context.Context, status string) (*api.PartnerList, error) {
	return m.list, nil
}

func (m *mockPartnersClient) PartnerDetails(ctx context.Context, id string) (*api.PartnerDetails, error) {
	m.lastID = id
	return m.details, nil
}

func (m *mockPartnersClient) VerifyPartner(ctx context.Context, id, action string) error {
	m.verifyCalls++
	m.lastID = id
	m.lastAction = action
	return nil
}

func TestPartnersList_RendersTable(t *testing.T) {
	mock := &mockPartnersClient{
		list: &api.PartnerList{
			Partners: []api.Partner{
				{
					ID:              "d1",
					Name:            "Speedy Logistics",
					Email:           "speedy@example.com",
					Phone:           "9876543210",
					IsApproved:      false,
					ApplicationDate: "2026-08-01",
				},
			},
		},
	}

	var output bytes.Buffer

	err := runPartnersList("", "pending",
		WithPartnersClient(mock),
		WithPartnersSessions(seededSessions(t)),
		WithPartnersOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	for _, want := range []string{"Speedy Logistics", "speedy@example.com", "2026-08-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestPartnersDetails_MasksAccountNumber(t *testing.T) {
	mock := &mockPartnersClient{
		details: &api.PartnerDetails{
			Partner: api.Partner{
				ID:    "d1",
				Name:  "Speedy Logistics",
				Email: "speedy@example.com",
				Phone: "9876543210",
			},
			Vehicle: api.Vehicle{Type: "truck", Number: "MH12AB1234", Capacity: "500kg"},
			ServiceArea: api.ServiceArea{
				Cities:      []string{"Pune", "Mumbai"},
				MaxDistance: 150,
			},
			BankDetails: api.BankDetails{
				AccountHolderName: "Speedy Logistics Pvt Ltd",
				AccountNumber:     "123456789012",
				IFSCCode:          "HDFC0001234",
			},
		},
	}

	var output bytes.Buffer

	err := runPartnersDetails("", "d1",
		WithPartnersClient(mock),
		WithPartnersSessions(seededSessions(t)),
		WithPartnersOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	if !strings.Contains(out, "account ending 9012") {
		t.Errorf("expected masked account number, got: %s", out)
	}
	if strings.Contains(out, "123456789012") {
		t.Errorf("expected full account number to be hidden, got: %s", out)
	}
	if !strings.Contains(out, "Pune, Mumbai") {
		t.Errorf("expected service area cities, got: %s", out)
	}
	if !strings.Contains(out, "MH12AB1234") {
		t.Errorf("expected vehicle number, got: %s", out)
	}
}

func TestPartnersVerify_SendsAction(t *testing.T) {
	mock := &mockPartnersClient{}

	var output bytes.Buffer

	err := runPartnersVerify("", "d1", "reject",
		WithPartnersClient(mock),
		WithPartnersSessions(seededSessions(t)),
		WithPartnersOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if mock.lastID != "d1" || mock.lastAction != "reject" {
		t.Errorf("expected verify(d1, reject), got (%q, %q)", mock.lastID, mock.lastAction)
	}
	if !strings.Contains(output.String(), "Partner d1 rejected.") {
		t.Errorf("expected confirmation, got: %s", output.String())
	}
}

func TestPartnersVerify_InvalidActionStaysLocal(t *testing.T) {
	mock := &mockPartnersClient{}

	err := runPartnersVerify("", "d1", "suspend",
		WithPartnersClient(mock),
		WithPartnersSessions(seededSessions(t)),
		WithPartnersOutput(&bytes.Buffer{}),
	)
	if err == nil {
		t.Fatal("expected invalid action error, got nil")
	}
	if mock.verifyCalls != 0 {
		t.Errorf("expected no backend call for invalid action, got %d", mock.verifyCalls)
	}
}
