package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// Login authenticates an admin and returns the bearer token with the
// profile snapshot. The caller is responsible for storing the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/admin/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new admin. The backend validates the secret key.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/admin/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile validates the current session against the backend. A nil profile
// with nil error means the backend answered 2xx with an empty payload, which
// callers must treat as an invalid session.
func (c *Client) Profile(ctx context.Context) (*session.Profile, error) {
	var profile session.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/admin/profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	if profile == (session.Profile{}) {
		return nil, nil
	}
	return &profile, nil
}

// DashboardStats fetches the aggregate counts for the dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard-stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListProductions fetches production listings, optionally filtered by status
// and category. Empty or "all" filters are omitted from the query.
func (c *Client) ListProductions(ctx context.Context, status, category string) (*ProductionList, error) {
	query := url.Values{}
	if status != "" && status != "all" {
		query.Set("status", status)
	}
	if category != "" && category != "all" {
		query.Set("category", category)
	}

	var list ProductionList
	if err := c.do(ctx, http.MethodGet, "/admin/productions", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// VerifyProduction approves or rejects a production listing.
func (c *Client) VerifyProduction(ctx context.Context, id, action string) (*VerifyResponse, error) {
	body := struct {
		Action string `json:"action"`
	}{Action: action}

	var resp VerifyResponse
	path := fmt.Sprintf("/admin/productions/%s/verify", id)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPartners fetches delivery-partner applications, optionally filtered by status.
func (c *Client) ListPartners(ctx context.Context, status string) (*PartnerList, error) {
	query := url.Values{}
	if status != "" && status != "all" {
		query.Set("status", status)
	}

	var list PartnerList
	if err := c.do(ctx, http.MethodGet, "/admin/delivery-partners", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// PartnerDetails fetches the extended application record for one partner.
func (c *Client) PartnerDetails(ctx context.Context, id string) (*PartnerDetails, error) {
	var resp partnerDetailsResponse
	path := fmt.Sprintf("/admin/delivery-partners/%s/details", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Partner, nil
}

// VerifyPartner approves or rejects a delivery-partner application.
func (c *Client) VerifyPartner(ctx context.Context, id, action string) error {
	body := struct {
		Action string `json:"action"`
	}{Action: action}

	path := fmt.Sprintf("/admin/delivery-partners/%s/verify", id)
	return c.do(ctx, http.MethodPut, path, nil, body, nil)
}

// ListUsers fetches marketplace accounts filtered by role, status and a
// free-text search term.
func (c *Client) ListUsers(ctx context.Context, role, status, search string) (*UserList, error) {
	query := url.Values{}
	if role != "" && role != "all" {
		query.Set("role", role)
	}
	if status != "" && status != "all" {
		query.Set("status", status)
	}
	if search != "" {
		query.Set("search", search)
	}

	var list UserList
	if err := c.do(ctx, http.MethodGet, "/admin/users", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UserAction applies a moderation action (suspend, activate, deactivate,
// reactivate, delete) to a user.
func (c *Client) UserAction(ctx context.Context, id, action string) error {
	path := fmt.Sprintf("/admin/users/%s/%s", id, action)
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}

// ListOrders fetches orders, optionally filtered by status.
func (c *Client) ListOrders(ctx context.Context, status string) (*OrderList, error) {
	query := url.Values{}
	if status != "" && status != "all" {
		query.Set("status", status)
	}

	var list OrderList
	if err := c.do(ctx, http.MethodGet, "/admin/orders", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// OrderAction applies an order action (confirm, cancel, complete).
func (c *Client) OrderAction(ctx context.Context, id, action string) error {
	path := fmt.Sprintf("/admin/orders/%s/%s", id, action)
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}

// Analytics fetches analytics aggregates for the given time range and user type.
func (c *Client) Analytics(ctx context.Context, timeRange, userType string) (*Analytics, error) {
	query := url.Values{}
	if timeRange != "" {
		query.Set("timeRange", timeRange)
	}
	if userType != "" && userType != "all" {
		query.Set("userType", userType)
	}

	var analytics Analytics
	if err := c.do(ctx, http.MethodGet, "/admin/analytics", query, nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}
