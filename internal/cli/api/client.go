package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/kisansetu/kisanctl/internal/cli/session"
	"github.com/kisansetu/kisanctl/internal/config"
)

// Sentinel outcomes callers branch on with errors.Is. ErrAuthExpired is
// raised by the wrapper but acted on (session clear, login hint) by the
// top-level command runner only.
var (
	ErrAuthExpired = errors.New("authentication expired")
	ErrTimeout     = errors.New("request timed out")
)

// genericErrorMessage is the last-resort message when neither the backend
// nor the transport provides one.
const genericErrorMessage = "an error occurred"

// Error is the normalized failure shape for every backend call.
type Error struct {
	Status  int    // HTTP status, 0 for transport failures
	Message string // human-readable, backend message preferred
	err     error  // wrapped sentinel or transport error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericErrorMessage
}

func (e *Error) Unwrap() error {
	return e.err
}

// Client represents an HTTP client for the KisanSetu admin API
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
}

// New creates a new API client. Every request reads the bearer token from
// the given session store; an empty store sends unauthenticated requests.
func New(baseURL string, sessions session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.DefaultRequestTimeout,
		},
		sessions: sessions,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetTimeout overrides the per-request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// do is the single request path for every endpoint method. It attaches the
// bearer token when one is stored, decodes a 2xx body into out, and
// normalizes every failure into *Error. Exactly one of (decoded out,
// returned error) holds for each call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("failed to encode request: %v", err), err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &Error{Message: fmt.Sprintf("failed to create request: %v", err), err: err}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", ulid.Make().String())

	// No token means the request goes out unauthenticated; protected
	// endpoints will answer 401.
	if token, terr := c.sessions.Token(); terr == nil && token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	log.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &Error{Message: "request timed out", err: ErrTimeout}
		}
		return &Error{Message: err.Error(), err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("failed to read response: %v", err), err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(data)}
		if resp.StatusCode == http.StatusUnauthorized {
			apiErr.err = ErrAuthExpired
		}
		log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("api error")
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Message: fmt.Sprintf("failed to decode response: %v", err), err: err}
		}
	}

	return nil
}

// errorMessage pulls the backend's structured message out of an error body,
// falling back to a generic string.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return genericErrorMessage
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
