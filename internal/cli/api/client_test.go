package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

func TestDo_NoTokenSendsNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(DashboardStats{})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	_, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.False(t, hadAuth, "expected no Authorization header, got %q", gotAuth)
}

func TestDo_StoredTokenSentAsBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(DashboardStats{})
	}))
	defer server.Close()

	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("abc123", &session.Profile{Name: "Admin"}))

	client := New(server.URL, sessions)

	_, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestDo_SetsRequestID(t *testing.T) {
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(DashboardStats{})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	_, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
}

func TestDo_UnauthorizedMarksAuthExpiredWithoutTouchingSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	}))
	defer server.Close()

	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("stale", &session.Profile{Name: "Admin"}))

	client := New(server.URL, sessions)

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthExpired))
	assert.Equal(t, "token expired", err.Error())

	// The wrapper flags the outcome; clearing is the coordinator's job.
	token, terr := sessions.Token()
	require.NoError(t, terr)
	assert.Equal(t, "stale", token)
	assert.NotNil(t, sessions.Profile())
}

func TestDo_NonAuthFailureLeavesSessionUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "database unavailable"}`))
	}))
	defer server.Close()

	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("valid", &session.Profile{Name: "Admin"}))

	client := New(server.URL, sessions)

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAuthExpired))
	assert.Equal(t, "database unavailable", err.Error())

	token, terr := sessions.Token()
	require.NoError(t, terr)
	assert.Equal(t, "valid", token)
}

func TestDo_ErrorMessageFallsBackToGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.Equal(t, "an error occurred", err.Error())
}

func TestDo_TimeoutIsReportedAsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(DashboardStats{})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())
	client.SetTimeout(50 * time.Millisecond)

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestDo_ExactlyOneOfPayloadAndError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr bool
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(DashboardStats{TotalUsers: 7})
			},
		},
		{
			name: "backend rejection",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"message": "invalid action"}`))
			},
			wantErr: true,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := New(server.URL, session.NewMemory())

			stats, err := client.DashboardStats(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, stats)
			} else {
				require.NoError(t, err)
				require.NotNil(t, stats)
				assert.Equal(t, 7, stats.TotalUsers)
			}
		})
	}
}

func TestProfile_EmptyPayloadIsNilProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("tok", nil))

	client := New(server.URL, sessions)

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestLogin_DecodesTokenAndProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/admin/login" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "admin@x.com" || creds.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token": "abc", "admin": {"name": "Admin", "email": "admin@x.com", "role": "superadmin"}}`))
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	resp, err := client.Login(context.Background(), "admin@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, "Admin", resp.Admin.Name)
	assert.Equal(t, "superadmin", resp.Admin.Role)
}

func TestListUsers_FiltersSkipAllAndEmpty(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(UserList{})
	}))
	defer server.Close()

	client := New(server.URL, session.NewMemory())

	_, err := client.ListUsers(context.Background(), "farmer", "all", "")
	require.NoError(t, err)
	assert.Equal(t, "role=farmer", gotQuery)
}
