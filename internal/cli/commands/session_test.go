package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "admin-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestSessionCommand_NoSession(t *testing.T) {
	var output bytes.Buffer

	err := runSession(
		WithSessionStore(session.NewMemory()),
		WithSessionOutput(&output),
	)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !strings.Contains(output.String(), "No active session") {
		t.Errorf("expected no-session message, got: %s", output.String())
	}
}

func TestSessionCommand_ShowsProfileAndExpiry(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	sessions := session.NewMemory()
	err := sessions.Set(signedTestToken(t, expiry), &session.Profile{
		Name:  "Admin User",
		Email: "admin@kisansetu.com",
		Role:  "superadmin",
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	var output bytes.Buffer

	if err := runSession(
		WithSessionStore(sessions),
		WithSessionOutput(&output),
	); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	for _, want := range []string{
		"Active session",
		"Admin User",
		"admin@kisansetu.com",
		"superadmin",
		expiry.Format(time.RFC3339),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestSessionCommand_OpaqueTokenSkipsExpiry(t *testing.T) {
	sessions := session.NewMemory()
	if err := sessions.Set("not-a-jwt", &session.Profile{Name: "Admin"}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	var output bytes.Buffer

	if err := runSession(
		WithSessionStore(sessions),
		WithSessionOutput(&output),
	); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if strings.Contains(output.String(), "Token expires") {
		t.Errorf("expected no expiry line for an opaque token, got: %s", output.String())
	}
}
