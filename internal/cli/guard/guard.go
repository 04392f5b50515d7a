// Package guard gates every protected command behind a live session check.
// Each invocation re-validates the stored token against the backend; a pass
// is never cached, so a revoked token can never reach a protected screen.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// ErrNotAuthenticated is returned for every failure path: missing token,
// invalid token, or an unreachable backend. They all converge on the same
// recovery action (clear the session, log in again).
var ErrNotAuthenticated = errors.New("not authenticated")

// ProfileFetcher validates the stored token against the backend. A nil
// profile with nil error means the backend returned an empty payload.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*session.Profile, error)
}

// Check runs the auth gate. With no stored token it fails immediately
// without a network call. With one, it fetches the admin profile; any
// failure or empty payload clears the session. On success the stored profile
// snapshot is refreshed from the backend's answer.
func Check(ctx context.Context, sessions session.Store, backend ProfileFetcher) error {
	token, err := sessions.Token()
	if err != nil || token == "" {
		return fmt.Errorf("%w: run 'kisanctl login' first", ErrNotAuthenticated)
	}

	profile, err := backend.Profile(ctx)
	if err != nil || profile == nil {
		_ = sessions.Clear()
		return fmt.Errorf("%w: session expired or invalid, run 'kisanctl login' again", ErrNotAuthenticated)
	}

	// Keep the local snapshot current; a persistence hiccup here must not
	// block an otherwise valid session.
	_ = sessions.Set(token, profile)

	return nil
}
