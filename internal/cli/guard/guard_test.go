package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisansetu/kisanctl/internal/cli/session"
)

// fakeFetcher counts profile fetches so tests can assert no network call happened
type fakeFetcher struct {
	calls   int
	profile *session.Profile
	err     error
}

func (f *fakeFetcher) Profile(ctx context.Context) (*session.Profile, error) {
	f.calls++
	return f.profile, f.err
}

func TestCheck_NoTokenFailsWithoutNetworkCall(t *testing.T) {
	sessions := session.NewMemory()
	fetcher := &fakeFetcher{profile: &session.Profile{Name: "Admin"}}

	err := Check(context.Background(), sessions, fetcher)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.Zero(t, fetcher.calls, "guard must not call the backend when no token is stored")
}

func TestCheck_FetchFailureClearsSession(t *testing.T) {
	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("stale", &session.Profile{Name: "Admin"}))

	fetcher := &fakeFetcher{err: errors.New("connection refused")}

	err := Check(context.Background(), sessions, fetcher)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	token, terr := sessions.Token()
	require.NoError(t, terr)
	assert.Empty(t, token)
	assert.Nil(t, sessions.Profile())
}

func TestCheck_EmptyProfileClearsSession(t *testing.T) {
	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("tok", &session.Profile{Name: "Admin"}))

	fetcher := &fakeFetcher{profile: nil}

	err := Check(context.Background(), sessions, fetcher)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	token, terr := sessions.Token()
	require.NoError(t, terr)
	assert.Empty(t, token)
}

func TestCheck_ValidSessionPassesAndRefreshesProfile(t *testing.T) {
	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("tok", &session.Profile{Name: "Stale Name"}))

	fetcher := &fakeFetcher{profile: &session.Profile{Name: "Fresh Name", Role: "superadmin"}}

	err := Check(context.Background(), sessions, fetcher)

	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	token, terr := sessions.Token()
	require.NoError(t, terr)
	assert.Equal(t, "tok", token)

	profile := sessions.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "Fresh Name", profile.Name)
}

func TestCheck_RerunsValidationOnEveryCall(t *testing.T) {
	sessions := session.NewMemory()
	require.NoError(t, sessions.Set("tok", &session.Profile{Name: "Admin"}))

	fetcher := &fakeFetcher{profile: &session.Profile{Name: "Admin"}}

	require.NoError(t, Check(context.Background(), sessions, fetcher))
	require.NoError(t, Check(context.Background(), sessions, fetcher))

	// No caching of a prior pass: each check is a fresh round-trip.
	assert.Equal(t, 2, fetcher.calls)
}
