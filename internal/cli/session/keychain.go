package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kisansetu/kisanctl/internal/cli/userconfig"
)

const profileFileName = "profile.json"

// Keychain is the durable Store implementation: the token lives in the OS
// keyring, the profile snapshot in ~/.config/kisansetu/profile.json. Writes
// are serialized so a logout and an expired-session clear cannot interleave.
type Keychain struct {
	mu     sync.Mutex
	dir    string
	tokens TokenStore
}

// Open builds a Keychain over an explicit profile directory and token store.
func Open(dir string, tokens TokenStore) *Keychain {
	return &Keychain{dir: dir, tokens: tokens}
}

// Default returns the Keychain backed by the user's config directory and the
// OS keyring.
func Default() (*Keychain, error) {
	dir, err := userconfig.Dir()
	if err != nil {
		return nil, err
	}
	return Open(dir, keyringTokens{}), nil
}

func (k *Keychain) profilePath() string {
	return filepath.Join(k.dir, profileFileName)
}

// Set persists the token and the profile snapshot together.
func (k *Keychain) Set(token string, profile *Profile) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.tokens.Save(token); err != nil {
		return err
	}

	if err := os.MkdirAll(k.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(k.profilePath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	return nil
}

// Token returns the stored bearer token, or empty string if none exists.
func (k *Keychain) Token() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.tokens.Load()
}

// Profile reads the stored snapshot. A missing or unparseable file is
// treated as no profile.
func (k *Keychain) Profile() *Profile {
	k.mu.Lock()
	defer k.mu.Unlock()

	data, err := os.ReadFile(k.profilePath())
	if err != nil {
		return nil
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}

	return &profile
}

// Clear removes both entries. Calling it with no session stored is a no-op.
func (k *Keychain) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.tokens.Delete(); err != nil {
		return err
	}

	if err := os.Remove(k.profilePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profile file: %w", err)
	}

	return nil
}
