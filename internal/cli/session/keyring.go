package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service  = "kisanctl"
	tokenKey = "admin-token"
)

// TokenStore abstracts the credential half of the session so tests can swap
// out the OS keyring.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

// keyringTokens stores the bearer token in the OS keychain/credential manager.
type keyringTokens struct{}

func (keyringTokens) Save(token string) error {
	if err := keyring.Set(service, tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (keyringTokens) Load() (string, error) {
	token, err := keyring.Get(service, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (keyringTokens) Delete() error {
	if err := keyring.Delete(service, tokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
