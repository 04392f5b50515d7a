package commands

import (
	"fmt"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/config"
	"github.com/kisansetu/kisanctl/internal/cli/envselect"
	"github.com/kisansetu/kisanctl/internal/cli/session"
	appconfig "github.com/kisansetu/kisanctl/internal/config"
)

// appContext bundles the collaborators every command needs: the API client
// and the durable session store behind it.
type appContext struct {
	client   *api.Client
	sessions session.Store
}

// newAppContext wires the default collaborators. Tests never call this; they
// inject fakes through each command's functional options instead.
func newAppContext(envName string) (*appContext, error) {
	sessions, err := session.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	cfg, err := appconfig.Load()
	if err != nil {
		return nil, err
	}

	baseURL, err := resolveBaseURL(cfg, envName)
	if err != nil {
		return nil, err
	}

	client := api.New(baseURL, sessions)
	client.SetTimeout(cfg.API.Timeout)

	return &appContext{client: client, sessions: sessions}, nil
}

// resolveBaseURL picks the backend base URL: the KISANSETU_API_URL override
// wins, then the environment resolved from kisansetu.json, then the local
// development fallback.
func resolveBaseURL(cfg *appconfig.Config, envName string) (string, error) {
	if cfg.API.URL != "" {
		return cfg.API.URL, nil
	}

	project, err := config.LoadFromCurrentDir()
	if err != nil {
		if envName != "" {
			return "", fmt.Errorf("failed to load config: %w\nRun 'kisanctl init' to create a configuration file", err)
		}
		return appconfig.DefaultAPIURL, nil
	}

	env, err := envselect.ResolveEnvironment(project, envName)
	if err != nil {
		return "", err
	}

	if env.URL == "" {
		return "", fmt.Errorf("environment '%s' has no URL. Please edit %s", env.Name, config.ConfigFileName)
	}

	return env.URL, nil
}

// pastTense renders a moderation action for confirmation messages
func pastTense(action string) string {
	switch action {
	case "approve", "activate", "deactivate", "reactivate", "complete", "delete":
		return action + "d"
	default:
		return action + "ed"
	}
}
