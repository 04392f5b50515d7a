package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <name> <api-url>",
		Short: "Add a backend environment to kisansetu.json",
		Args:  cobra.ExactArgs(2),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	name, apiURL := args[0], args[1]

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Printf("Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{}
		isNewConfig = true
	}

	for _, env := range cfg.Environments {
		if env.Name == name {
			return fmt.Errorf("environment '%s' already exists in %s", name, config.ConfigFileName)
		}
	}

	cfg.Environments = append(cfg.Environments, config.Environment{
		Name: name,
		URL:  apiURL,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("Created ./%s with environment %s (%s)\n", config.ConfigFileName, name, apiURL)
	} else {
		fmt.Printf("Added environment %s (%s) to ./%s\n", name, apiURL, config.ConfigFileName)
	}

	return nil
}
