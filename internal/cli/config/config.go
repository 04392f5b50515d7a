package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFileName = "kisansetu.json"

// Environment is a named backend the console can talk to.
type Environment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Config represents the CLI configuration file
type Config struct {
	Environments []Environment `json:"environments"`
}

// DefaultConfig returns a default configuration with an example environment
func DefaultConfig() *Config {
	return &Config{
		Environments: []Environment{
			{
				Name: "local",
				URL:  "http://localhost:5000/api",
			},
		},
	}
}

// FindConfigFile searches for kisansetu.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find kisansetu.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory", ConfigFileName, currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetEnvironmentByName returns an environment by its name
func (c *Config) GetEnvironmentByName(name string) (*Environment, error) {
	for i := range c.Environments {
		if c.Environments[i].Name == name {
			return &c.Environments[i], nil
		}
	}
	return nil, fmt.Errorf("environment '%s' not found", name)
}

// GetDefaultEnvironment returns the first environment in the list
func (c *Config) GetDefaultEnvironment() (*Environment, error) {
	if len(c.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in %s", ConfigFileName)
	}
	return &c.Environments[0], nil
}
