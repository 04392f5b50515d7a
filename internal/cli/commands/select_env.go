package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/config"
	"github.com/kisansetu/kisanctl/internal/cli/envselect"
	"github.com/kisansetu/kisanctl/internal/cli/userconfig"
)

// NewSelectEnvCmd creates the select-env command
func NewSelectEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-env [name]",
		Short: "Select the backend environment to use for commands",
		Long: `Select the backend environment to use for commands.

If no name is provided, an interactive prompt will be shown.

Examples:
  $ kisanctl select-env             # Interactive selection
  $ kisanctl select-env production  # Select by name`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runSelectEnv(name)
		},
	}
}

func runSelectEnv(name string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'kisanctl init' to create a configuration file", err)
	}

	var env *config.Environment

	if name != "" {
		env, err = cfg.GetEnvironmentByName(name)
		if err != nil {
			return err
		}
	} else {
		env, err = envselect.PromptEnvironmentSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedEnvironment(env.Name); err != nil {
		return fmt.Errorf("failed to save selected environment: %w", err)
	}

	fmt.Printf("Selected environment: %s (%s)\n", env.Name, env.URL)
	return nil
}
