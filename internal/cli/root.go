package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kisansetu/kisanctl/internal/cli/api"
	"github.com/kisansetu/kisanctl/internal/cli/commands"
	"github.com/kisansetu/kisanctl/internal/cli/session"
	"github.com/kisansetu/kisanctl/internal/config"
	"github.com/kisansetu/kisanctl/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "kisanctl",
	Short: "KisanSetu - Admin console for the agricultural marketplace",
	Long: `KisanSetu admin console.

Moderate production listings, verify delivery partners, manage users and
orders, and review analytics on a KisanSetu backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kisanctl version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectEnvCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewSignupCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewSessionCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
	rootCmd.AddCommand(commands.NewProductionsCmd())
	rootCmd.AddCommand(commands.NewPartnersCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewOrdersCmd())
	rootCmd.AddCommand(commands.NewAnalyticsCmd())
}

// Execute runs the root command
func Execute() error {
	if cfg, err := config.Load(); err == nil {
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	}

	if err := rootCmd.Execute(); err != nil {
		sessions, serr := session.Default()
		if serr != nil {
			sessions = nil
		}
		reportError(err, sessions, os.Stderr)
		return err
	}
	return nil
}

// reportError is the single place expired sessions are acted on. The API
// wrapper only marks a 401 with ErrAuthExpired; clearing the stored session
// and pointing the admin back at login happens here, whichever command made
// the call.
func reportError(err error, sessions session.Store, stderr io.Writer) {
	if errors.Is(err, api.ErrAuthExpired) {
		if sessions != nil {
			_ = sessions.Clear()
		}
		fmt.Fprintln(stderr, "Your session has expired. Run 'kisanctl login' to sign in again.")
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
