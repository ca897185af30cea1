package commands

import (
	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/config"
)

var logLevelOverride string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tmscli",
		Short: "tmscli - Transport Management System client",
		Long:  `tmscli is a terminal client for the Transport Management System: submit, review, and track transport, refueling, maintenance, and high-cost trip requests.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" {
				return configureLogger(config.DefaultConfig(), logLevelOverride, false)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return configureLogger(cfg, logLevelOverride, cmd.Name() == "dashboard")
		},
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(
		NewInitCmd(),
		NewLoginCmd(),
		NewLogoutCmd(),
		NewWhoamiCmd(),
		NewDashboardCmd(),
		NewRequestsCmd(),
		NewHighCostCmd(),
		NewRefuelingCmd(),
		NewMaintenanceCmd(),
		NewNotificationsCmd(),
		NewVehiclesCmd(),
		NewDepartmentsCmd(),
		NewUsersCmd(),
		NewStatusCmd(),
		NewVersionCmd(),
	)

	return cmd
}
