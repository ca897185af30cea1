package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/config"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tmscli configuration",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.ConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("tmscli initialized!\n")
	fmt.Printf("Config: %s\n", configPath)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("1. Edit %s if your TMS server runs elsewhere\n", configPath)
	fmt.Printf("2. Run 'tmscli login' to sign in\n")
	fmt.Printf("3. Run 'tmscli dashboard' to open the dashboard\n")

	return nil
}
