package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/session"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tmscli configuration status",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("=== tmscli Status ===")
	fmt.Println()

	fmt.Printf("Config: %s\n", config.ConfigPath())
	if _, err := os.Stat(config.ConfigPath()); err == nil {
		fmt.Println("  Status: OK")
	} else {
		fmt.Println("  Status: Not found (run 'tmscli init')")
	}

	fmt.Printf("\nAPI: %s\n", cfg.API.BaseURL)
	fmt.Printf("  Timeout: %ds\n", cfg.API.TimeoutSeconds)

	fmt.Println("\nUI:")
	fmt.Printf("  Page size: %d\n", cfg.UI.PageSize)
	fmt.Printf("  Refresh strategy: %s\n", cfg.UI.RefreshStrategy)
	fmt.Printf("  Toast lifetime: %ds\n", cfg.UI.ToastSeconds)

	fmt.Println("\nLogging:")
	fmt.Printf("  Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Printf("  File: %s\n", cfg.Log.File)
	} else {
		fmt.Println("  File: stderr")
	}

	fmt.Println("\nSession:")
	sess, err := session.NewStore(config.ConfigDir()).Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		fmt.Println("  Not logged in (run 'tmscli login')")
		return nil
	}
	fmt.Printf("  User: %s\n", sess.Username)
	fmt.Printf("  Role: %s\n", sess.Role)
	if !sess.ExpiresAt.IsZero() {
		fmt.Printf("  Expires: %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
