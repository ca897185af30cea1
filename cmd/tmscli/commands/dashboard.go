package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/tui"
)

func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive request dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			feed := notify.NewFeed(time.Duration(cfg.UI.ToastSeconds) * time.Second)
			model := tui.New(cfg, sess, client, feed)

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}
}
