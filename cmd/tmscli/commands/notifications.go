package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
)

func NewNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "Read in-app notifications",
	}

	cmd.AddCommand(
		newNotificationsListCmd(),
		newNotificationsUnreadCmd(),
		newNotificationsMarkReadCmd(),
	)

	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var notifications []tms.Notification
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointNotifications, &notifications); err != nil {
				return err
			}

			shown := 0
			for _, n := range notifications {
				if unreadOnly && n.IsRead {
					continue
				}
				marker := " "
				if !n.IsRead {
					marker = "*"
				}
				fmt.Printf("%s [%s] %s\n", marker, n.CreatedAt.Local().Format("Jan 02 15:04"), n.Title)
				if n.Message != "" {
					fmt.Printf("    %s\n", n.Message)
				}
				shown++
			}
			if shown == 0 {
				fmt.Println("No notifications.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unreadOnly, "unread", "u", false, "Show unread notifications only")
	return cmd
}

func newNotificationsUnreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unread-count",
		Short: "Show how many notifications are unread",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var count struct {
				Count int `json:"count"`
			}
			if err := client.GetJSON(cmd.Context(), gateway.EndpointUnreadCount, &count); err != nil {
				return err
			}
			fmt.Printf("%d unread notification(s).\n", count.Count)
			return nil
		},
	}
}

func newNotificationsMarkReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			if _, err := client.Mutate(cmd.Context(), "POST", gateway.EndpointMarkAllRead, nil); err != nil {
				return err
			}
			fmt.Println("All notifications marked as read.")
			return nil
		},
	}
}
