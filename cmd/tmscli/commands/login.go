package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/session"
	"github.com/mihret/tmscli/internal/tms"
)

func NewLoginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			email = strings.TrimSpace(email)
			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			ctx := cmd.Context()
			pair, err := gateway.New(cfg.API, nil).Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			sess, err := session.New(pair.Access, pair.Refresh)
			if err != nil {
				return err
			}
			sess.Username = email

			// the role decides which dashboards and actions are offered
			var me tms.User
			if err := gateway.New(cfg.API, sess).GetJSON(ctx, gateway.EndpointCurrentUser, &me); err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}
			sess.Role = me.Role
			if me.ID != 0 {
				sess.UserID = me.ID
			}

			if err := session.NewStore(config.ConfigDir()).Save(sess); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Printf("Signed in as %s (%s).\n", email, sess.Role)
			if !sess.ExpiresAt.IsZero() {
				fmt.Printf("Session valid until %s.\n", sess.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.NewStore(config.ConfigDir()).Delete(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var me tms.User
			if err := client.GetJSON(cmd.Context(), gateway.EndpointCurrentUser, &me); err != nil {
				return err
			}

			fmt.Printf("Name:       %s\n", me.FullName)
			fmt.Printf("Email:      %s\n", me.Email)
			fmt.Printf("Role:       %s\n", me.Role)
			if me.Department != "" {
				fmt.Printf("Department: %s\n", me.Department)
			}
			if !sess.ExpiresAt.IsZero() {
				fmt.Printf("Session:    valid until %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
