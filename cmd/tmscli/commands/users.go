package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/tms"
)

// NewUsersCmd groups the account administration operations. The server
// restricts them to the system admin role; other callers get Forbidden.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts",
	}

	cmd.AddCommand(
		newUsersListCmd(),
		newUsersApproveCmd(),
		newUsersActivateCmd(),
		newUsersDeactivateCmd(),
		newUsersUpdateRoleCmd(),
	)

	return cmd
}

func newUsersListCmd() *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			var users []tms.User
			if err := client.FetchListInto(cmd.Context(), gateway.EndpointUserList, &users); err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				if pendingOnly && !u.IsPending {
					continue
				}
				state := "active"
				if u.IsPending {
					state = "pending"
				} else if !u.IsActive {
					state = "deactivated"
				}
				rows = append(rows, []string{
					strconv.Itoa(u.ID), u.FullName, u.Email, u.Role.String(), state,
				})
			}
			if len(rows) == 0 {
				fmt.Println("No matching users.")
				return nil
			}
			printTable(
				[]string{"ID", "NAME", "EMAIL", "ROLE", "STATE"},
				[]int{4, 22, 26, 18, 12},
				rows,
				nil,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Show accounts awaiting approval only")
	return cmd
}

func newUsersApproveCmd() *cobra.Command {
	// The approval endpoint demands an explicit action in the body.
	return userMutationCmd("approve <id>", "Approve a pending account", gateway.UserApprove, "approved",
		map[string]string{"action": "approve"})
}

func newUsersActivateCmd() *cobra.Command {
	return userMutationCmd("activate <id>", "Reactivate a deactivated account", gateway.UserActivate, "activated", nil)
}

func newUsersDeactivateCmd() *cobra.Command {
	return userMutationCmd("deactivate <id>", "Deactivate an account", gateway.UserDeactivate, "deactivated", nil)
}

func userMutationCmd(use, short string, path func(int) string, verb string, payload any) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			if _, err := client.Mutate(cmd.Context(), "POST", path(id), payload); err != nil {
				return err
			}
			fmt.Printf("User #%d %s.\n", id, verb)
			return nil
		},
	}
}

func newUsersUpdateRoleCmd() *cobra.Command {
	var role int

	cmd := &cobra.Command{
		Use:   "update-role <id>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}
			if !tms.Role(role).Valid() {
				return fmt.Errorf("invalid role code: %d", role)
			}

			_, sess, client, err := loadClient()
			if err != nil {
				return err
			}
			if err := requireSession(sess); err != nil {
				return err
			}

			// Role changes ride the PATCH handler of the approval endpoint.
			payload := map[string]int{"role": role}
			if _, err := client.Mutate(cmd.Context(), "PATCH", gateway.UserUpdateRole(id), payload); err != nil {
				return err
			}
			fmt.Printf("User #%d is now %s.\n", id, tms.Role(role))
			return nil
		},
	}

	cmd.Flags().IntVar(&role, "role", 0, "New role code (1=Employee .. 9=Budget Manager)")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
