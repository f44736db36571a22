package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/evento/pkg/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderation and user management (admin role required)",
	}

	cmd.AddCommand(
		newAdminPendingCmd(),
		newAdminApproveCmd(),
		newAdminRejectCmd(),
		newAdminUsersCmd(),
		newAdminSetRoleCmd(),
	)
	return cmd
}

func newAdminPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List events awaiting moderation",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Gateway.Client().PendingEvents(cmd.Context())
			if err != nil {
				return err
			}
			printEventTable(events)
			return nil
		},
	}
}

func newAdminApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventIDArg(args)
			if err != nil {
				return err
			}
			if err := app.Gateway.Client().ApproveEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Approved event #%d\n", id)
			return nil
		},
	}
}

func newAdminRejectCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventIDArg(args)
			if err != nil {
				return err
			}
			if err := app.Gateway.Client().RejectEvent(cmd.Context(), id, reason); err != nil {
				return err
			}
			fmt.Printf("Rejected event #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason shown to the organizer")
	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List platform accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Gateway.Client().ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}
			fmt.Printf("%-6s  %-20s  %-30s  %s\n", "ID", "USERNAME", "EMAIL", "ROLE")
			fmt.Printf("%-6s  %-20s  %-30s  %s\n", "--", "--------", "-----", "----")
			for _, u := range users {
				fmt.Printf("%-6d  %-20s  %-30s  %s\n", u.ID, u.Username, u.Email, u.Role)
			}
			return nil
		},
	}
}

func newAdminSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Change an account's role (visitor, organizer, admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			role := model.ParseRole(args[1])

			u, err := app.Gateway.Client().SetUserRole(cmd.Context(), id, role)
			if err != nil {
				return err
			}
			fmt.Printf("User %s is now %s\n", u.Username, u.Role)
			return nil
		},
	}
}
