package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/evento/internal/auth"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the event platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			user, err := app.Gateway.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("%s", auth.UserMessage(err))
			}

			fmt.Printf("Logged in as %s (%s)\n", user.DisplayName(), user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Gateway.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a new visitor account. Registration does not log you in; run 'evento login' afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			prompt := func(label string, dest *string) error {
				if *dest != "" {
					return nil
				}
				fmt.Printf("%s: ", label)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
				}
				*dest = strings.TrimSpace(line)
				return nil
			}

			if err := prompt("Username", &username); err != nil {
				return err
			}
			if err := prompt("Email", &email); err != nil {
				return err
			}
			if err := prompt("Password", &password); err != nil {
				return err
			}
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("username, email, and password are required")
			}

			user, err := app.Gateway.Register(cmd.Context(), email, password, username)
			if err != nil {
				return fmt.Errorf("%s", auth.UserMessage(err))
			}

			fmt.Printf("Account %s created. Run 'evento login' to sign in.\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				user := app.Sessions.Current()
				if user == nil || !app.Sessions.IsAuthenticated() {
					fmt.Println("Not logged in.")
					return nil
				}
				fmt.Printf("%s <%s> role=%s (cached)\n", user.DisplayName(), user.Email, user.Role)
				return nil
			}

			user, err := app.Gateway.CurrentUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", auth.UserMessage(err))
			}
			fmt.Printf("%s <%s> role=%s\n", user.DisplayName(), user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Show the locally cached record without a network call")
	return cmd
}
