package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/service"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to BoutiqueBill",
	Long: `Log in with the shop credential. The password is read without echo.

Examples:
  boutiquebill login
  boutiquebill login --email user@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			fmt.Print("Email: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		user, err := appInstance.AuthService.Login(cmd.Context(), email, string(password))
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.AuthService.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("failed to log out: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := appInstance.AuthService.CurrentUser(cmd.Context())
		if errors.Is(err, service.ErrNotLoggedIn) {
			fmt.Println("Not logged in")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(user.Email)
		return nil
	},
}

// requireLogin returns the current user or an error telling how to log in
func requireLogin(cmd *cobra.Command) (*domain.User, error) {
	user, err := appInstance.AuthService.CurrentUser(cmd.Context())
	if errors.Is(err, service.ErrNotLoggedIn) {
		return nil, errors.New("not logged in: run 'boutiquebill login' first")
	}
	return user, err
}

func init() {
	loginCmd.Flags().String("email", "", "login email")
}
