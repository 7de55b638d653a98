package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/glow/internal/client"
	"github.com/existflow/glow/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage authentication with the Glow server. Once logged in, habits persist remotely instead of in the local database.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the Glow server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from the Glow server",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the Glow server",
	RunE:  runRegister,
}

var serverCmd = &cobra.Command{
	Use:   "server <url>",
	Short: "Set the Glow server URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}
		cfg.ServerURL = strings.TrimRight(args[0], "/")
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Server set to %s\n", cfg.ServerURL)
		return nil
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(serverCmd)

	loginCmd.Flags().String("email", "", "Login using magic link for this email")
	loginCmd.Flags().String("token", "", "Verify magic link token")
}

func authClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return client.New(cfg.ServerURL)
}

func runLogin(cmd *cobra.Command, args []string) error {
	c, err := authClient()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	token, _ := cmd.Flags().GetString("token")

	if token != "" {
		fmt.Println("🔄 Verifying magic link token...")
		if err := c.VerifyMagicLink(token); err != nil {
			return err
		}
		fmt.Println("✅ Logged in successfully!")
		return nil
	}

	if email != "" {
		fmt.Printf("🔄 Requesting magic link for %s...\n", email)
		devToken, err := c.RequestMagicLink(email)
		if err != nil {
			return err
		}
		fmt.Println("📬 Magic link requested! Check your email (or server logs in dev).")
		if devToken != "" {
			fmt.Printf("🔑 Development Token: %s\n", devToken)
		}

		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter Magic Link Token: ")
		inputToken, _ := reader.ReadString('\n')
		inputToken = strings.TrimSpace(inputToken)

		if inputToken == "" {
			fmt.Println("❌ Token required.")
			return nil
		}

		fmt.Println("🔄 Verifying magic link...")
		if err := c.VerifyMagicLink(inputToken); err != nil {
			return err
		}
		fmt.Println("✅ Logged in successfully!")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Println("🔄 Logging in...")
	if err := c.Login(username, password); err != nil {
		return err
	}

	fmt.Println("✅ Logged in successfully!")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	c, err := authClient()
	if err != nil {
		return err
	}

	if !c.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Println("🔄 Logging out...")
	if err := c.Logout(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out successfully.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	c, err := authClient()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Print("Confirm Password: ")
	confirmBytes, _ := term.ReadPassword(int(syscall.Stdin))
	confirm := string(confirmBytes)
	fmt.Println()

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("🔄 Creating account...")
	if err := c.Register(username, email, password); err != nil {
		return err
	}

	fmt.Println("✅ Account created and logged in! Your board was seeded with starter categories and archetypes.")
	return nil
}
