package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
	"github.com/servly-app/servly/internal/session"
)

// AuthCmd creates the auth parent command.
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  "Login, logout, and check authentication status for the servly CLI.",
	}

	cmd.AddCommand(AuthLoginCmd())
	cmd.AddCommand(AuthLogoutCmd())
	cmd.AddCommand(AuthStatusCmd())

	return cmd
}

// AuthLoginCmd creates the auth login command.
func AuthLoginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		Long:  "Exchanges credentials for a bearer token and stores it with the user profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthLogin(cmd, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	return cmd
}

// AuthLogoutCmd creates the auth logout command.
func AuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthLogout(cmd)
		},
	}
}

// AuthStatusCmd creates the auth status command.
func AuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAuthStatus(cmd, outputJSON)
		},
	}
}

func runAuthLogin(cmd *cobra.Command, email, password string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Email: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(input)
	}
	if password == "" {
		fmt.Print("Password: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(input)
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	resp, err := env.API.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, api.RequestOptions{})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	var login struct {
		Token string              `json:"token"`
		User  session.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &login); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if login.Token == "" {
		return fmt.Errorf("login response did not include a token")
	}

	if err := env.Session.SetToken(ctx, login.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	env.Session.SaveUserProfile(ctx, &login.User)

	fmt.Println("Successfully logged in")
	return nil
}

func runAuthLogout(cmd *cobra.Command) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	if err := env.Session.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	env.Session.ClearUserProfile(ctx)
	env.Session.ClearProviderProfile(ctx)

	fmt.Println("Successfully logged out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	token := env.Session.Token(ctx)
	profile := env.Session.UserProfile(ctx)

	if outputJSON {
		status := map[string]any{
			"authenticated": token != "",
		}
		if token != "" {
			status["token"] = maskToken(token)
			if profile != nil {
				status["email"] = profile.Email
			}
		}
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if token == "" {
		fmt.Println("Not authenticated")
		fmt.Println("Run 'servly auth login' to authenticate")
		return nil
	}

	fmt.Printf("Authenticated: yes\n")
	fmt.Printf("Token: %s\n", maskToken(token))
	if profile != nil && profile.Email != "" {
		fmt.Printf("Email: %s\n", profile.Email)
	}
	return nil
}

func maskToken(token string) string {
	if len(token) < 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
