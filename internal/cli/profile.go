package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
	"github.com/servly-app/servly/internal/session"
)

// ProfileCmd creates the profile command, showing the locally mirrored
// user profile.
func ProfileCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the stored user profile",
		Long:  "Shows the locally mirrored user profile; --refresh re-fetches it from the API first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runProfile(cmd, refresh, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Re-fetch the profile from the API")

	return cmd
}

func runProfile(cmd *cobra.Command, refresh, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	profile := env.Session.UserProfile(ctx)

	if refresh || profile == nil {
		resp, err := env.API.Get(ctx, "/users/me", api.RequestOptions{})
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		var fetched session.UserProfile
		if err := json.Unmarshal(resp.Data, &fetched); err != nil {
			return fmt.Errorf("failed to parse profile: %w", err)
		}
		env.Session.SaveUserProfile(ctx, &fetched)
		profile = &fetched
	}

	if outputJSON {
		output, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Name: %s\n", profile.Name)
	fmt.Printf("Email: %s\n", profile.Email)
	if profile.Phone != "" {
		fmt.Printf("Phone: %s\n", profile.Phone)
	}
	if profile.Location != "" {
		fmt.Printf("Location: %s\n", profile.Location)
	}
	return nil
}
