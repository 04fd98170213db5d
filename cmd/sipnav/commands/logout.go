package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from SIPNAV",
		Long:  "Invalidate the current session on the platform and clear the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogoutCommand()
		},
	}
}

func runLogoutCommand() error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	err = client.Auth().Logout(context.Background())
	if err != nil {
		// Clear the stored token even when the server-side logout fails;
		// an expired session 401s here and should still be forgotten.
		fmt.Printf("Warning: server logout failed: %v\n", err)
	}

	viper.Set("api_key", "")

	err = viper.WriteConfig()
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("Logged out")

	return nil
}
