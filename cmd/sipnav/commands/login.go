package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnavclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to SIPNAV",
		Long: `Authenticate with a SIPNAV API endpoint using username and password.

The resulting session token is stored in the config file and reused by
subsequent commands until it expires or 'sipnav logout' is run. Accounts
with two-factor authentication enabled are prompted for their code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoginCommand(username, password)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func runLoginCommand(username, password string) error {
	if username == "" {
		username = viper.GetString("username")
	}

	if username == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Username: ")
		username, _ = reader.ReadString('\n')
		username = strings.TrimSpace(username)
	}

	if username == "" {
		return ErrUsernameRequired
	}

	if password == "" {
		fmt.Print("Password: ")

		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		password = string(bytePassword)

		fmt.Println()
	}

	client, err := sipnavclient.NewWithPassword(viper.GetString("api"), username, password)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	result, err := client.Auth().Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if result.TwoFactorRequired {
		result, err = verifyTwoFactor(ctx, client, result.EncryptedUser)
		if err != nil {
			return err
		}
	}

	err = persistSession(username, result.Token)
	if err != nil {
		return err
	}

	fmt.Printf("Successfully logged in as %s\n", username)

	return nil
}

func verifyTwoFactor(ctx context.Context, client sipnav.Client, encryptedUser string) (*sipnav.LoginResult, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Two-factor code: ")

	input, _ := reader.ReadString('\n')

	code, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, ErrTwoFactorCodeInvalid
	}

	result, err := client.Auth().VerifyOTP(ctx, encryptedUser, code)
	if err != nil {
		return nil, fmt.Errorf("two-factor verification failed: %w", err)
	}

	return result, nil
}

// persistSession stores the session token in the config file so later
// invocations authenticate with it instead of re-prompting.
func persistSession(username, token string) error {
	viper.Set("username", username)
	viper.Set("api_key", token)

	err := viper.WriteConfig()
	if err != nil {
		err = viper.SafeWriteConfig()
	}

	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
