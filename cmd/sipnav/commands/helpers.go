package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnavclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// YAML indentation.
	defaultYAMLIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAccountNotFound      = errors.New("account not found")
	ErrCarrierNotFound      = errors.New("carrier not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrUsernameRequired     = errors.New("username is required")
	ErrDeckKindRequired     = errors.New("deck kind must be 'account' or 'carrier'")
	ErrNumericIDRequired    = errors.New("argument must be a numeric ID")
	ErrFieldsMapFormat      = errors.New("invalid fieldsmap entry, expected column=field")
	ErrQuitRequested        = errors.New("quit requested")
	ErrNoCredentialsInEnv   = errors.New("no credentials configured (set SIPNAV_API_KEY or SIPNAV_USERNAME/SIPNAV_PASSWORD, or run 'sipnav login')")
	ErrPasswordsDoNotMatch  = errors.New("passwords do not match")
	ErrTwoFactorCodeInvalid = errors.New("two-factor code must be numeric")
)

// CreateClient builds a SIPNAV client from the resolved viper configuration:
// flags first, then SIPNAV_* environment variables, then the config file.
func CreateClient() (sipnav.Client, error) {
	config := &sipnav.Config{
		BaseURL:    viper.GetString("api"),
		APIKey:     viper.GetString("api_key"),
		Username:   viper.GetString("username"),
		Password:   viper.GetString("password"),
		PlatformID: viper.GetInt("platform_id"),
	}

	// An API key wins over stored username/password so 'sipnav -t KEY ...'
	// works against a config file with login credentials in it.
	if config.APIKey != "" {
		config.Username = ""
		config.Password = ""
	}

	if config.APIKey == "" && config.Username == "" {
		return nil, ErrNoCredentialsInEnv
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = NewCLILogger()
	}

	client, err := sipnavclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// parseID converts a positional argument into a numeric resource ID.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNumericIDRequired, arg)
	}

	return id, nil
}

// StandardJSONRenderer writes data to stdout as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data to stdout as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// orDefault substitutes N/A for empty display values.
func orDefault(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
