// Package sipnavclient provides the main entry point for creating SIPNAV API clients.
package sipnavclient

import (
	"fmt"

	"github.com/bluedragon-network/sipnav-go/internal/client"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// New creates a new SIPNAV API client. Construction performs no network I/O;
// username/password credentials are exchanged for a token on the first
// request.
func New(config *sipnav.Config) (sipnav.Client, error) {
	if config == nil {
		return nil, sipnav.ErrConfigRequired
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithAPIKey creates a client authenticated with a pre-issued API key.
func NewWithAPIKey(baseURL, apiKey string) (sipnav.Client, error) {
	return New(&sipnav.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
	})
}

// NewWithPassword creates a client that logs in with username/password
// credentials before the first request.
func NewWithPassword(baseURL, username, password string) (sipnav.Client, error) {
	return New(&sipnav.Config{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
	})
}
