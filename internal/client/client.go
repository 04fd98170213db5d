// Package client implements the sipnav.Client interface on top of the
// internal request pipeline.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bluedragon-network/sipnav-go/internal/auth"
	"github.com/bluedragon-network/sipnav-go/internal/constants"
	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// Client implements the sipnav.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       sipnav.Logger
	cache        sipnav.Cache

	accounts         sipnav.AccountsClient
	carriers         sipnav.CarriersClient
	companies        sipnav.CompaniesClient
	cdr              sipnav.CDRClient
	callRestrictions sipnav.CallRestrictionsClient
	lrn              sipnav.LRNClient
	rateDecks        sipnav.RateDecksClient
	authentication   *AuthenticationClient
}

// New creates a new SIPNAV API client from the given configuration. No
// network I/O happens here; password credentials log in lazily before the
// first request.
func New(config *sipnav.Config) (*Client, error) {
	if config == nil {
		return nil, sipnav.ErrConfigRequired
	}

	if err := validateCredentials(config); err != nil {
		return nil, err
	}

	baseURL := NormalizeBaseURL(config.BaseURL)

	client := &Client{
		baseURL: baseURL,
		logger:  config.Logger,
	}

	httpOpts := buildHTTPOptions(config)

	// The login endpoint must not recurse into the token manager, so auth
	// flows that run before a session exists use a bare pipeline.
	loginClient := http.NewClient(baseURL, nil, httpOpts...)

	tokenManager := createTokenManager(config, loginClient)
	client.tokenManager = tokenManager
	client.httpClient = http.NewClient(baseURL, tokenManager, httpOpts...)

	cache, err := sipnav.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("configuring cache: %w", err)
	}

	client.cache = cache

	client.accounts = NewAccountsClient(client.httpClient)
	client.carriers = NewCarriersClient(client.httpClient)
	client.companies = NewCompaniesClient(client.httpClient)
	client.cdr = NewCDRClient(client.httpClient)
	client.callRestrictions = NewCallRestrictionsClient(client.httpClient)
	client.lrn = NewLRNClient(client.httpClient, cache, config.Cache.EntryTTL())
	client.rateDecks = NewRateDecksClient(client.httpClient)
	client.authentication = NewAuthenticationClient(client.httpClient, loginClient)

	return client, nil
}

func validateCredentials(config *sipnav.Config) error {
	hasKey := config.APIKey != ""
	hasPassword := config.Username != "" && config.Password != ""

	switch {
	case hasKey && hasPassword:
		return sipnav.ErrAmbiguousCredentials
	case !hasKey && !hasPassword:
		return sipnav.ErrNoCredentials
	}

	return nil
}

// NormalizeBaseURL applies the default origin and fills in a missing scheme.
func NormalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = sipnav.DefaultBaseURL
	}

	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	return strings.TrimSuffix(baseURL, "/")
}

// createTokenManager selects the token manager for the configured
// credentials. The login flow goes through loginClient so it never waits on
// itself.
func createTokenManager(config *sipnav.Config, loginClient *http.Client) auth.TokenManager {
	if config.APIKey != "" {
		return auth.NewStaticTokenManager(config.APIKey)
	}

	username := config.Username
	password := config.Password

	return auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
		result, err := loginAuth(ctx, loginClient, username, password)
		if err != nil {
			return nil, err
		}

		return &sipnav.Session{
			Token:     result.Token,
			Username:  result.Username,
			IssuedVia: sipnav.IssuedViaLogin,
		}, nil
	})
}

// buildHTTPOptions translates the public config into pipeline options.
func buildHTTPOptions(config *sipnav.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.PlatformID > 0 {
		httpOpts = append(httpOpts, http.WithPlatformID(config.PlatformID))
	}

	retryMax := constants.DefaultRetryMax
	if config.MaxRetries != nil {
		retryMax = *config.MaxRetries
	}

	retryWaitMin := constants.DefaultRetryWaitMin
	if config.RetryWaitMin > 0 {
		retryWaitMin = config.RetryWaitMin
	}

	retryWaitMax := constants.DefaultRetryWaitMax
	if config.RetryWaitMax > 0 {
		retryWaitMax = config.RetryWaitMax
	}

	httpOpts = append(httpOpts, http.WithRetryConfig(retryMax, retryWaitMin, retryWaitMax))

	return httpOpts
}

// Accounts implements sipnav.Client.Accounts.
func (c *Client) Accounts() sipnav.AccountsClient {
	return c.accounts
}

// Carriers implements sipnav.Client.Carriers.
func (c *Client) Carriers() sipnav.CarriersClient {
	return c.carriers
}

// Companies implements sipnav.Client.Companies.
func (c *Client) Companies() sipnav.CompaniesClient {
	return c.companies
}

// CDR implements sipnav.Client.CDR.
func (c *Client) CDR() sipnav.CDRClient {
	return c.cdr
}

// CallRestrictions implements sipnav.Client.CallRestrictions.
func (c *Client) CallRestrictions() sipnav.CallRestrictionsClient {
	return c.callRestrictions
}

// LRN implements sipnav.Client.LRN.
func (c *Client) LRN() sipnav.LRNClient {
	return c.lrn
}

// RateDecks implements sipnav.Client.RateDecks.
func (c *Client) RateDecks() sipnav.RateDecksClient {
	return c.rateDecks
}

// Auth implements sipnav.Client.Auth.
func (c *Client) Auth() sipnav.AuthClient {
	return c.authentication
}

// Token implements sipnav.Client.Token.
func (c *Client) Token(ctx context.Context) (string, error) {
	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving token: %w", err)
	}

	return token, nil
}

// SetSession implements sipnav.Client.SetSession.
func (c *Client) SetSession(session sipnav.Session) {
	if manager, ok := c.tokenManager.(*auth.SessionTokenManager); ok {
		manager.SetSession(session)

		return
	}

	c.tokenManager.SetToken(session.Token, time.Time{})
}

// Session returns the current auth session, or nil when none is held.
func (c *Client) Session() *sipnav.Session {
	if manager, ok := c.tokenManager.(*auth.SessionTokenManager); ok {
		return manager.Session()
	}

	return nil
}

// Close implements sipnav.Client.Close.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()

	if closer, ok := c.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing cache: %w", err)
		}
	}

	return nil
}

// unwrapData decodes the envelope's data member into out, falling back to the
// raw body for endpoints that respond without an envelope.
func unwrapData(resp *http.Response, out interface{}) error {
	env, err := resp.Envelope()
	if err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("parsing response data: %w", err)
		}

		return nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("parsing response body: %w", err)
	}

	return nil
}
