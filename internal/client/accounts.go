package client

import (
	"context"
	"fmt"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// AccountsClient implements sipnav.AccountsClient.
type AccountsClient struct {
	httpClient *http.Client
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *http.Client) *AccountsClient {
	return &AccountsClient{httpClient: httpClient}
}

// List implements sipnav.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, opts *sipnav.ListOptions) (*sipnav.Page[sipnav.Account], error) {
	resp, err := c.httpClient.Get(ctx, "/api/accounts", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	var page sipnav.Page[sipnav.Account]
	if err := unwrapData(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get implements sipnav.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, accountID int, opts *sipnav.ListOptions) (*sipnav.Account, error) {
	path := fmt.Sprintf("/api/accounts/%d", accountID)

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	var account sipnav.Account
	if err := unwrapData(resp, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// Create implements sipnav.AccountsClient.Create.
func (c *AccountsClient) Create(ctx context.Context, request *sipnav.AccountRequest, opts *sipnav.ListOptions) (*sipnav.Account, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   "/api/accounts",
		Query:  opts.ToValues(),
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	var account sipnav.Account
	if err := unwrapData(resp, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// Update implements sipnav.AccountsClient.Update.
func (c *AccountsClient) Update(ctx context.Context, accountID int, request *sipnav.AccountRequest, opts *sipnav.ListOptions) (*sipnav.Account, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "PUT",
		Path:   fmt.Sprintf("/api/accounts/%d", accountID),
		Query:  opts.ToValues(),
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	var account sipnav.Account
	if err := unwrapData(resp, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetCarriers implements sipnav.AccountsClient.GetCarriers. It lists the
// carriers associated with an account.
func (c *AccountsClient) GetCarriers(ctx context.Context, accountID int, opts *sipnav.ListOptions) (*sipnav.Page[sipnav.Carrier], error) {
	path := fmt.Sprintf("/api/accountcarriers/%d", accountID)

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing account carriers: %w", err)
	}

	var page sipnav.Page[sipnav.Carrier]
	if err := unwrapData(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
