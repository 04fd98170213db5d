package client

import (
	"context"
	"fmt"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// CarriersClient implements sipnav.CarriersClient.
type CarriersClient struct {
	httpClient *http.Client
}

// NewCarriersClient creates a new carriers client.
func NewCarriersClient(httpClient *http.Client) *CarriersClient {
	return &CarriersClient{httpClient: httpClient}
}

// List implements sipnav.CarriersClient.List.
func (c *CarriersClient) List(ctx context.Context, opts *sipnav.ListOptions) (*sipnav.Page[sipnav.Carrier], error) {
	resp, err := c.httpClient.Get(ctx, "/api/carriers", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing carriers: %w", err)
	}

	var page sipnav.Page[sipnav.Carrier]
	if err := unwrapData(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get implements sipnav.CarriersClient.Get.
func (c *CarriersClient) Get(ctx context.Context, carrierID int, opts *sipnav.ListOptions) (*sipnav.Carrier, error) {
	path := fmt.Sprintf("/api/carriers/%d", carrierID)

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("getting carrier: %w", err)
	}

	var carrier sipnav.Carrier
	if err := unwrapData(resp, &carrier); err != nil {
		return nil, err
	}

	return &carrier, nil
}

// Create implements sipnav.CarriersClient.Create.
func (c *CarriersClient) Create(ctx context.Context, request *sipnav.CarrierRequest, opts *sipnav.ListOptions) (*sipnav.Carrier, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   "/api/carriers",
		Query:  opts.ToValues(),
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("creating carrier: %w", err)
	}

	var carrier sipnav.Carrier
	if err := unwrapData(resp, &carrier); err != nil {
		return nil, err
	}

	return &carrier, nil
}

// Update implements sipnav.CarriersClient.Update.
func (c *CarriersClient) Update(ctx context.Context, carrierID int, request *sipnav.CarrierRequest, opts *sipnav.ListOptions) (*sipnav.Carrier, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "PUT",
		Path:   fmt.Sprintf("/api/carriers/%d", carrierID),
		Query:  opts.ToValues(),
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("updating carrier: %w", err)
	}

	var carrier sipnav.Carrier
	if err := unwrapData(resp, &carrier); err != nil {
		return nil, err
	}

	return &carrier, nil
}

// GetAccounts implements sipnav.CarriersClient.GetAccounts. It lists the
// accounts associated with a carrier.
func (c *CarriersClient) GetAccounts(ctx context.Context, carrierID int, opts *sipnav.ListOptions) (*sipnav.Page[sipnav.Account], error) {
	path := fmt.Sprintf("/api/carrieraccounts/%d", carrierID)

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing carrier accounts: %w", err)
	}

	var page sipnav.Page[sipnav.Account]
	if err := unwrapData(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
