package client

import (
	"context"
	"fmt"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// CompaniesClient implements sipnav.CompaniesClient.
type CompaniesClient struct {
	httpClient *http.Client
}

// NewCompaniesClient creates a new companies client.
func NewCompaniesClient(httpClient *http.Client) *CompaniesClient {
	return &CompaniesClient{httpClient: httpClient}
}

// List implements sipnav.CompaniesClient.List.
func (c *CompaniesClient) List(ctx context.Context, opts *sipnav.ListOptions) (*sipnav.Page[sipnav.Company], error) {
	resp, err := c.httpClient.Get(ctx, "/api/companies", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}

	var page sipnav.Page[sipnav.Company]
	if err := unwrapData(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Get implements sipnav.CompaniesClient.Get.
func (c *CompaniesClient) Get(ctx context.Context, companyID int, opts *sipnav.ListOptions) (*sipnav.Company, error) {
	path := fmt.Sprintf("/api/companies/%d", companyID)

	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("getting company: %w", err)
	}

	var company sipnav.Company
	if err := unwrapData(resp, &company); err != nil {
		return nil, err
	}

	return &company, nil
}

// GetBalance implements sipnav.CompaniesClient.GetBalance. The dedicated
// endpoint returns the live balance; the Balance field of a Get or List
// result reflects the last billing sync.
func (c *CompaniesClient) GetBalance(ctx context.Context, companyID int) (*sipnav.CompanyBalance, error) {
	path := fmt.Sprintf("/api/companies/%d/getBalance", companyID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting company balance: %w", err)
	}

	var balance sipnav.CompanyBalance
	if err := unwrapData(resp, &balance); err != nil {
		return nil, err
	}

	return &balance, nil
}

// ListNames implements sipnav.CompaniesClient.ListNames. The full set comes
// back in one response, without paging.
func (c *CompaniesClient) ListNames(ctx context.Context) ([]sipnav.CompanyName, error) {
	resp, err := c.httpClient.Get(ctx, "/api/companies-names", nil)
	if err != nil {
		return nil, fmt.Errorf("listing company names: %w", err)
	}

	var names []sipnav.CompanyName
	if err := unwrapData(resp, &names); err != nil {
		return nil, err
	}

	return names, nil
}

// Create implements sipnav.CompaniesClient.Create.
func (c *CompaniesClient) Create(ctx context.Context, request *sipnav.CompanyRequest, opts *sipnav.ListOptions) (*sipnav.Company, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   "/api/companies",
		Query:  opts.ToValues(),
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}

	var company sipnav.Company
	if err := unwrapData(resp, &company); err != nil {
		return nil, err
	}

	return &company, nil
}

// Update implements sipnav.CompaniesClient.Update.
func (c *CompaniesClient) Update(ctx context.Context, companyID int, request *sipnav.CompanyRequest, opts *sipnav.ListOptions) (*sipnav.Company, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "PUT",
		Path:   fmt.Sprintf("/api/companies/%d", companyID),
		Query:  opts.ToValues(),
		Body:   request,
	})
	if err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}

	var company sipnav.Company
	if err := unwrapData(resp, &company); err != nil {
		return nil, err
	}

	return &company, nil
}
