package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

const restrictionPath = "/api/call-restrictions/num"

// CallRestrictionsClient implements sipnav.CallRestrictionsClient.
type CallRestrictionsClient struct {
	httpClient *http.Client
}

// NewCallRestrictionsClient creates a new call restrictions client.
func NewCallRestrictionsClient(httpClient *http.Client) *CallRestrictionsClient {
	return &CallRestrictionsClient{httpClient: httpClient}
}

// List implements sipnav.CallRestrictionsClient.List. Paging is token based;
// pass the returned NextPageToken to fetch the next page.
func (c *CallRestrictionsClient) List(ctx context.Context, opts *sipnav.RestrictionListOptions) (*sipnav.RestrictionPage, error) {
	return c.listPage(ctx, restrictionPath, opts, "listing call restrictions")
}

// Get implements sipnav.CallRestrictionsClient.Get.
func (c *CallRestrictionsClient) Get(ctx context.Context, restrictionID int) (*sipnav.CallRestriction, error) {
	path := fmt.Sprintf("%s/%d", restrictionPath, restrictionID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting call restriction: %w", err)
	}

	var restriction sipnav.CallRestriction
	if err := unwrapData(resp, &restriction); err != nil {
		return nil, err
	}

	return &restriction, nil
}

// Create implements sipnav.CallRestrictionsClient.Create. The endpoint takes
// its input as query parameters rather than a JSON body.
func (c *CallRestrictionsClient) Create(ctx context.Context, request *sipnav.RestrictionRequest) (*sipnav.CallRestriction, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   restrictionPath,
		Query:  request.ToValues(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating call restriction: %w", err)
	}

	var restriction sipnav.CallRestriction
	if err := unwrapData(resp, &restriction); err != nil {
		return nil, err
	}

	return &restriction, nil
}

// Update implements sipnav.CallRestrictionsClient.Update. Only the set fields
// of the request change; the target is addressed with the restriction_id
// query parameter, not a path segment.
func (c *CallRestrictionsClient) Update(ctx context.Context, restrictionID int, request *sipnav.RestrictionUpdate) (*sipnav.CallRestriction, error) {
	query := request.ToValues()
	query.Set("restriction_id", strconv.Itoa(restrictionID))

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "PATCH",
		Path:   restrictionPath,
		Query:  query,
	})
	if err != nil {
		return nil, fmt.Errorf("updating call restriction: %w", err)
	}

	var restriction sipnav.CallRestriction
	if err := unwrapData(resp, &restriction); err != nil {
		return nil, err
	}

	return &restriction, nil
}

// Disable implements sipnav.CallRestrictionsClient.Disable.
func (c *CallRestrictionsClient) Disable(ctx context.Context, restrictionID int) error {
	path := fmt.Sprintf("%s/%d", restrictionPath, restrictionID)

	if _, err := c.httpClient.Do(ctx, &http.Request{Method: "PATCH", Path: path}); err != nil {
		return fmt.Errorf("disabling call restriction: %w", err)
	}

	return nil
}

// History implements sipnav.CallRestrictionsClient.History. It shares the
// token paging of List; the filter fields of the options are ignored by the
// endpoint.
func (c *CallRestrictionsClient) History(ctx context.Context, opts *sipnav.RestrictionListOptions) (*sipnav.RestrictionPage, error) {
	return c.listPage(ctx, "/api/call-restrictions/history", opts, "listing call restriction history")
}

func (c *CallRestrictionsClient) listPage(ctx context.Context, path string, opts *sipnav.RestrictionListOptions, action string) (*sipnav.RestrictionPage, error) {
	resp, err := c.httpClient.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var page sipnav.RestrictionPage
	if err := unwrapData(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
