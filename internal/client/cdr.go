package client

import (
	"context"
	"fmt"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// CDRClient implements sipnav.CDRClient.
type CDRClient struct {
	httpClient *http.Client
}

// NewCDRClient creates a new CDR client.
func NewCDRClient(httpClient *http.Client) *CDRClient {
	return &CDRClient{httpClient: httpClient}
}

// Search implements sipnav.CDRClient.Search.
func (c *CDRClient) Search(ctx context.Context, opts *sipnav.CDRSearchOptions) ([]sipnav.CDRRecord, error) {
	resp, err := c.httpClient.Get(ctx, "/api/cdr/search", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("searching CDRs: %w", err)
	}

	var records []sipnav.CDRRecord
	if err := unwrapData(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}
