package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bluedragon-network/sipnav-go/internal/http"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// LRNClient implements sipnav.LRNClient. Dips are cached: the porting data
// behind an LRN changes rarely, and dip endpoints are typically billed per
// query.
type LRNClient struct {
	httpClient *http.Client
	cache      sipnav.Cache
	ttl        time.Duration
}

// NewLRNClient creates a new LRN client with the given dip cache.
func NewLRNClient(httpClient *http.Client, cache sipnav.Cache, ttl time.Duration) *LRNClient {
	return &LRNClient{
		httpClient: httpClient,
		cache:      cache,
		ttl:        ttl,
	}
}

// Lookup implements sipnav.LRNClient.Lookup.
func (c *LRNClient) Lookup(ctx context.Context, phoneNumber string) (*sipnav.LRNResult, error) {
	key := sipnav.CacheKey("lrn", phoneNumber)

	if entry, err := c.cache.Get(ctx, key); err == nil {
		var result sipnav.LRNResult
		if err := json.Unmarshal(entry.Body, &result); err == nil {
			return &result, nil
		}

		// Unreadable entry, drop it and dip again.
		_ = c.cache.Delete(ctx, key)
	}

	path := fmt.Sprintf("/api/lrnlookup/%s", phoneNumber)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("looking up LRN: %w", err)
	}

	var result sipnav.LRNResult
	if err := unwrapData(resp, &result); err != nil {
		return nil, err
	}

	if result.PhoneNumber == "" {
		result.PhoneNumber = phoneNumber
	}

	if body, err := json.Marshal(&result); err == nil {
		_ = c.cache.Set(ctx, key, &sipnav.CacheEntry{
			Body:     body,
			StoredAt: time.Now(),
			TTL:      c.ttl,
		})
	}

	return &result, nil
}
