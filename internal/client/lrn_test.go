package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

func TestLRNClient_Lookup(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lrnlookup/12025550100", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeEnvelope(w, map[string]interface{}{
			"phone_number": "12025550100",
			"lrn":          "12029990000",
			"spid":         "1234",
			"state":        "DC",
		})
	}))

	result, err := client.LRN().Lookup(context.Background(), "12025550100")
	require.NoError(t, err)
	assert.Equal(t, "12029990000", result.LRN)
	assert.Equal(t, "1234", result.SPID)
	assert.Equal(t, "DC", result.State)
}

func TestLRNClient_Lookup_Cached(t *testing.T) {
	t.Parallel()

	var dips atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dips.Add(1)
		writeEnvelope(w, map[string]interface{}{
			"phone_number": "12025550100",
			"lrn":          "12029990000",
		})
	}))
	defer server.Close()

	client, err := New(&sipnav.Config{
		BaseURL: server.URL,
		APIKey:  "k",
		Cache:   sipnav.DefaultCacheConfig(),
	})
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	first, err := client.LRN().Lookup(context.Background(), "12025550100")
	require.NoError(t, err)

	second, err := client.LRN().Lookup(context.Background(), "12025550100")
	require.NoError(t, err)

	assert.Equal(t, first.LRN, second.LRN)
	assert.Equal(t, int32(1), dips.Load(), "second lookup should be served from cache")

	// A different number dips again.
	_, err = client.LRN().Lookup(context.Background(), "12025550101")
	require.NoError(t, err)
	assert.Equal(t, int32(2), dips.Load())
}

func TestLRNClient_Lookup_CacheDisabled(t *testing.T) {
	t.Parallel()

	var dips atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dips.Add(1)
		writeEnvelope(w, map[string]interface{}{"lrn": "12029990000"})
	}))
	defer server.Close()

	client, err := New(&sipnav.Config{
		BaseURL: server.URL,
		APIKey:  "k",
		Cache:   &sipnav.CacheConfig{Type: sipnav.CacheTypeNone},
	})
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	result, err := client.LRN().Lookup(context.Background(), "12025550100")
	require.NoError(t, err)
	// The dipped number is filled in when the platform omits it.
	assert.Equal(t, "12025550100", result.PhoneNumber)

	_, err = client.LRN().Lookup(context.Background(), "12025550100")
	require.NoError(t, err)
	assert.Equal(t, int32(2), dips.Load())
}
