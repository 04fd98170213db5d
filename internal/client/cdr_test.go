package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

func TestCDRClient_Search(t *testing.T) {
	t.Parallel()

	minDuration := 30

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cdr/search", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		query := r.URL.Query()
		assert.Equal(t, "12025550100", query.Get("dst_number"))
		assert.Equal(t, "2026-08-01", query.Get("start_date"))
		assert.Equal(t, "30", query.Get("min_duration"))
		assert.Equal(t, "100", query.Get("limit"))
		assert.Empty(t, query.Get("max_duration"))

		writeEnvelope(w, []map[string]interface{}{
			{
				"id":          "cdr-1",
				"src_number":  "12025550199",
				"dst_number":  "12025550100",
				"duration":    65,
				"disposition": "ANSWERED",
			},
			{
				"id":          "cdr-2",
				"src_number":  "12025550188",
				"dst_number":  "12025550100",
				"duration":    31,
				"disposition": "ANSWERED",
			},
		})
	}))

	records, err := client.CDR().Search(context.Background(), &sipnav.CDRSearchOptions{
		DstNumber:   "12025550100",
		StartDate:   "2026-08-01",
		MinDuration: &minDuration,
		Limit:       100,
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "cdr-1", records[0].ID)
	assert.Equal(t, 65, records[0].Duration)
	assert.Equal(t, "ANSWERED", records[1].Disposition)
}

func TestCDRClient_Search_Empty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []interface{}{})
	}))

	records, err := client.CDR().Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
