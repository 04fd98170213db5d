package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

func TestAccountsClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "1", r.URL.Query().Get("external"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))

		writeEnvelope(w, map[string]interface{}{
			"current_page": 2,
			"data": []map[string]interface{}{
				{"id": 10, "name": "acct-10", "status": "active"},
				{"id": 11, "name": "acct-11", "status": "disabled"},
			},
			"total":     120,
			"per_page":  "50",
			"last_page": 3,
		})
	}))

	page, err := client.Accounts().List(context.Background(), &sipnav.ListOptions{Page: 2, PerPage: 50})
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, "acct-10", page.Data[0].Name)
	assert.Equal(t, 50, page.PerPage.Int())
	assert.True(t, page.HasMore())
}

func TestAccountsClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts/42", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeEnvelope(w, map[string]interface{}{"id": 42, "name": "test-account", "company_id": 7})
	}))

	account, err := client.Accounts().Get(context.Background(), 42, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, account.ID)
	assert.Equal(t, "test-account", account.Name)
	assert.Equal(t, 7, account.CompanyID)
}

func TestAccountsClient_Create(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var req sipnav.AccountRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "new-account", req.Name)
		assert.Equal(t, 7, req.CompanyID)

		w.WriteHeader(http.StatusCreated)
		writeEnvelope(w, map[string]interface{}{"id": 43, "name": req.Name, "company_id": req.CompanyID})
	}))

	account, err := client.Accounts().Create(context.Background(), &sipnav.AccountRequest{
		Name:      "new-account",
		CompanyID: 7,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 43, account.ID)
	assert.Equal(t, "new-account", account.Name)
}

func TestAccountsClient_Update(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accounts/42", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var req sipnav.AccountRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "disabled", req.Status)

		writeEnvelope(w, map[string]interface{}{"id": 42, "name": "test-account", "status": "disabled"})
	}))

	account, err := client.Accounts().Update(context.Background(), 42, &sipnav.AccountRequest{Status: "disabled"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "disabled", account.Status)
}

func TestAccountsClient_GetCarriers(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/accountcarriers/42", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeEnvelope(w, map[string]interface{}{
			"current_page": 1,
			"data": []map[string]interface{}{
				{"id": 3, "name": "carrier-3"},
			},
			"total":     1,
			"per_page":  10,
			"last_page": 1,
		})
	}))

	page, err := client.Accounts().GetCarriers(context.Background(), 42, nil)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "carrier-3", page.Data[0].Name)
	assert.False(t, page.HasMore())
}

func TestAccountsClient_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Account not found",
			"errors":  "ID does not exist",
		})
	}))
	defer server.Close()

	client, err := New(&sipnav.Config{BaseURL: server.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = client.Accounts().Get(context.Background(), 99999, nil)
	require.Error(t, err)
	assert.True(t, sipnav.IsAPIError(err))
	assert.Equal(t, 404, sipnav.StatusCode(err))
	assert.Contains(t, err.Error(), "Account not found | Details: ID does not exist | Request: GET /api/accounts/99999")
}
