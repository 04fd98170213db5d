package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

func TestCompaniesClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeEnvelope(w, map[string]interface{}{
			"current_page": 1,
			"data": []map[string]interface{}{
				{"id": 1, "customer_name": "Acme Telecom", "balance": "150.25"},
			},
			"total":     1,
			"per_page":  10,
			"last_page": 1,
		})
	}))

	page, err := client.Companies().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "Acme Telecom", page.Data[0].CustomerName)
	assert.Equal(t, "150.25", page.Data[0].Balance)
}

func TestCompaniesClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/7", r.URL.Path)

		writeEnvelope(w, map[string]interface{}{"id": 7, "customer_name": "Acme Telecom", "credit_limit": "1000.00"})
	}))

	company, err := client.Companies().Get(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, company.ID)
	assert.Equal(t, "1000.00", company.CreditLimit)
}

func TestCompaniesClient_GetBalance(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/7/getBalance", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeEnvelope(w, map[string]interface{}{
			"company_id":   7,
			"balance":      "142.80",
			"credit_limit": "1000.00",
		})
	}))

	balance, err := client.Companies().GetBalance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, balance.CompanyID)
	assert.Equal(t, "142.80", balance.Balance)
	assert.Equal(t, "1000.00", balance.CreditLimit)
}

func TestCompaniesClient_ListNames(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies-names", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeEnvelope(w, []map[string]interface{}{
			{"id": 1, "customer_name": "Acme Telecom"},
			{"id": 2, "customer_name": "Border Voice"},
		})
	}))

	names, err := client.Companies().ListNames(context.Background())
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, 1, names[0].ID)
	assert.Equal(t, "Border Voice", names[1].CustomerName)
}

func TestCompaniesClient_Create(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var req sipnav.CompanyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "New Telecom", req.CustomerName)
		assert.Equal(t, "billing@newtelecom.example", req.Email)

		w.WriteHeader(http.StatusCreated)
		writeEnvelope(w, map[string]interface{}{"id": 8, "customer_name": req.CustomerName})
	}))

	company, err := client.Companies().Create(context.Background(), &sipnav.CompanyRequest{
		CustomerName: "New Telecom",
		Email:        "billing@newtelecom.example",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, company.ID)
}

func TestCompaniesClient_Update(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/companies/7", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		writeEnvelope(w, map[string]interface{}{"id": 7, "customer_name": "Acme Telecom", "status": "suspended"})
	}))

	company, err := client.Companies().Update(context.Background(), 7, &sipnav.CompanyRequest{Status: "suspended"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "suspended", company.Status)
}
