package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// newTestClient builds an API-key client against a test server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&sipnav.Config{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		MaxRetries: sipnav.Retries(0),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

// writeEnvelope responds with a success envelope wrapping data.
func writeEnvelope(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *sipnav.Config
		wantErr error
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: sipnav.ErrConfigRequired,
		},
		{
			name:    "no credentials",
			config:  &sipnav.Config{},
			wantErr: sipnav.ErrNoCredentials,
		},
		{
			name:    "password without username",
			config:  &sipnav.Config{Password: "secret"},
			wantErr: sipnav.ErrNoCredentials,
		},
		{
			name: "api key and password together",
			config: &sipnav.Config{
				APIKey:   "key",
				Username: "user",
				Password: "secret",
			},
			wantErr: sipnav.ErrAmbiguousCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.config)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty selects production",
			input:    "",
			expected: sipnav.DefaultBaseURL,
		},
		{
			name:     "bare host gains https",
			input:    "api.example.com",
			expected: "https://api.example.com",
		},
		{
			name:     "trailing slash trimmed",
			input:    "https://api.example.com/",
			expected: "https://api.example.com",
		},
		{
			name:     "http preserved",
			input:    "http://localhost:8080",
			expected: "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizeBaseURL(tt.input))
		})
	}
}

func TestClient_Token_APIKey(t *testing.T) {
	t.Parallel()

	client, err := New(&sipnav.Config{APIKey: "static-key"})
	require.NoError(t, err)

	token, err := client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-key", token)
}

func TestClient_LazyLogin(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			logins.Add(1)
			assert.Equal(t, "POST", r.Method)
			assert.Empty(t, r.Header.Get("Authorization"))

			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "admin@example.com", body["username"])
			assert.Equal(t, "secret", body["password"])

			writeEnvelope(w, map[string]string{"token": "session-token", "username": "admin@example.com"})

		case "/api/accounts":
			assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
			writeEnvelope(w, map[string]interface{}{
				"current_page": 1,
				"data":         []map[string]interface{}{{"id": 1, "name": "acct"}},
				"total":        1,
				"per_page":     "10",
				"last_page":    1,
			})

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := New(&sipnav.Config{
		BaseURL:  server.URL,
		Username: "admin@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	// Construction must not log in.
	assert.Equal(t, int32(0), logins.Load())

	page, err := client.Accounts().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int32(1), logins.Load())

	// The session is reused on the next call.
	_, err = client.Accounts().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), logins.Load())

	session := client.Session()
	require.NotNil(t, session)
	assert.Equal(t, "admin@example.com", session.Username)
	assert.Equal(t, sipnav.IssuedViaLogin, session.IssuedVia)
}

func TestClient_ReloginAfterUnauthorized(t *testing.T) {
	t.Parallel()

	var (
		logins   atomic.Int32
		requests atomic.Int32
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			logins.Add(1)
			writeEnvelope(w, map[string]string{"token": "token"})

		case "/api/accounts":
			if requests.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Token has expired"})

				return
			}

			writeEnvelope(w, map[string]interface{}{"current_page": 1, "data": []interface{}{}, "last_page": 1})
		}
	}))
	defer server.Close()

	client, err := New(&sipnav.Config{
		BaseURL:    server.URL,
		Username:   "u",
		Password:   "p",
		MaxRetries: sipnav.Retries(0),
	})
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	// First call logs in, then hits the 401 which drops the session.
	_, err = client.Accounts().List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, sipnav.IsAuthenticationError(err))
	assert.Nil(t, client.Session())

	// Next call re-authenticates and succeeds.
	_, err = client.Accounts().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), logins.Load())
}

func TestClient_SetSession(t *testing.T) {
	t.Parallel()

	client, err := New(&sipnav.Config{Username: "u", Password: "p"})
	require.NoError(t, err)

	client.SetSession(sipnav.Session{
		Token:     "proxy-token",
		Username:  "proxied-user",
		IssuedVia: sipnav.IssuedViaProxy,
	})

	token, err := client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "proxy-token", token)

	session := client.Session()
	require.NotNil(t, session)
	assert.Equal(t, "proxied-user", session.Username)
	assert.Equal(t, sipnav.IssuedViaProxy, session.IssuedVia)
}
