package sipnav_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Rendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *sipnav.Error
		expected string
	}{
		{
			name: "message details and request",
			err: &sipnav.Error{
				Kind:          sipnav.KindAPI,
				Message:       "Account not found",
				Details:       "ID does not exist",
				StatusCode:    200,
				RequestMethod: "GET",
				RequestPath:   "/api/accounts/99999",
			},
			expected: "Account not found | Details: ID does not exist | Request: GET /api/accounts/99999",
		},
		{
			name: "no details",
			err: &sipnav.Error{
				Kind:          sipnav.KindAPI,
				Message:       "Carrier disabled",
				StatusCode:    422,
				RequestMethod: "PUT",
				RequestPath:   "/api/carriers/12",
			},
			expected: "Carrier disabled | Request: PUT /api/carriers/12",
		},
		{
			name: "message only",
			err: &sipnav.Error{
				Kind:    sipnav.KindConnection,
				Message: "Connection failed",
			},
			expected: "Connection failed",
		},
		{
			name: "empty message falls back",
			err: &sipnav.Error{
				Kind:          sipnav.KindAPI,
				StatusCode:    400,
				RequestMethod: "POST",
				RequestPath:   "/api/accounts",
			},
			expected: "API Error | Request: POST /api/accounts",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.err.Error())
		})
	}
}

func TestError_Predicates(t *testing.T) {
	t.Parallel()

	authErr := &sipnav.Error{Kind: sipnav.KindAuth, Message: "Invalid token", StatusCode: 401}
	apiErr := &sipnav.Error{Kind: sipnav.KindAPI, Message: "Bad request", StatusCode: 400}
	connErr := &sipnav.Error{Kind: sipnav.KindConnection, Message: "Connection failed"}
	timeoutErr := &sipnav.Error{Kind: sipnav.KindTimeout, Message: "Request timed out after 30s"}

	assert.True(t, sipnav.IsAuthenticationError(authErr))
	assert.False(t, sipnav.IsAuthenticationError(apiErr))

	assert.True(t, sipnav.IsAPIError(apiErr))
	assert.False(t, sipnav.IsAPIError(authErr))

	assert.True(t, sipnav.IsConnectionError(connErr))
	assert.True(t, sipnav.IsTimeout(timeoutErr))
	assert.True(t, timeoutErr.Timeout())
	assert.False(t, connErr.Timeout())

	assert.False(t, sipnav.IsAPIError(errors.New("plain")))
	assert.False(t, sipnav.IsAPIError(nil))
}

func TestError_WrappedPredicates(t *testing.T) {
	t.Parallel()

	inner := &sipnav.Error{Kind: sipnav.KindAuth, Message: "Invalid token", StatusCode: 401}
	wrapped := fmt.Errorf("listing accounts: %w", inner)

	assert.True(t, sipnav.IsAuthenticationError(wrapped))
	assert.Equal(t, 401, sipnav.StatusCode(wrapped))
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := &sipnav.Error{Kind: sipnav.KindConnection, Message: "Connection failed", Err: cause}

	require.ErrorIs(t, err, cause)
}

func TestStatusCode_NonClientError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, sipnav.StatusCode(errors.New("boom")))
}
