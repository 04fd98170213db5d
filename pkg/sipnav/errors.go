package sipnav

import (
	"errors"
	"fmt"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrNoCredentials         = errors.New("either an API key or username/password must be configured")
	ErrAmbiguousCredentials  = errors.New("configure either an API key or username/password, not both")
	ErrStaticTokenNoRefresh  = errors.New("static API key cannot be refreshed")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrCacheKeyNotFound      = errors.New("key not found in cache")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
)

// Kind classifies a client error into one of the observable categories.
type Kind int

const (
	// KindConnection covers DNS failures, refused or reset connections.
	KindConnection Kind = iota + 1

	// KindTimeout covers per-attempt timeouts.
	KindTimeout

	// KindAuth covers 401 responses and failed login attempts. Never retried.
	KindAuth

	// KindAPI covers other non-2xx statuses and 2xx envelopes reporting
	// success=false. Never retried.
	KindAPI
)

// Error is the root error type for all SIPNAV client failures. Connection
// failures and timeouts are retried by the transport; auth and API failures
// are terminal. Callers switch on Kind or use the Is* helpers.
//
// Every Error carries the method and endpoint path of the request that
// produced it.
type Error struct {
	Kind          Kind
	Message       string
	Details       string
	StatusCode    int
	RequestMethod string
	RequestPath   string
	Err           error
}

// Error renders the message, optional details, and the originating request,
// joined with " | ". Segments with no data are omitted.
func (e *Error) Error() string {
	segments := make([]string, 0, 3)

	message := e.Message
	if message == "" {
		message = "API Error"
	}

	segments = append(segments, message)

	if e.Details != "" {
		segments = append(segments, "Details: "+e.Details)
	}

	if e.RequestMethod != "" && e.RequestPath != "" {
		segments = append(segments, fmt.Sprintf("Request: %s %s", e.RequestMethod, e.RequestPath))
	}

	return strings.Join(segments, " | ")
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the error was caused by a per-attempt timeout.
func (e *Error) Timeout() bool {
	return e.Kind == KindTimeout
}

// IsAuthenticationError reports whether err is a 401 or failed login.
func IsAuthenticationError(err error) bool {
	return hasKind(err, KindAuth)
}

// IsAPIError reports whether err is a terminal API failure: a non-auth 4xx,
// an exhausted 429/5xx, or a 2xx envelope with success=false.
func IsAPIError(err error) bool {
	return hasKind(err, KindAPI)
}

// IsConnectionError reports whether err is a network-level failure.
func IsConnectionError(err error) bool {
	return hasKind(err, KindConnection)
}

// IsTimeout reports whether err is a request timeout.
func IsTimeout(err error) bool {
	return hasKind(err, KindTimeout)
}

func hasKind(err error, kind Kind) bool {
	clientErr := &Error{}
	if errors.As(err, &clientErr) {
		return clientErr.Kind == kind
	}

	return false
}

// StatusCode returns the HTTP status attached to err, or 0 when err is not a
// sipnav error or carries no status.
func StatusCode(err error) int {
	clientErr := &Error{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}

	return 0
}
