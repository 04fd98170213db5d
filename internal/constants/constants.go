package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default per-attempt timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits and backoff bounds.
const (
	// DefaultRetryMax is the default number of retries after the first attempt.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the initial backoff delay.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax caps the exponential backoff delay.
	DefaultRetryWaitMax = 10 * time.Second
)

// Token lifetimes.
const (
	// TokenExpiryBuffer treats tokens expiring this soon as already invalid.
	TokenExpiryBuffer = 30 * time.Second
)

// Pagination defaults.
const (
	// LargePerPage is used for bulk listings such as accounts.
	LargePerPage = 100
)

// Cache defaults.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultLRNCacheTTL is how long an LRN dip result stays valid.
	DefaultLRNCacheTTL = 5 * time.Minute
)

// Error body limits.
const (
	// MaxErrorBodyExcerpt limits how much of a non-JSON error body is kept.
	MaxErrorBodyExcerpt = 512
)
