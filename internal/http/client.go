// Package http implements the authenticated request pipeline shared by every
// SIPNAV resource client: URL building, bearer-token injection, platform
// scoping, per-attempt timeouts, retry with exponential backoff, and the
// classification of failures into the sipnav error taxonomy.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/bluedragon-network/sipnav-go/internal/constants"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// TokenProvider resolves the bearer token attached to outgoing requests.
// Implementations may perform a lazy login on first use.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// SessionInvalidator is implemented by token providers whose cached session
// should be dropped after a 401 so the next call re-authenticates.
type SessionInvalidator interface {
	Invalidate()
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// RawBody bypasses JSON encoding for multipart uploads. ContentType
	// must be set alongside it.
	RawBody     io.Reader
	ContentType string
}

// Response represents an API response. Body is fully read and the underlying
// connection returned to the pool before Do returns.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Envelope decodes the response body as a SIPNAV envelope.
func (r *Response) Envelope() (*sipnav.Envelope, error) {
	var env sipnav.Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return nil, fmt.Errorf("parsing response envelope: %w", err)
	}

	return &env, nil
}

// Client executes API requests with retry and error classification.
type Client struct {
	baseURL      string
	tokens       TokenProvider
	platformID   int
	userAgent    string
	debug        bool
	logger       sipnav.Logger
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	retryClient  *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger sipnav.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-attempt timeout. It applies to each attempt
// separately, not cumulatively across retries.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPlatformID scopes every request to a platform by injecting the
// platform_id query parameter.
func WithPlatformID(platformID int) Option {
	return func(c *Client) {
		c.platformID = platformID
	}
}

// WithRetryConfig sets the retry budget and the backoff bounds. retryMax is
// the number of retries after the first attempt; zero disables retrying.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// NewClient creates an API client for the given base URL. tokens may be nil
// for unauthenticated calls (login, password reset).
func NewClient(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokens:       tokens,
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	// Keep the library's own pooled transport; replacing HTTPClient would
	// fall back to http.DefaultTransport and share the pool process-wide.
	retryClient.HTTPClient.Timeout = client.timeout
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.CheckRetry = retryPolicy
	retryClient.Backoff = retryablehttp.DefaultBackoff
	// Passthrough keeps the last response/error intact so exhaustion
	// surfaces the real cause instead of a synthetic "gave up" error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client.retryClient = retryClient

	return client
}

// retryPolicy retries connection failures, timeouts, 429, and 5xx. Every
// other status, 401 included, is terminal.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}

	return false, nil
}

// Do executes a request and classifies the outcome. The returned Response is
// non-nil whenever an HTTP status was received, even alongside an error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.buildURL(req)

	httpReq, err := c.buildRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportError(req, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &sipnav.Error{
			Kind:          sipnav.KindConnection,
			Message:       "Connection failed",
			Details:       err.Error(),
			RequestMethod: req.Method,
			RequestPath:   req.Path,
			Err:           err,
		}
	}

	response := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"status": httpResp.StatusCode,
			"size":   len(body),
		})
	}

	return response, c.classifyResponse(req, response)
}

// Get makes a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post makes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostRaw makes a POST request with a pre-encoded body, e.g. multipart form
// data.
func (c *Client) PostRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		RawBody:     bytes.NewReader(body),
		ContentType: contentType,
	})
}

// Put makes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch makes a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete makes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// CloseIdleConnections releases the underlying connection pool.
func (c *Client) CloseIdleConnections() {
	c.retryClient.HTTPClient.CloseIdleConnections()
}

func (c *Client) buildURL(req *Request) string {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")

	query := url.Values{}
	for key, values := range req.Query {
		query[key] = values
	}

	if c.platformID > 0 && !query.Has("platform_id") {
		query.Set("platform_id", strconv.Itoa(c.platformID))
	}

	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

func (c *Client) buildRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var (
		bodyBytes   []byte
		contentType string
		err         error
	)

	switch {
	case req.RawBody != nil:
		// Buffered so retries can rewind the body.
		bodyBytes, err = io.ReadAll(req.RawBody)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}

		contentType = req.ContentType

	case req.Body != nil:
		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		contentType = "application/json"
	}

	var bodyReader io.Reader
	if bodyBytes != nil {
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokens != nil {
		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

func (c *Client) classifyTransportError(req *Request, err error) error {
	if isTimeout(err) {
		return &sipnav.Error{
			Kind:          sipnav.KindTimeout,
			Message:       fmt.Sprintf("Request timed out after %s", c.timeout),
			RequestMethod: req.Method,
			RequestPath:   req.Path,
			Err:           err,
		}
	}

	return &sipnav.Error{
		Kind:          sipnav.KindConnection,
		Message:       "Connection failed",
		Details:       err.Error(),
		RequestMethod: req.Method,
		RequestPath:   req.Path,
		Err:           err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

func (c *Client) classifyResponse(req *Request, resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if invalidator, ok := c.tokens.(SessionInvalidator); ok {
			invalidator.Invalidate()
		}

		message := "Invalid token or authentication failed"

		var details string
		if env, err := resp.Envelope(); err == nil {
			if env.Message != "" {
				message = env.Message
			}

			details = env.ErrorDetails()
		}

		return &sipnav.Error{
			Kind:          sipnav.KindAuth,
			Message:       message,
			Details:       details,
			StatusCode:    resp.StatusCode,
			RequestMethod: req.Method,
			RequestPath:   req.Path,
		}

	case resp.StatusCode >= http.StatusBadRequest:
		message := fmt.Sprintf("API request failed with status %d", resp.StatusCode)

		var details string
		if env, err := resp.Envelope(); err == nil {
			if env.Message != "" {
				message = env.Message
			}

			details = env.ErrorDetails()
		} else if excerpt := bodyExcerpt(resp.Body); excerpt != "" {
			details = excerpt
		}

		return &sipnav.Error{
			Kind:          sipnav.KindAPI,
			Message:       message,
			Details:       details,
			StatusCode:    resp.StatusCode,
			RequestMethod: req.Method,
			RequestPath:   req.Path,
		}

	default:
		// The platform reports some logical failures with a 2xx status
		// and success=false in the envelope.
		env, err := resp.Envelope()
		if err != nil || !env.Failed() {
			return nil
		}

		return &sipnav.Error{
			Kind:          sipnav.KindAPI,
			Message:       env.Message,
			Details:       env.ErrorDetails(),
			StatusCode:    resp.StatusCode,
			RequestMethod: req.Method,
			RequestPath:   req.Path,
		}
	}
}

func bodyExcerpt(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > constants.MaxErrorBodyExcerpt {
		text = text[:constants.MaxErrorBodyExcerpt]
	}

	return text
}
