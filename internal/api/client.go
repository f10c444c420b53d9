// Package api is the single point for issuing authenticated HTTP requests
// against the remote REST API. It owns the bearer token applied to outgoing
// requests, normalizes every failure into an *Error carrying a human-readable
// message, and raises the process-wide session-expired signal on HTTP 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobtrack-client-go/internal/middleware"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 4 << 20 // 4MiB
)

// Error is the normalized failure every Client method returns. StatusCode is
// zero for transport-level failures that never produced a response.
type Error struct {
	StatusCode int
	Message    string
	Err        error // underlying cause, when any
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Config configures the API client.
type Config struct {
	// BaseURL is the root of the REST API, e.g. https://api.example.com/api/v1.
	BaseURL string
	// Timeout bounds each request. Zero selects a conservative default.
	Timeout time.Duration
	// Logger receives request-level logs. Nil disables them.
	Logger *zap.Logger
	// Transport overrides the base RoundTripper, mainly for tests.
	Transport http.RoundTripper
}

// Client issues JSON requests against the REST API. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu               sync.RWMutex
	token            string
	onSessionExpired func()
}

// New creates an API client. The base URL must be absolute.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: BaseURL must be a valid absolute URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL scheme must be http or https")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL: baseURL,
		logger:  logger,
	}

	// Transport chain: logging(auth(base)). The client itself is the token
	// source, so SetAuthToken takes effect on the next request.
	transport := middleware.NewLoggingTransport(
		middleware.NewAuthTransport(cfg.Transport, c),
		logger,
	)
	c.httpClient = &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	return c, nil
}

// SetAuthToken sets the bearer token attached to subsequent requests. An
// empty token removes the header. Calling with the currently-set value is a
// no-op.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token implements middleware.TokenSource.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnSessionExpired registers the callback invoked whenever any response
// comes back 401. Intended as one-shot wiring during process initialization,
// not a general-purpose event bus. The original caller's error still
// propagates normally.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

func (c *Client) sessionExpired() {
	c.mu.RLock()
	fn := c.onSessionExpired
	c.mu.RUnlock()
	if fn != nil {
		// Dispatched on its own goroutine so store-level handlers never
		// deadlock against a caller holding a store lock.
		go fn()
	}
}

// Do executes one JSON request. path must start with "/". A non-nil body is
// marshaled as JSON. Failures of any kind come back as *Error; the Envelope
// is only valid when the error is nil.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, &Error{Message: "failed to encode request body", Err: err}
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return Envelope{}, &Error{Message: "failed to create request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, &Error{Message: "network error, please try again", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodySize))
	if err != nil {
		return Envelope{}, &Error{Message: "failed to read response body", Err: err}
	}
	env := Envelope{body: raw}

	if resp.StatusCode == http.StatusUnauthorized {
		c.sessionExpired()
	}

	if resp.StatusCode >= 400 {
		msg := env.Str("message")
		if msg == "" {
			msg = "something went wrong, please try again"
		}
		return Envelope{}, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	return env, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}
