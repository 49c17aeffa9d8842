// Package client is a thin SDK for a model-endpoint platform speaking the
// deploy/invoke/delete control surface. It exposes two invocation paths: a
// high-level Predictor bound to an endpoint name plus a fixed encoding, and
// the low-level InvokeEndpoint escape hatch taking raw bytes.
//
// The client holds no authoritative state; everything it caches is a name
// plus serialization settings for resources owned by the remote platform.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"endpointd/pkg/types"
)

// RetryPolicy controls transport-level retries. Only idempotent calls (GET,
// DELETE, invocations) are retried; endpoint creation never is.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, minimum 1.
	MaxAttempts int
	// Backoff is the wait between attempts, grown linearly per attempt.
	Backoff time.Duration
}

// DefaultRetryPolicy is applied unless WithRetryPolicy overrides it.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 200 * time.Millisecond}

// Client talks to one platform base URL.
type Client struct {
	baseURL      string
	httpc        *http.Client
	retry        RetryPolicy
	pollInterval time.Duration
	log          zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpc = h } }

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.httpc.Timeout = d } }

// WithRetryPolicy overrides the default transport retry policy.
func WithRetryPolicy(p RetryPolicy) Option { return func(c *Client) { c.retry = p } }

// WithPollInterval sets how often Deploy polls for endpoint readiness.
func WithPollInterval(d time.Duration) Option { return func(c *Client) { c.pollInterval = d } }

// WithLogger installs a structured logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New constructs a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpc:        &http.Client{Timeout: 60 * time.Second},
		retry:        DefaultRetryPolicy,
		pollInterval: 500 * time.Millisecond,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.MaxAttempts < 1 {
		c.retry.MaxAttempts = 1
	}
	return c
}

// CreateEndpoint asks the platform to provision an endpoint. The platform
// may block until the endpoint is running or failed; use Deploy for the
// poll-until-ready workflow regardless.
func (c *Client) CreateEndpoint(ctx context.Context, spec types.EndpointSpec) (types.Endpoint, error) {
	var ep types.Endpoint
	body, err := json.Marshal(spec)
	if err != nil {
		return ep, err
	}
	// Creation allocates resources: never auto-retried.
	err = c.doJSON(ctx, http.MethodPost, "/endpoints", body, &ep, false)
	return ep, err
}

// DescribeEndpoint fetches the current view of a named endpoint.
func (c *Client) DescribeEndpoint(ctx context.Context, name string) (types.Endpoint, error) {
	var ep types.Endpoint
	err := c.doJSON(ctx, http.MethodGet, "/endpoints/"+url.PathEscape(name), nil, &ep, true)
	return ep, err
}

// ListEndpoints returns all endpoints the platform knows about.
func (c *Client) ListEndpoints(ctx context.Context) ([]types.Endpoint, error) {
	var resp types.EndpointsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/endpoints", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Endpoints, nil
}

// DeleteEndpoint tears an endpoint down by name. A missing endpoint is a
// no-op success so cleanup can always run. deleteConfig also removes the
// retained endpoint definition on the platform.
func (c *Client) DeleteEndpoint(ctx context.Context, name string, deleteConfig bool) error {
	p := "/endpoints/" + url.PathEscape(name)
	if deleteConfig {
		p += "?config=true"
	}
	err := c.doJSON(ctx, http.MethodDelete, p, nil, nil, true)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// InvokeEndpoint is the low-level invocation surface: endpoint name, content
// type, raw payload in; raw response body out. It bypasses the Predictor
// abstraction entirely.
func (c *Client) InvokeEndpoint(ctx context.Context, name, contentType, accept string, payload []byte) ([]byte, error) {
	u := c.baseURL + "/endpoints/" + url.PathEscape(name) + "/invocations"
	var out []byte
	err := c.withRetry(ctx, true, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			return &transportError{err: err}
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return &transportError{err: err}
		}
		if resp.StatusCode != http.StatusOK {
			return apiErrorFrom(resp.StatusCode, b)
		}
		out = b
		return nil
	})
	return out, err
}

// doJSON performs one JSON round-trip against path, optionally retrying.
func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any, retryable bool) error {
	return c.withRetry(ctx, retryable, func() error {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			return &transportError{err: err}
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return &transportError{err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return apiErrorFrom(resp.StatusCode, b)
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(b, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
		return nil
	})
}

// withRetry runs fn up to the policy's attempt budget. Only transport errors
// and 5xx responses are retried; client errors surface immediately.
func (c *Client) withRetry(ctx context.Context, retryable bool, fn func() error) error {
	attempts := c.retry.MaxAttempts
	if !retryable {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || attempt == attempts {
			return lastErr
		}
		c.log.Debug().Err(lastErr).Int("attempt", attempt).Msg("retrying request")
		select {
		case <-time.After(c.retry.Backoff * time.Duration(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
