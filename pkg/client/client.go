// Package client is a small SDK for the lamsa HTTP API. It speaks the
// unified JSON envelope, caches reads for a short TTL and retries
// transient failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultCacheTTL is how long a cached read stays fresh.
	DefaultCacheTTL = 5 * time.Minute

	// maxAttempts bounds the retry loop per call.
	maxAttempts = 3
)

// Envelope is the wire shape every API response uses.
type Envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

// ErrorInfo carries the business error code of a failed call.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// APIError is returned when the server answered with a failure envelope.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	return "api error " + e.ErrorCode + ": " + e.Message
}

// Transport executes one HTTP exchange. The production transport adds
// credentials; tests inject a fake.
type Transport interface {
	RoundTrip(ctx context.Context, method, path string, body []byte) (status int, payload []byte, err error)
}

// HTTPTransport is the real Transport. It attaches the bearer token when
// one is set.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPTransport builds a transport against the given base URL,
// e.g. "http://localhost:8080".
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token sent with subsequent requests. An empty
// token clears it.
func (t *HTTPTransport) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

// RoundTrip performs the HTTP exchange and returns the raw payload.
func (t *HTTPTransport) RoundTrip(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.BaseURL+path, reader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	t.mu.RLock()
	token := t.token
	t.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to read response body")
	}

	return resp.StatusCode, payload, nil
}

type cacheEntry struct {
	envelope *Envelope
	storedAt time.Time
}

// Client wraps a Transport with caching and retries.
type Client struct {
	transport Transport
	ttl       time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithCacheTTL overrides the read-cache freshness window.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// New builds a Client on top of the given transport.
func New(transport Transport, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		ttl:       DefaultCacheTTL,
		cache:     make(map[string]cacheEntry),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NormalizeEndpoint guarantees the returned path starts with exactly one
// "/api" prefix, whatever mix of slashes and prefixes the caller passed.
func NormalizeEndpoint(endpoint string) string {
	path := "/" + strings.TrimLeft(endpoint, "/")
	for strings.HasPrefix(path, "/api/") || path == "/api" {
		path = strings.TrimPrefix(path, "/api")
		if path == "" {
			path = "/"
		}
	}

	return "/api" + path
}

// Do executes one API call. GET responses are served from the cache while
// fresh; any successful write drops the whole cache. Transient failures
// (transport errors and 5xx) are retried up to three attempts, but a 401 or
// 403 is returned immediately.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (*Envelope, error) {
	method = strings.ToUpper(method)
	path := NormalizeEndpoint(endpoint)
	cacheKey := method + " " + path

	if method == http.MethodGet {
		if env, ok := c.cached(cacheKey); ok {
			return env, nil
		}
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		payload = data
	}

	env, err := c.roundTripWithRetry(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if method == http.MethodGet {
		c.cache[cacheKey] = cacheEntry{envelope: env, storedAt: c.now()}
	} else {
		// A write may touch any resource; drop every cached read.
		c.cache = make(map[string]cacheEntry)
	}
	c.mu.Unlock()

	return env, nil
}

// Invalidate drops every cached read.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Client) cached(key string) (*Envelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok || c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}

	return entry.envelope, true
}

func (c *Client) roundTripWithRetry(ctx context.Context, method, path string, payload []byte) (*Envelope, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, raw, err := c.transport.RoundTrip(ctx, method, path, payload)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, errors.WithStack(ctx.Err())
			}

			continue
		}

		var env Envelope
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &env); err != nil {
				return nil, errors.Wrap(err, "failed to decode response envelope")
			}
		}
		if env.Code == 0 {
			env.Code = status
		}

		if env.Success {
			return &env, nil
		}

		apiErr := &APIError{StatusCode: status, Message: env.Message}
		if env.Error != nil {
			apiErr.ErrorCode = env.Error.Code
			apiErr.Details = env.Error.Details
		}

		// Auth failures never retry; a fresh attempt cannot succeed
		// with the same credentials.
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, apiErr
		}

		if status >= http.StatusInternalServerError {
			lastErr = apiErr

			continue
		}

		return nil, apiErr
	}

	return nil, errors.Wrap(lastErr, "request failed after retries")
}

// DecodeData unmarshals the envelope's data field into out.
func (e *Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(e.Data, out), "failed to decode envelope data")
}
