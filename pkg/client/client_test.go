package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	method string
	path   string
	body   []byte
}

// fakeTransport replays a scripted list of responses and records every call.
type fakeTransport struct {
	mu        sync.Mutex
	calls     []fakeCall
	responses []fakeResponse
}

type fakeResponse struct {
	status  int
	payload []byte
	err     error
}

func okEnvelope(t *testing.T, data any) []byte {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	payload, err := json.Marshal(Envelope{Success: true, Code: http.StatusOK, Data: raw})
	require.NoError(t, err)

	return payload
}

func errEnvelope(t *testing.T, code int, errorCode string) []byte {
	t.Helper()

	payload, err := json.Marshal(Envelope{
		Success: false,
		Code:    code,
		Message: "request failed",
		Error:   &ErrorInfo{Code: errorCode},
	})
	require.NoError(t, err)

	return payload
}

func (f *fakeTransport) respond(status int, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{status: status, payload: payload})
}

func (f *fakeTransport) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResponse{err: err})
}

func (f *fakeTransport) RoundTrip(_ context.Context, method, path string, body []byte) (int, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{method: method, path: path, body: body})
	if len(f.responses) == 0 {
		return http.StatusOK, nil, nil
	}

	next := f.responses[0]
	f.responses = f.responses[1:]

	return next.status, next.payload, next.err
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func TestNormalizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"salons":          "/api/salons",
		"/salons":         "/api/salons",
		"/api/salons":     "/api/salons",
		"api/salons":      "/api/salons",
		"/api/api/salons": "/api/salons",
		"/api":            "/api/",
		"":                "/api/",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeEndpoint(in), "input %q", in)
	}
}

func TestClient_GetCachesWithinTTL(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusOK, okEnvelope(t, []string{"a", "b"}))

	c := New(transport)

	first, err := c.Do(context.Background(), http.MethodGet, "salons", nil)
	require.NoError(t, err)

	second, err := c.Do(context.Background(), "get", "/api/salons", nil)
	require.NoError(t, err)

	// One wire call; the second read, even spelled differently, hit the cache.
	assert.Equal(t, 1, transport.callCount())
	assert.Equal(t, first, second)

	var names []string
	require.NoError(t, second.DecodeData(&names))
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestClient_CacheExpires(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusOK, okEnvelope(t, 1))
	transport.respond(http.StatusOK, okEnvelope(t, 2))

	c := New(transport, WithCacheTTL(time.Minute))

	clock := time.Now()
	c.now = func() time.Time { return clock }

	_, err := c.Do(context.Background(), http.MethodGet, "/salons", nil)
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)

	env, err := c.Do(context.Background(), http.MethodGet, "/salons", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, transport.callCount())

	var n int
	require.NoError(t, env.DecodeData(&n))
	assert.Equal(t, 2, n)
}

func TestClient_WriteDropsCache(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusOK, okEnvelope(t, "stale"))
	transport.respond(http.StatusCreated, okEnvelope(t, "created"))
	transport.respond(http.StatusOK, okEnvelope(t, "fresh"))

	c := New(transport)
	ctx := context.Background()

	_, err := c.Do(ctx, http.MethodGet, "/salons", nil)
	require.NoError(t, err)

	_, err = c.Do(ctx, http.MethodPost, "/bookings", map[string]string{"salonId": "x"})
	require.NoError(t, err)

	env, err := c.Do(ctx, http.MethodGet, "/salons", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, transport.callCount())

	var body string
	require.NoError(t, env.DecodeData(&body))
	assert.Equal(t, "fresh", body)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusInternalServerError, errEnvelope(t, http.StatusInternalServerError, "INTERNAL_ERROR"))
	transport.fail(errors.New("connection reset"))
	transport.respond(http.StatusOK, okEnvelope(t, "ok"))

	c := New(transport)

	env, err := c.Do(context.Background(), http.MethodGet, "/salons", nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, 3, transport.callCount())
}

func TestClient_RetriesAreBounded(t *testing.T) {
	transport := &fakeTransport{}
	for range 5 {
		transport.respond(http.StatusServiceUnavailable, errEnvelope(t, http.StatusServiceUnavailable, "UNAVAILABLE"))
	}

	c := New(transport)

	_, err := c.Do(context.Background(), http.MethodGet, "/salons", nil)
	require.Error(t, err)
	assert.Equal(t, maxAttempts, transport.callCount())
}

func TestClient_NeverRetriesAuthFailures(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		transport := &fakeTransport{}
		transport.respond(status, errEnvelope(t, status, "AUTH_FAILED"))

		c := New(transport)

		_, err := c.Do(context.Background(), http.MethodGet, "/me", nil)
		require.Error(t, err)
		assert.Equal(t, 1, transport.callCount(), "status %d", status)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, status, apiErr.StatusCode)
		assert.Equal(t, "AUTH_FAILED", apiErr.ErrorCode)
	}
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusNotFound, errEnvelope(t, http.StatusNotFound, "SALON_NOT_FOUND"))

	c := New(transport)

	_, err := c.Do(context.Background(), http.MethodGet, "/salons/x", nil)
	require.Error(t, err)
	assert.Equal(t, 1, transport.callCount())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "SALON_NOT_FOUND", apiErr.ErrorCode)
}

func TestClient_ErrorResponsesAreNotCached(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusNotFound, errEnvelope(t, http.StatusNotFound, "SALON_NOT_FOUND"))
	transport.respond(http.StatusOK, okEnvelope(t, "found"))

	c := New(transport)
	ctx := context.Background()

	_, err := c.Do(ctx, http.MethodGet, "/salons/x", nil)
	require.Error(t, err)

	env, err := c.Do(ctx, http.MethodGet, "/salons/x", nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, 2, transport.callCount())
}

func TestClient_Invalidate(t *testing.T) {
	transport := &fakeTransport{}
	transport.respond(http.StatusOK, okEnvelope(t, "one"))
	transport.respond(http.StatusOK, okEnvelope(t, "two"))

	c := New(transport)
	ctx := context.Background()

	_, err := c.Do(ctx, http.MethodGet, "/salons", nil)
	require.NoError(t, err)

	c.Invalidate()

	_, err = c.Do(ctx, http.MethodGet, "/salons", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, transport.callCount())
}
