package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeconsole-backend/internal/domain"
)

type fakeRecorder struct {
	mu       sync.Mutex
	statuses []int
	states   []int
}

func (r *fakeRecorder) RecordGatewayRequest(_ string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *fakeRecorder) SetCircuitBreakerState(_ string, state int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func newTestGateway(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := New(Config{
		BaseURL:          srv.URL + "/",
		Token:            "secret-token",
		Timeout:          2 * time.Second,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	}, opts...)
	require.NoError(t, err)
	return g
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestGet_UnwrapsEnvelopeAndPaging(t *testing.T) {
	var gotPath, gotAuth, gotRequestID string
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/jetpack-blogs/123/rest-api/", r.URL.Path)
		gotPath = r.URL.Query().Get("path")
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")

		w.Header().Set("X-WP-TotalPages", "3")
		w.Header().Set("X-WP-Total", "30")
		w.Write([]byte(`{"data":[{"id":1,"name":"USA","order":0}]}`))
	})

	resp, err := g.Get(context.Background(), 123, "/wc/v3/products", url.Values{"page": {"2"}})
	require.NoError(t, err)

	assert.Equal(t, "/wc/v3/products?page=2", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.JSONEq(t, `[{"id":1,"name":"USA","order":0}]`, string(resp.Data))
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 30, resp.Total)
}

func TestPut_WrapsBodyWithMethodOverride(t *testing.T) {
	var got proxyRequest
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &got))
		w.Write([]byte(`{"data":{"id":4,"name":"Canada","order":1}}`))
	})

	resp, err := g.Put(context.Background(), 123, "/wc/v3/shipping/zones/4", map[string]string{"name": "Canada"})
	require.NoError(t, err)

	assert.Equal(t, "/wc/v3/shipping/zones/4&_method=put", got.Path)
	assert.JSONEq(t, `{"name":"Canada"}`, got.Body)
	assert.True(t, got.JSON)
	assert.JSONEq(t, `{"id":4,"name":"Canada","order":1}`, string(resp.Data))
}

func TestGet_MapsErrorBody(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"woocommerce_rest_shipping_zone_invalid","message":"Invalid resource id."}`))
	})

	_, err := g.Get(context.Background(), 123, "/wc/v3/shipping/zones/99", nil)

	te := domain.AsTransportError(err)
	require.NotNil(t, te)
	assert.Equal(t, "woocommerce_rest_shipping_zone_invalid", te.Code)
	assert.Equal(t, "Invalid resource id.", te.Message)
	assert.Equal(t, http.StatusNotFound, te.Status)
}

func TestGet_InvalidJSON(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})

	_, err := g.Get(context.Background(), 123, "/wc/v3/shipping/zones", nil)
	assert.Equal(t, domain.ErrCodeInvalidResult, domain.AsTransportError(err).Code)
}

func TestBreakerOpensOnServerErrorsOnly(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	status := http.StatusBadRequest
	rec := &fakeRecorder{}
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		code := status
		mu.Unlock()
		w.WriteHeader(code)
		w.Write([]byte(`{"error":"failed","message":"nope"}`))
	}, WithRecorder(rec))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := g.Get(ctx, 1, "/wc/v3/shipping/zones", nil)
		assert.Equal(t, http.StatusBadRequest, domain.AsTransportError(err).Status)
	}

	mu.Lock()
	status = http.StatusBadGateway
	mu.Unlock()
	for i := 0; i < 2; i++ {
		_, err := g.Get(ctx, 1, "/wc/v3/shipping/zones", nil)
		assert.Equal(t, "failed", domain.AsTransportError(err).Code)
	}

	_, err := g.Get(ctx, 1, "/wc/v3/shipping/zones", nil)
	te := domain.AsTransportError(err)
	assert.Equal(t, domain.ErrCodeUnavailable, te.Code)
	assert.Equal(t, http.StatusServiceUnavailable, te.Status)

	mu.Lock()
	assert.Equal(t, 5, calls, "open breaker must not reach the server")
	mu.Unlock()
	assert.Equal(t, []int{400, 400, 400, 502, 502, 0}, rec.statuses)
	assert.NotEmpty(t, rec.states)
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	g.timeout = 50 * time.Millisecond

	_, err := g.Get(context.Background(), 1, "/wc/v3/shipping/zones", nil)
	assert.Equal(t, domain.ErrCodeTimeout, domain.AsTransportError(err).Code)
}
