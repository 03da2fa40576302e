package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"storeconsole-backend/internal/domain"
	"storeconsole-backend/pkg/logger"
)

const breakerName = "store-gateway"

// Recorder receives gateway measurements. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordGatewayRequest(method string, status int, duration time.Duration)
	SetCircuitBreakerState(name string, state int)
}

type Config struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	RatePerSecond    float64
	Burst            int
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// HTTPGateway talks to sites through the REST proxy:
//
//	GET  {base}/jetpack-blogs/{site}/rest-api/?path={path}&json=true
//	POST {base}/jetpack-blogs/{site}/rest-api/  {"path": "{path}&_method=put", "body": "...", "json": true}
//
// Successful bodies are wrapped as {"data": ...}.
type HTTPGateway struct {
	baseURL  string
	token    string
	timeout  time.Duration
	client   *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	recorder Recorder
}

type Option func(*HTTPGateway)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) { g.client = c }
}

// WithRecorder registers a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(g *HTTPGateway) { g.recorder = r }
}

func New(cfg Config, opts ...Option) (*HTTPGateway, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid gateway base URL: %w", err)
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	g := &HTTPGateway{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		timeout: cfg.Timeout,
		client:  &http.Client{},
		limiter: rate.NewLimiter(limit, burst),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			if g.recorder != nil {
				g.recorder.SetCircuitBreakerState(name, int(to))
			}
		},
	})
	return g, nil
}

func (g *HTTPGateway) Get(ctx context.Context, siteID int64, path string, query url.Values) (*domain.Response, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return g.do(ctx, http.MethodGet, siteID, path, nil)
}

func (g *HTTPGateway) Post(ctx context.Context, siteID int64, path string, body interface{}) (*domain.Response, error) {
	return g.do(ctx, http.MethodPost, siteID, path, body)
}

func (g *HTTPGateway) Put(ctx context.Context, siteID int64, path string, body interface{}) (*domain.Response, error) {
	return g.do(ctx, http.MethodPut, siteID, path, body)
}

func (g *HTTPGateway) Delete(ctx context.Context, siteID int64, path string) (*domain.Response, error) {
	return g.do(ctx, http.MethodDelete, siteID, path, nil)
}

// clientError is a 4xx answer. It is returned through the breaker as a
// result so bad requests do not trip it.
type clientError struct{ err *domain.TransportError }

func (g *HTTPGateway) do(ctx context.Context, method string, siteID int64, path string, body interface{}) (*domain.Response, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, domain.AsTransportError(err)
	}

	start := time.Now()
	status := 0
	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, code, err := g.roundTrip(ctx, method, siteID, path, body)
		status = code
		if err != nil {
			var te *domain.TransportError
			if errors.As(err, &te) && te.Status >= 400 && te.Status < 500 {
				return clientError{err: te}, nil
			}
			return nil, err
		}
		return resp, nil
	})
	took := time.Since(start)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.TransportError{
			Code:    domain.ErrCodeUnavailable,
			Message: fmt.Sprintf("circuit breaker open for %s", breakerName),
			Status:  http.StatusServiceUnavailable,
		}
	}
	if ce, ok := result.(clientError); ok {
		err = ce.err
	}

	if g.recorder != nil {
		g.recorder.RecordGatewayRequest(method, status, took)
	}
	logger.GatewayCall(method, path, siteID, status, took, err)

	if err != nil {
		return nil, domain.AsTransportError(err)
	}
	return result.(*domain.Response), nil
}

type proxyRequest struct {
	Path string `json:"path"`
	Body string `json:"body,omitempty"`
	JSON bool   `json:"json"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *HTTPGateway) roundTrip(ctx context.Context, method string, siteID int64, path string, body interface{}) (*domain.Response, int, error) {
	req, err := g.newRequest(ctx, method, siteID, path, body)
	if err != nil {
		return nil, 0, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, domain.AsTransportError(ctxErr)
		}
		return nil, 0, &domain.TransportError{Code: domain.ErrCodeUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &domain.TransportError{Code: domain.ErrCodeInvalidResult, Message: err.Error(), Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, decodeError(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, &domain.TransportError{Code: domain.ErrCodeInvalidResult, Message: err.Error(), Status: resp.StatusCode}
	}

	return &domain.Response{
		Data:       env.Data,
		TotalPages: headerInt(resp.Header, "X-WP-TotalPages"),
		Total:      headerInt(resp.Header, "X-WP-Total"),
	}, resp.StatusCode, nil
}

func (g *HTTPGateway) newRequest(ctx context.Context, method string, siteID int64, path string, body interface{}) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/jetpack-blogs/%d/rest-api/", g.baseURL, siteID)

	var req *http.Request
	var err error
	if method == http.MethodGet {
		q := url.Values{}
		q.Set("path", path)
		q.Set("json", "true")
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	} else {
		pr := proxyRequest{Path: path, JSON: true}
		if method != http.MethodPost {
			pr.Path = path + "&_method=" + strings.ToLower(method)
		}
		if body != nil {
			encoded, mErr := json.Marshal(body)
			if mErr != nil {
				return nil, &domain.TransportError{Code: domain.ErrCodeInvalidResult, Message: mErr.Error()}
			}
			pr.Body = string(encoded)
		}
		payload, mErr := json.Marshal(pr)
		if mErr != nil {
			return nil, &domain.TransportError{Code: domain.ErrCodeInvalidResult, Message: mErr.Error()}
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, &domain.TransportError{Code: domain.ErrCodeUnknown, Message: err.Error()}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	return req, nil
}

func decodeError(status int, raw []byte) *domain.TransportError {
	te := &domain.TransportError{Code: "http_error", Message: http.StatusText(status), Status: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return te
	}
	switch {
	case body.Code != "":
		te.Code = body.Code
	case body.Error != "":
		te.Code = body.Error
	}
	if body.Message != "" {
		te.Message = body.Message
	}
	return te
}

func headerInt(h http.Header, key string) int {
	v, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return 0
	}
	return v
}
