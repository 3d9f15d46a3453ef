package wakatime

// Client for the WakaTime API
// This file is the transport layer: auth header, rate limiting, circuit breaker, status check
// Business decoding lives in summaries.go

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"langchart/internal/infra/log"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL - production WakaTime API
const DefaultBaseURL = "https://wakatime.com/api/v1"

// NetworkError is returned for any non-2xx response. Requests are never retried.
type NetworkError struct {
	StatusCode int
	Body       []byte
}

func (e *NetworkError) Error() string {
	if e == nil {
		return "http error: <nil>"
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("HTTP error %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, string(e.Body))
}

// ErrResponseTooLarge is returned when a body exceeds Options.MaxResponseSize.
var ErrResponseTooLarge = errors.New("response too large")

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL         string
	Timeout         time.Duration // 0 = no timeout
	MaxResponseSize int64
	HTTPClient      *http.Client
}

// Client stores everything needed for API work: base URL, HTTP client and key
type Client struct {
	baseURL         string
	apiKey          string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter             // WakaTime allows ~10 req/s per user
	circuitBreaker  *gobreaker.CircuitBreaker // protects watch mode from hammering a failing API
	maxResponseSize int64
	now             func() time.Time
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxResponseSize := opts.MaxResponseSize
	if maxResponseSize <= 0 {
		maxResponseSize = 10 * 1024 * 1024 // 10MB default
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		}
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "WakaTimeAPI",
		MaxRequests: 1,
		Interval:    0, // counts reset only on state change
		Timeout:     5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// 4xx answers mean the request itself is wrong, not that the API is down
		IsSuccessful: func(err error) bool {
			var ne *NetworkError
			if errors.As(err, &ne) {
				return ne.StatusCode < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.LogWarn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		baseURL:         baseURL,
		apiKey:          apiKey,
		httpClient:      httpClient,
		rateLimiter:     rate.NewLimiter(rate.Limit(10), 10),
		circuitBreaker:  circuitBreaker,
		maxResponseSize: maxResponseSize,
		now:             time.Now,
	}
}

// BreakerState exposes the circuit breaker state for logging in watch mode.
func (c *Client) BreakerState() gobreaker.State {
	return c.circuitBreaker.State()
}

// authHeader encodes the raw key. WakaTime accepts it without the usual "user:" prefix.
func authHeader(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey))
}

// MakeRequest performs a GET against endpoint (path plus query) and returns the body.
func (c *Client) MakeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var respBody []byte
	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		body, err := c.doGET(ctx, requestID, endpoint, startTime)
		if err != nil {
			return nil, err
		}
		respBody = body
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.LogError("Circuit breaker rejected request", zap.String("request_id", requestID), zap.String("endpoint", endpoint), zap.Error(err))
		}
		return nil, err
	}

	return respBody, nil
}

func (c *Client) doGET(ctx context.Context, requestID, endpoint string, startTime time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", authHeader(c.apiKey))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "langchart/1.0")

	log.LogRequest(requestID, http.MethodGet, endpoint, zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, 0, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	// one byte past the limit tells a full-size body from a truncated one
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(respBody)) > c.maxResponseSize {
		duration := time.Since(startTime).Milliseconds()
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.Int64("limit_bytes", c.maxResponseSize))
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrResponseTooLarge, c.maxResponseSize)
	}

	duration := time.Since(startTime).Milliseconds()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint))
		return nil, &NetworkError{StatusCode: resp.StatusCode, Body: respBody}
	}

	log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", endpoint), zap.String("status", "success"))

	return respBody, nil
}
