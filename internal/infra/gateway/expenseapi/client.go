package expenseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	headerRequestID       = "X-Request-ID"
	maxErrorBodyBytes     = 4 << 10
)

// Client is an HTTP client for the expenses REST API. It issues one request
// per call: no retries, no idempotency keys.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit paces outgoing requests to perSecond with the given burst.
// A non-positive perSecond leaves requests unpaced.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewClient creates a new expenses API client
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  log.WithField("component", "expenseapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues GET {base}{path} and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues POST {base}{path} with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues PUT {base}{path} with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE {base}{path}. Any response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqURL := c.baseURL + path
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)
	log := c.logger.WithContext(ctx).WithFields(map[string]interface{}{"method": method, "url": reqURL})

	if err := c.limiter.Wait(ctx); err != nil {
		return &apperrors.NetworkError{Method: method, URL: reqURL, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("API request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("API request failed")
		return &apperrors.NetworkError{Method: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.WithDuration(time.Since(start)).Warn("API error", "status_code", resp.StatusCode)
		return &apperrors.HTTPError{
			Method: method,
			URL:    reqURL,
			Status: resp.StatusCode,
			Body:   string(errBody),
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.NetworkError{Method: method, URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.WithDuration(time.Since(start)).Debug("API response", "status_code", resp.StatusCode)

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, reqURL, err)
	}
	return nil
}
