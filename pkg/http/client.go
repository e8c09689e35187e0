package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// DefaultMaxRetries is the number of retries after the initial attempt
const DefaultMaxRetries = 3

var errRetryableStatus = errors.New("retryable status")

type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

type RequestOptions struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is sent verbatim when it is a []byte, otherwise JSON-encoded
	Body    interface{}
	Context context.Context
	// MaxRetries of 0 means DefaultMaxRetries, negative disables retrying
	MaxRetries int
	Backoff    BackoffPolicy
	// RetryOn reports whether a response status should be retried.
	// Defaults to IsServiceUnavailable.
	RetryOn func(statusCode int) bool
	Verbose bool
	// Logger overrides the client logger for this request
	Logger *zap.Logger
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Attempts   int
}

// IsServiceUnavailable is the default retry predicate: only 503 is retried
func IsServiceUnavailable(statusCode int) bool {
	return statusCode == http.StatusServiceUnavailable
}

func NewClient() *Client {
	logger, _ := zap.NewProduction()
	return NewClientWithLogger(logger)
}

// NewClientWithLogger creates a new HTTP client with a custom logger
func NewClientWithLogger(logger *zap.Logger) *Client {
	return NewClientWithHTTPClient(&http.Client{
		Timeout: 30 * time.Second,
	}, logger)
}

// NewClientWithHTTPClient wraps an existing net/http client. The client must be
// safe for concurrent use if the returned Client is shared.
func NewClientWithHTTPClient(httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Do performs the request, retrying while RetryOn matches the response status.
// Any other status is returned without error. When retries run out the last
// retryable response is returned, also without error, so callers can map it.
func (c *Client) Do(opts RequestOptions) (*Response, error) {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Backoff == nil {
		opts.Backoff = DefaultBackoff
	}
	if opts.RetryOn == nil {
		opts.RetryOn = IsServiceUnavailable
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = c.logger
	}
	logger = logger.With(zap.String("method", opts.Method), zap.String("url", opts.URL))

	body, err := encodeBody(opts.Body)
	if err != nil {
		logger.Error("Failed to encode request body", zap.Error(err))
		return nil, err
	}

	var last *Response
	attempt := 0

	operation := func() (*Response, error) {
		req, err := c.buildRequest(ctx, opts, body)
		if err != nil {
			logger.Error("Failed to build request", zap.Error(err))
			return nil, backoff.Permanent(err)
		}

		logger.Debug("Making HTTP request", zap.Int("attempt", attempt))
		if opts.Verbose {
			logger.Info("Request",
				zap.Int("attempt", attempt),
				zap.Any("headers", redactHeaders(req.Header)),
				zap.ByteString("body", body))
		}
		attempt++

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Error("HTTP request failed", zap.Error(err))
			return nil, backoff.Permanent(fmt.Errorf("http request failed: %w", err))
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			logger.Error("Failed to read response body", zap.Error(err))
			return nil, backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		resp := &Response{
			StatusCode: httpResp.StatusCode,
			Headers:    httpResp.Header,
			Body:       respBody,
			Attempts:   attempt,
		}
		last = resp

		if opts.Verbose {
			logger.Info("Response",
				zap.Int("status_code", resp.StatusCode),
				zap.ByteString("body", respBody))
		}

		if opts.RetryOn(resp.StatusCode) {
			logger.Warn("Service unavailable, will retry",
				zap.Int("status_code", resp.StatusCode),
				zap.Int("attempt", attempt))
			return nil, errRetryableStatus
		}

		return resp, nil
	}

	retryOpts := []backoff.RetryOption{
		backoff.WithBackOff(&policyBackOff{policy: opts.Backoff}),
		backoff.WithMaxTries(uint(opts.MaxRetries + 1)),
	}

	resp, err := backoff.Retry(ctx, operation, retryOpts...)
	if errors.Is(err, errRetryableStatus) && last != nil {
		logger.Warn("Retries exhausted",
			zap.Int("status_code", last.StatusCode),
			zap.Int("attempts", last.Attempts))
		return last, nil
	}
	if err != nil {
		logger.Error("HTTP request failed after retries", zap.Error(err))
		return nil, err
	}

	logger.Debug("HTTP request completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Int("attempts", resp.Attempts))

	return resp, nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return b, nil
	}
}

func (c *Client) buildRequest(ctx context.Context, opts RequestOptions, body []byte) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = int64(len(body))
	}
	req.Header.Set("Accept", "application/json")

	// Set custom headers
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		if strings.Contains(strings.ToLower(k), "password") {
			out[k] = "***"
			continue
		}
		out[k] = h.Get(k)
	}
	return out
}
