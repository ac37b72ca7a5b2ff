package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/logger"
)

// RequestOption represents a function that can modify an HTTP request
type RequestOption func(*http.Request)

// ClientOption represents a function that can modify the HTTP client
type ClientOption func(*HTTPClient)

// HTTPError represents an error returned from an HTTP request
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Method     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d %s: %s", e.Method, e.URL, e.StatusCode, e.Status, e.Body)
}

// RetryConfig configures the retry behavior
type RetryConfig struct {
	MaxRetries           int
	InitialInterval      time.Duration
	MaxInterval          time.Duration
	Multiplier           float64
	MaxElapsedTime       time.Duration
	RetryableStatusCodes []int
}

// DefaultRetryConfig provides sensible defaults for retries
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:           3,
		InitialInterval:      100 * time.Millisecond,
		MaxInterval:          10 * time.Second,
		Multiplier:           2.0,
		MaxElapsedTime:       30 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},
	}
}

// HTTPClient is a JSON HTTP client with retries and per-request options
type HTTPClient struct {
	httpClient     *http.Client
	baseURL        string
	defaultHeaders map[string]string
	retryConfig    *RetryConfig
}

// NewHTTPClient creates a new HTTPClient with the given options
func NewHTTPClient(options ...ClientOption) *HTTPClient {
	client := &HTTPClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		retryConfig: DefaultRetryConfig(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithBaseURL sets the base URL for all requests
func WithBaseURL(baseURL string) ClientOption {
	return func(c *HTTPClient) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for all requests
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig sets the retry configuration
func WithRetryConfig(config *RetryConfig) ClientOption {
	return func(c *HTTPClient) {
		c.retryConfig = config
	}
}

// WithHeader adds a header to the request
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// WithBearerToken adds bearer token authentication to the request
func WithBearerToken(token string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// Get performs an HTTP GET request
func (c *HTTPClient) Get(ctx context.Context, path string, options ...RequestOption) (*http.Response, error) {
	return c.DoRequest(ctx, http.MethodGet, path, nil, options...)
}

// Post performs an HTTP POST request with a JSON body
func (c *HTTPClient) Post(ctx context.Context, path string, body interface{}, options ...RequestOption) (*http.Response, error) {
	return c.DoRequest(ctx, http.MethodPost, path, body, options...)
}

// DoRequest is the generic method that performs all HTTP requests
func (c *HTTPClient) DoRequest(ctx context.Context, method, path string, body interface{}, options ...RequestOption) (*http.Response, error) {
	fullURL := strings.TrimSuffix(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL += path

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	newRequest := func() (*http.Request, error) {
		var bodyReader io.Reader
		if bodyBytes != nil {
			bodyReader = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for key, value := range c.defaultHeaders {
			req.Header.Set(key, value)
		}
		for _, option := range options {
			option(req)
		}
		return req, nil
	}

	var resp *http.Response
	operation := func() error {
		req, err := newRequest()
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return err
		}
		for _, code := range c.retryConfig.RetryableStatusCodes {
			if resp.StatusCode == code {
				// Drain and close so the connection can be reused
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				return fmt.Errorf("retryable status code: %d", resp.StatusCode)
			}
		}
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.retryConfig.InitialInterval
	expBackoff.MaxInterval = c.retryConfig.MaxInterval
	expBackoff.Multiplier = c.retryConfig.Multiplier
	expBackoff.MaxElapsedTime = c.retryConfig.MaxElapsedTime

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(c.retryConfig.MaxRetries)), ctx))
	if err != nil {
		logger.Error("HTTP request failed",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Error(err))
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errBody []byte
		if resp.Body != nil {
			errBody, _ = io.ReadAll(resp.Body)
			_ = resp.Body.Close()
		}
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        fullURL,
			Method:     method,
			Body:       string(errBody),
		}
	}

	return resp, nil
}

// ProcessJSONResponse decodes a JSON response body into target and closes it
func (c *HTTPClient) ProcessJSONResponse(resp *http.Response, target interface{}) error {
	if resp == nil || resp.Body == nil {
		return fmt.Errorf("nil response")
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
