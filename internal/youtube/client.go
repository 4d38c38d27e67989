package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://www.googleapis.com"

	// defaultMaxRetries is the number of retries after the initial
	// attempt for transient failures.
	defaultMaxRetries = 3

	// defaultRetryInterval is the wait before the first retry. With a
	// 1.5 multiplier the waits grow 1.5s, 2.25s, 3.375s.
	defaultRetryInterval = 1500 * time.Millisecond

	retryMultiplier = 1.5
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLogger sets the logger used for retry and chunk-skip warnings.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetryPolicy overrides how transient failures are retried. Tests use
// a short interval to keep backoff waits out of the test run.
func WithRetryPolicy(maxRetries uint64, initialInterval time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryInterval = initialInterval
	}
}

// Client is a YouTube Data API client bound to one API key.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPClient
	logger        zerolog.Logger
	maxRetries    uint64
	retryInterval time.Duration

	categoryCache *categoryCache
}

// NewClient creates a new YouTube API client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{},
		logger:        zerolog.Nop(),
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
		categoryCache: newCategoryCache(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs one API call with retries. Transient failures are retried
// with exponentially growing waits; terminal failures (quota, credential,
// bad request) return immediately.
func (c *Client) get(ctx context.Context, op string, params url.Values) ([]byte, error) {
	var body []byte

	attempt := 0
	call := func() error {
		attempt++
		b, err := c.doRequest(ctx, op, params)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Terminal() {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("YouTube API call failed, retrying")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	if err := backoff.RetryNotify(call, policy, notify); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.Multiplier = retryMultiplier
	b.RandomizationFactor = 0
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// doRequest performs a single HTTP GET against one API endpoint and
// returns the raw body on 2xx. Non-2xx responses come back as *APIError.
func (c *Client) doRequest(ctx context.Context, op string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/youtube/v3/%s?%s", c.baseURL, op, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransient, Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(op, resp.StatusCode, body)
	}

	return body, nil
}
