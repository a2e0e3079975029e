// Package provider implements the upstream news sources behind the
// resolver's fallback chain: GNews, NewsAPI, an optional RSS feed and the
// bundled static dataset.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"news-portal/internal/resilience/circuitbreaker"
	"news-portal/internal/usecase/resolve"

	"golang.org/x/time/rate"
)

const (
	// DefaultUserAgent identifies outbound requests.
	DefaultUserAgent = "NewsPortalBot/1.0"

	// maxBodySize caps how much of an upstream response is read.
	maxBodySize = 5 * 1024 * 1024

	// maxErrorBody caps how much of a non-2xx body is kept for the error message.
	maxErrorBody = 1024
)

// HTTPError is returned for non-2xx upstream answers.
type HTTPError struct {
	StatusCode int
	Message    string
}

// Reason classifies the failure for logs.
func (e *HTTPError) Reason() string {
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	// RateLimit in requests per second. 0 disables local limiting.
	RateLimit float64
	RateBurst int
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client is the HTTP plumbing shared by every remote provider: timeout,
// circuit breaker, optional rate limiter and a bounded body read.
//
// Client is safe for concurrent use.
type Client struct {
	name      string
	http      *http.Client
	breaker   *circuitbreaker.CircuitBreaker
	limiter   *rate.Limiter
	userAgent string
}

// NewClient creates a Client whose breaker and limiter are dedicated to name.
func NewClient(name string, opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		name:      name,
		http:      httpClient,
		breaker:   circuitbreaker.New(circuitbreaker.NewsProviderConfig(name)),
		limiter:   limiter,
		userAgent: userAgent,
	}
}

// BreakerState returns the circuit breaker state ("closed", "open", "half-open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// GetJSON issues a GET to endpoint with query and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.get(ctx, endpoint, query, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// get performs the request through the limiter and the breaker and hands a
// size-limited body to decode. Decode failures count against the breaker.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, decode func(io.Reader) error) error {
	if c.limiter != nil && !c.limiter.Allow() {
		return resolve.ErrQuotaExhausted
	}

	target := endpoint
	if len(query) > 0 {
		target = endpoint + "?" + query.Encode()
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, target, decode)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.Warn("provider circuit breaker open, request rejected",
				slog.String("provider", c.name),
				slog.String("state", c.breaker.State().String()))
		}
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, target string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", redactError(err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", redactError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Message: upstreamMessage(snippet)}
	}

	return decode(io.LimitReader(resp.Body, maxBodySize))
}

// upstreamMessage extracts the human readable part of an upstream error body.
// NewsAPI answers {"status":"error","message":...}, GNews {"errors":[...]}.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return strings.Join(payload.Errors, "; ")
}

// redactError masks API keys in the URL carried by *url.Error.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = RedactURL(urlErr.URL)
	}
	return err
}

// RedactURL replaces credential query parameters with "****".
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	changed := false
	for key := range q {
		switch strings.ToLower(key) {
		case "apikey", "api_key", "token":
			q.Set(key, "****")
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = strings.ReplaceAll(q.Encode(), "%2A%2A%2A%2A", "****")
	return u.String()
}
