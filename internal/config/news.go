package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgconfig "news-portal/pkg/config"
)

// NewsConfig holds configuration for the upstream news providers and the
// optional full-text enrichment of single articles.
type NewsConfig struct {
	// GNewsAPIKey enables the primary provider when non-empty.
	GNewsAPIKey string
	// GNewsBaseURL. Default: "https://gnews.io/api/v4"
	GNewsBaseURL string

	// NewsAPIKey enables the secondary provider when non-empty.
	NewsAPIKey string
	// NewsAPIBaseURL. Default: "https://newsapi.org/v2"
	NewsAPIBaseURL string

	// RSSFeedURL enables the tertiary RSS provider when non-empty.
	RSSFeedURL string

	// DefaultCountry is used for headlines when the caller gives none. Default: "in"
	DefaultCountry string
	// Language passed to GNews. Default: "en"
	Language string

	// Timeout per provider attempt. Default: 10s
	Timeout time.Duration

	// RateLimit is the outbound request budget per second and provider.
	// 0 disables local limiting.
	RateLimit float64
	// RateBurst. Default: 5
	RateBurst int

	// ContentFetch configures readability enrichment of truncated content.
	ContentFetch ContentFetchConfig
}

// ContentFetchConfig controls full-text enrichment in ResolveArticleByID.
type ContentFetchConfig struct {
	// Enabled. Default: false
	Enabled bool
	// Threshold is the content length below which enrichment is attempted. Default: 1500
	Threshold int
	// Timeout for a single page fetch. Default: 10s
	Timeout time.Duration
	// MaxBodySize in bytes. Default: 10MB
	MaxBodySize int64
	// DenyPrivateIPs rejects URLs resolving to private networks. Default: true
	DenyPrivateIPs bool
}

// LoadNewsConfig loads provider configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadNewsConfig() (*NewsConfig, error) {
	config := &NewsConfig{
		GNewsAPIKey:    strings.TrimSpace(pkgconfig.GetEnvString("GNEWS_API_KEY", "")),
		GNewsBaseURL:   pkgconfig.GetEnvString("GNEWS_BASE_URL", "https://gnews.io/api/v4"),
		NewsAPIKey:     strings.TrimSpace(pkgconfig.GetEnvString("NEWS_API_KEY", "")),
		NewsAPIBaseURL: pkgconfig.GetEnvString("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
		RSSFeedURL:     strings.TrimSpace(pkgconfig.GetEnvString("RSS_FEED_URL", "")),
		DefaultCountry: strings.ToLower(pkgconfig.GetEnvString("NEWS_DEFAULT_COUNTRY", "in")),
		Language:       strings.ToLower(pkgconfig.GetEnvString("NEWS_LANGUAGE", "en")),
		Timeout:        pkgconfig.GetEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
		RateLimit:      pkgconfig.GetEnvFloat("PROVIDER_RATE_LIMIT", 0),
		RateBurst:      pkgconfig.GetEnvInt("PROVIDER_RATE_BURST", 5),
		ContentFetch: ContentFetchConfig{
			Enabled:        pkgconfig.GetEnvBool("CONTENT_FETCH_ENABLED", false),
			Threshold:      pkgconfig.GetEnvInt("CONTENT_FETCH_THRESHOLD", 1500),
			Timeout:        pkgconfig.GetEnvDuration("CONTENT_FETCH_TIMEOUT", 10*time.Second),
			MaxBodySize:    int64(pkgconfig.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", 10*1024*1024)),
			DenyPrivateIPs: pkgconfig.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", true),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid news configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *NewsConfig) Validate() error {
	if err := validateBaseURL("GNEWS_BASE_URL", c.GNewsBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("NEWSAPI_BASE_URL", c.NewsAPIBaseURL); err != nil {
		return err
	}
	if c.RSSFeedURL != "" {
		if err := validateBaseURL("RSS_FEED_URL", c.RSSFeedURL); err != nil {
			return err
		}
	}

	if len(c.DefaultCountry) != 2 {
		return fmt.Errorf("NEWS_DEFAULT_COUNTRY must be a two-letter country code, got %q", c.DefaultCountry)
	}

	if err := pkgconfig.ValidateDurationRange(c.Timeout, time.Second, 2*time.Minute); err != nil {
		return fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("PROVIDER_RATE_LIMIT cannot be negative")
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("PROVIDER_RATE_BURST must be positive when PROVIDER_RATE_LIMIT is set")
	}

	if c.ContentFetch.Enabled {
		if c.ContentFetch.Threshold < 0 {
			return fmt.Errorf("CONTENT_FETCH_THRESHOLD cannot be negative")
		}
		if err := pkgconfig.ValidatePositiveDuration(c.ContentFetch.Timeout); err != nil {
			return fmt.Errorf("CONTENT_FETCH_TIMEOUT: %w", err)
		}
		if c.ContentFetch.MaxBodySize <= 0 {
			return fmt.Errorf("CONTENT_FETCH_MAX_BODY_SIZE must be positive")
		}
	}

	return nil
}

// HasProvider reports whether at least one upstream provider is configured.
// Without one every listing is served from the static dataset.
func (c *NewsConfig) HasProvider() bool {
	return c.GNewsAPIKey != "" || c.NewsAPIKey != "" || c.RSSFeedURL != ""
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", key)
	}
	return nil
}
