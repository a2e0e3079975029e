package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newsEnvVars = []string{
	"GNEWS_API_KEY", "GNEWS_BASE_URL", "NEWS_API_KEY", "NEWSAPI_BASE_URL",
	"RSS_FEED_URL", "NEWS_DEFAULT_COUNTRY", "NEWS_LANGUAGE", "PROVIDER_TIMEOUT",
	"PROVIDER_RATE_LIMIT", "PROVIDER_RATE_BURST", "CONTENT_FETCH_ENABLED",
	"CONTENT_FETCH_THRESHOLD", "CONTENT_FETCH_TIMEOUT", "CONTENT_FETCH_MAX_BODY_SIZE",
	"CONTENT_FETCH_DENY_PRIVATE_IPS",
}

func clearNewsEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range newsEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadNewsConfig_Defaults(t *testing.T) {
	clearNewsEnvVars(t)

	config, err := LoadNewsConfig()
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Empty(t, config.GNewsAPIKey)
	assert.Empty(t, config.NewsAPIKey)
	assert.Empty(t, config.RSSFeedURL)
	assert.Equal(t, "https://gnews.io/api/v4", config.GNewsBaseURL)
	assert.Equal(t, "https://newsapi.org/v2", config.NewsAPIBaseURL)
	assert.Equal(t, "in", config.DefaultCountry)
	assert.Equal(t, "en", config.Language)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Zero(t, config.RateLimit)
	assert.Equal(t, 5, config.RateBurst)

	assert.False(t, config.ContentFetch.Enabled)
	assert.Equal(t, 1500, config.ContentFetch.Threshold)
	assert.Equal(t, 10*time.Second, config.ContentFetch.Timeout)
	assert.Equal(t, int64(10*1024*1024), config.ContentFetch.MaxBodySize)
	assert.True(t, config.ContentFetch.DenyPrivateIPs)

	assert.False(t, config.HasProvider())
}

func TestLoadNewsConfig_CustomValues(t *testing.T) {
	clearNewsEnvVars(t)

	t.Setenv("GNEWS_API_KEY", " gnews-key ")
	t.Setenv("NEWS_API_KEY", "newsapi-key")
	t.Setenv("RSS_FEED_URL", "https://example.com/feed.xml")
	t.Setenv("NEWS_DEFAULT_COUNTRY", "US")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("PROVIDER_RATE_LIMIT", "2.5")
	t.Setenv("PROVIDER_RATE_BURST", "3")
	t.Setenv("CONTENT_FETCH_ENABLED", "true")
	t.Setenv("CONTENT_FETCH_THRESHOLD", "800")

	config, err := LoadNewsConfig()
	require.NoError(t, err)

	assert.Equal(t, "gnews-key", config.GNewsAPIKey)
	assert.Equal(t, "newsapi-key", config.NewsAPIKey)
	assert.Equal(t, "https://example.com/feed.xml", config.RSSFeedURL)
	assert.Equal(t, "us", config.DefaultCountry)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.InDelta(t, 2.5, config.RateLimit, 1e-9)
	assert.Equal(t, 3, config.RateBurst)
	assert.True(t, config.ContentFetch.Enabled)
	assert.Equal(t, 800, config.ContentFetch.Threshold)
	assert.True(t, config.HasProvider())
}

func TestLoadNewsConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "bad gnews scheme", key: "GNEWS_BASE_URL", value: "ftp://gnews.io", wantErr: "GNEWS_BASE_URL"},
		{name: "newsapi without host", key: "NEWSAPI_BASE_URL", value: "https://", wantErr: "NEWSAPI_BASE_URL"},
		{name: "rss relative url", key: "RSS_FEED_URL", value: "/feed.xml", wantErr: "RSS_FEED_URL"},
		{name: "country too long", key: "NEWS_DEFAULT_COUNTRY", value: "india", wantErr: "NEWS_DEFAULT_COUNTRY"},
		{name: "timeout too short", key: "PROVIDER_TIMEOUT", value: "10ms", wantErr: "PROVIDER_TIMEOUT"},
		{name: "negative rate", key: "PROVIDER_RATE_LIMIT", value: "-1", wantErr: "PROVIDER_RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearNewsEnvVars(t)
			t.Setenv(tt.key, tt.value)

			config, err := LoadNewsConfig()
			require.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewsConfig_ValidateRateBurst(t *testing.T) {
	clearNewsEnvVars(t)
	t.Setenv("PROVIDER_RATE_LIMIT", "1")
	t.Setenv("PROVIDER_RATE_BURST", "0")

	_, err := LoadNewsConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_RATE_BURST")
}
