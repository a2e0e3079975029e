package provider

import (
	"context"
	"fmt"
	"io"
	"strings"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

// RSSName identifies the RSS provider in logs and metrics.
const RSSName = "rss"

// RSS serves headlines from a single RSS/Atom feed. It has no search
// endpoint, so search requests are reported as unavailable.
type RSS struct {
	client  *Client
	feedURL string
}

// NewRSS creates an RSS provider. An empty feedURL disables it.
func NewRSS(client *Client, feedURL string) *RSS {
	return &RSS{client: client, feedURL: strings.TrimSpace(feedURL)}
}

// Name implements resolve.Provider.
func (r *RSS) Name() string { return RSSName }

// Enabled implements resolve.Provider.
func (r *RSS) Enabled() bool { return r.feedURL != "" }

// BreakerState reports the provider's circuit breaker state.
func (r *RSS) BreakerState() string { return r.client.BreakerState() }

// Attempt implements resolve.Provider.
func (r *RSS) Attempt(ctx context.Context, req resolve.Request) ([]entity.Article, error) {
	if req.Mode != resolve.ModeHeadlines {
		return nil, fmt.Errorf("rss %s: %w", req.Mode, resolve.ErrModeUnsupported)
	}

	var feed *gofeed.Feed
	err := r.client.get(ctx, r.feedURL, nil, func(body io.Reader) error {
		parsed, err := gofeed.NewParser().Parse(body)
		if err != nil {
			return fmt.Errorf("parse feed: %w", err)
		}
		feed = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rss headlines: %w", err)
	}

	fallback := entity.Source{ID: RSSName, Name: firstNonEmpty(strings.TrimSpace(feed.Title), "RSS Feed")}
	items := mapFeed(feed)
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}
	return normalizeItems(items, req, fallback), nil
}

func mapFeed(feed *gofeed.Feed) []rawItem {
	return lo.Map(feed.Items, func(it *gofeed.Item, _ int) rawItem {
		item := rawItem{
			Title:       it.Title,
			Description: it.Description,
			Content:     it.Content,
			URL:         it.Link,
			Published:   it.PublishedParsed,
		}
		if item.Published == nil {
			item.Published = it.UpdatedParsed
		}
		if it.Image != nil {
			item.Image = it.Image.URL
		} else if len(it.Enclosures) > 0 && strings.HasPrefix(it.Enclosures[0].Type, "image/") {
			item.Image = it.Enclosures[0].URL
		}
		if len(it.Authors) > 0 && it.Authors[0] != nil {
			item.Author = it.Authors[0].Name
		}
		return item
	})
}
