package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/samber/lo"
)

// GNewsName identifies the GNews provider in logs and metrics.
const GNewsName = "gnews"

const gnewsSearchMax = 10

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

// GNews is the primary provider (gnews.io v4).
type GNews struct {
	client   *Client
	baseURL  string
	apiKey   string
	language string
}

// NewGNews creates a GNews provider. An empty apiKey disables it.
func NewGNews(client *Client, baseURL, apiKey, language string) *GNews {
	if language == "" {
		language = "en"
	}
	return &GNews{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
	}
}

// Name implements resolve.Provider.
func (g *GNews) Name() string { return GNewsName }

// Enabled implements resolve.Provider.
func (g *GNews) Enabled() bool { return g.apiKey != "" }

// BreakerState reports the provider's circuit breaker state.
func (g *GNews) BreakerState() string { return g.client.BreakerState() }

// Attempt implements resolve.Provider.
func (g *GNews) Attempt(ctx context.Context, req resolve.Request) ([]entity.Article, error) {
	endpoint, query := g.buildQuery(req)

	var payload gnewsResponse
	if err := g.client.GetJSON(ctx, endpoint, query, &payload); err != nil {
		return nil, fmt.Errorf("gnews %s: %w", req.Mode, err)
	}

	return normalizeItems(mapGNews(payload), req, entity.Source{ID: "gnews", Name: "GNews Source"}), nil
}

func (g *GNews) buildQuery(req resolve.Request) (string, url.Values) {
	query := url.Values{}
	query.Set("lang", g.language)
	query.Set("apikey", g.apiKey)

	if req.Mode == resolve.ModeSearch {
		query.Set("q", req.Query)
		query.Set("max", strconv.Itoa(gnewsSearchMax))
		return g.baseURL + "/search", query
	}

	if req.Category != "" {
		query.Set("category", req.Category)
	}
	query.Set("country", req.Country)
	query.Set("max", strconv.Itoa(req.Limit))
	return g.baseURL + "/top-headlines", query
}

// mapGNews maps the GNews payload. GNews has no per-article author, so the
// source name doubles as author, and every item is attributed to the
// "gnews" source id.
func mapGNews(payload gnewsResponse) []rawItem {
	return lo.Map(payload.Articles, func(a gnewsArticle, _ int) rawItem {
		return rawItem{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.Image,
			PublishedAt: a.PublishedAt,
			SourceID:    "gnews",
			SourceName:  a.Source.Name,
		}
	})
}
