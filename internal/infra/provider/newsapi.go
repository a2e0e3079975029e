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

// NewsAPIName identifies the NewsAPI provider in logs and metrics.
const NewsAPIName = "newsapi"

const newsAPISearchPageSize = 20

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// NewsAPI is the secondary provider (newsapi.org v2).
type NewsAPI struct {
	client  *Client
	baseURL string
	apiKey  string
}

// NewNewsAPI creates a NewsAPI provider. An empty apiKey disables it.
func NewNewsAPI(client *Client, baseURL, apiKey string) *NewsAPI {
	return &NewsAPI{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Name implements resolve.Provider.
func (n *NewsAPI) Name() string { return NewsAPIName }

// Enabled implements resolve.Provider.
func (n *NewsAPI) Enabled() bool { return n.apiKey != "" }

// BreakerState reports the provider's circuit breaker state.
func (n *NewsAPI) BreakerState() string { return n.client.BreakerState() }

// Attempt implements resolve.Provider.
func (n *NewsAPI) Attempt(ctx context.Context, req resolve.Request) ([]entity.Article, error) {
	endpoint, query := n.buildQuery(req)

	var payload newsAPIResponse
	if err := n.client.GetJSON(ctx, endpoint, query, &payload); err != nil {
		return nil, fmt.Errorf("newsapi %s: %w", req.Mode, err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi %s: status %q: %s", req.Mode, payload.Status, payload.Message)
	}

	return normalizeItems(mapNewsAPI(payload), req, entity.Source{ID: "unknown", Name: defaultSourceName}), nil
}

func (n *NewsAPI) buildQuery(req resolve.Request) (string, url.Values) {
	query := url.Values{}
	query.Set("apiKey", n.apiKey)

	if req.Mode == resolve.ModeSearch {
		query.Set("q", req.Query)
		query.Set("pageSize", strconv.Itoa(newsAPISearchPageSize))
		return n.baseURL + "/everything", query
	}

	query.Set("country", req.Country)
	if req.Category != "" {
		query.Set("category", req.Category)
	}
	query.Set("pageSize", strconv.Itoa(req.Limit))
	return n.baseURL + "/top-headlines", query
}

func mapNewsAPI(payload newsAPIResponse) []rawItem {
	return lo.Map(payload.Articles, func(a newsAPIArticle, _ int) rawItem {
		return rawItem{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.URLToImage,
			Author:      a.Author,
			PublishedAt: a.PublishedAt,
			SourceID:    lo.FromPtr(a.Source.ID),
			SourceName:  a.Source.Name,
		}
	})
}
