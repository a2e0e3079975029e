package provider

import (
	"context"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/samber/lo"
)

// StaticName identifies the bundled dataset in logs and metrics.
const StaticName = "static"

// Static is the bundled placeholder dataset served when every remote
// provider is unavailable. It never fails.
type Static struct {
	articles []entity.Article
}

// NewStatic builds the dataset. Every article is stamped with publishedAt = now.
func NewStatic(now time.Time) *Static {
	now = now.UTC()
	article := func(id, title, summary, content, author, category, slug, sourceID, sourceName string) entity.Article {
		return entity.Article{
			ID:          id,
			Title:       title,
			Summary:     summary,
			Content:     content,
			Author:      author,
			PublishedAt: now,
			Category:    category,
			Slug:        slug,
			URL:         "#",
			Source:      &entity.Source{ID: sourceID, Name: sourceName},
		}
	}

	return &Static{articles: []entity.Article{
		article("1",
			"News Service Unavailable (Demo Mode)",
			"We are currently unable to fetch the latest headlines. This is a placeholder article to demonstrate the layout.",
			"The application is currently running in demo mode because the news API service is unavailable or the daily quota has been exceeded. To view real news, please ensure a valid API key is configured in the environment variables. In the meantime, feel free to explore the application's features and responsive design using these placeholder articles.",
			"System Admin", "general", "system-status-demo-mode", "system", "System Message"),
		article("2",
			"Welcome to NewsPortal",
			"Experience the latest in news aggregation technology. Fast, reliable, and user-friendly.",
			"NewsPortal is designed to bring you the latest stories from around the world (or specifically India, based on your settings). It aggregates headlines from several news providers and falls back to bundled content when none of them answers.",
			"Dev Team", "tech", "welcome-to-newsportal", "news-portal", "NewsPortal"),
		article("3",
			"Feature Showcase: Responsive Design",
			"This website adapts seamlessly to any screen size, ensuring a great reading experience on mobile, tablet, and desktop.",
			"Try resizing your browser window or viewing this site on a mobile device. You will notice how the grid layout adjusts, the navigation menu transforms, and the typography scales for optimal readability.",
			"Design Team", "tech", "feature-showcase-responsive", "design", "Design Blog"),
		article("4",
			"Please Configure API Keys",
			"To see real news content, the administrator needs to add valid API keys to the hosting platform.",
			"If you are the operator, set GNEWS_API_KEY or NEWS_API_KEY in the service environment. You need a valid key for NewsAPI.org or GNews.io. Once configured, this placeholder content will automatically be replaced by live headlines.",
			"Setup Guide", "business", "configure-api-keys", "docs", "Documentation"),
		article("5",
			"Sample Article: Sports Category",
			"This is a placeholder to show how sports news would appear in the grid layout.",
			"Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
			"Demo User", "sports", "sample-sports-article", "demo", "Demo Source"),
		article("6",
			"Sample Article: Entertainment",
			"This is a placeholder to show how entertainment news would appear in the grid layout.",
			"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
			"Demo User", "entertainment", "sample-entertainment-article", "demo", "Demo Source"),
	}}
}

// Name implements resolve.Provider.
func (s *Static) Name() string { return StaticName }

// Enabled implements resolve.Provider. The dataset is always available.
func (s *Static) Enabled() bool { return true }

// Attempt implements resolve.Provider. Headlines only; the category
// filter is not applied because the dataset is a placeholder.
func (s *Static) Attempt(_ context.Context, req resolve.Request) ([]entity.Article, error) {
	if req.Mode != resolve.ModeHeadlines {
		return nil, resolve.ErrModeUnsupported
	}
	return s.Prefix(req.Limit), nil
}

// Len returns the dataset size.
func (s *Static) Len() int { return len(s.articles) }

// Prefix returns copies of the first min(n, Len()) articles.
func (s *Static) Prefix(n int) []entity.Article {
	if n < 0 {
		n = 0
	}
	if n > len(s.articles) {
		n = len(s.articles)
	}
	return lo.Map(s.articles[:n], func(a entity.Article, _ int) entity.Article { return cloneArticle(a) })
}

// Find returns a copy of the article with the exact id.
func (s *Static) Find(id string) (entity.Article, bool) {
	a, ok := lo.Find(s.articles, func(a entity.Article) bool { return a.ID == id })
	if !ok {
		return entity.Article{}, false
	}
	return cloneArticle(a), true
}

// cloneArticle copies the pointer fields so callers cannot reach the dataset.
func cloneArticle(a entity.Article) entity.Article {
	if a.ImageURL != nil {
		img := *a.ImageURL
		a.ImageURL = &img
	}
	if a.Source != nil {
		src := *a.Source
		a.Source = &src
	}
	return a
}
