// Package resolve implements the content resolver: an ordered,
// first-success-wins chain of news providers backed by a bundled static
// dataset. The resolver never surfaces provider failures to callers.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/logging"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/observability/tracing"
	"news-portal/internal/resilience/circuitbreaker"
	"news-portal/internal/usecase/fetch"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultLimit is used when the caller passes limit <= 0.
	DefaultLimit = 10
	// MaxLimit is the largest page the upstream APIs accept.
	MaxLimit = 100

	// RelatedPoolSize is how many headlines are scanned for related articles.
	RelatedPoolSize = 20

	byIDPoolSize = 100
)

// truncatedMarker matches the "[+1234 chars]" suffix NewsAPI appends to
// shortened content.
var truncatedMarker = regexp.MustCompile(`\[\+\d+ chars\]\s*$`)

// StaticSource is the never-failing last tier.
type StaticSource interface {
	Prefix(n int) []entity.Article
	Find(id string) (entity.Article, bool)
}

// Config holds resolver settings.
type Config struct {
	// DefaultCountry is used for headlines when the caller passes none.
	DefaultCountry string
	// EnrichThreshold is the content length (in characters) below which a
	// single article is enriched through the ContentFetcher.
	EnrichThreshold int
	// Now returns the resolution time. Defaults to time.Now.
	Now func() time.Time
	// Tracer defaults to the application tracer.
	Tracer trace.Tracer
}

// Resolver resolves articles through the provider chain.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	providers []Provider
	static    StaticSource
	fetcher   fetch.ContentFetcher
	cfg       Config
}

// NewResolver creates a Resolver. providers are tried in order; static
// serves headlines when all of them are unavailable. fetcher may be nil to
// disable content enrichment.
func NewResolver(providers []Provider, static StaticSource, fetcher fetch.ContentFetcher, cfg Config) *Resolver {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracing.GetTracer()
	}
	cfg.DefaultCountry = strings.ToLower(strings.TrimSpace(cfg.DefaultCountry))
	if cfg.DefaultCountry == "" {
		cfg.DefaultCountry = "in"
	}
	return &Resolver{
		providers: providers,
		static:    static,
		fetcher:   fetcher,
		cfg:       cfg,
	}
}

// NormalizeLimit applies the default and the upstream cap.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ResolveArticles returns up to limit headlines from the first provider
// that yields a non-empty result, or a prefix of the static dataset.
// The result is never empty and no error is ever returned.
func (r *Resolver) ResolveArticles(ctx context.Context, limit int, category, country string) []entity.Article {
	req := Request{
		Mode:     ModeHeadlines,
		Limit:    NormalizeLimit(limit),
		Category: strings.ToLower(strings.TrimSpace(category)),
		Country:  r.country(country),
		Now:      r.cfg.Now(),
	}

	ctx, span := r.cfg.Tracer.Start(ctx, "resolve.articles", trace.WithAttributes(
		attribute.Int("resolve.limit", req.Limit),
		attribute.String("resolve.category", req.Category),
		attribute.String("resolve.country", req.Country),
	))
	defer span.End()

	if articles, served, ok := r.firstAvailable(ctx, req); ok {
		if len(articles) > req.Limit {
			articles = articles[:req.Limit]
		}
		span.SetAttributes(attribute.String("resolve.served_by", served), attribute.Int("resolve.count", len(articles)))
		metrics.RecordArticlesResolved("articles", len(articles))
		return articles
	}

	articles := r.static.Prefix(req.Limit)
	logging.WithRequestID(ctx, slog.Default()).Info("using static dataset fallback",
		slog.Int("limit", req.Limit),
		slog.Int("count", len(articles)))
	metrics.RecordStaticFallback("articles")
	metrics.RecordArticlesResolved("articles", len(articles))
	span.SetAttributes(attribute.String("resolve.served_by", "static"), attribute.Int("resolve.count", len(articles)))
	return articles
}

// ResolveArticleByID looks the id up in the static dataset first, then in
// a fresh batch of headlines. The only error is ErrArticleNotFound.
func (r *Resolver) ResolveArticleByID(ctx context.Context, id string) (*entity.Article, error) {
	id = strings.TrimSpace(id)

	ctx, span := r.cfg.Tracer.Start(ctx, "resolve.article_by_id", trace.WithAttributes(
		attribute.String("resolve.id", id),
	))
	defer span.End()

	if id == "" {
		return nil, ErrArticleNotFound
	}

	if article, ok := r.static.Find(id); ok {
		span.SetAttributes(attribute.String("resolve.served_by", "static"))
		return &article, nil
	}

	article, ok := lo.Find(r.ResolveArticles(ctx, byIDPoolSize, "", ""), func(a entity.Article) bool {
		return a.ID == id
	})
	if !ok {
		span.SetStatus(codes.Error, ErrArticleNotFound.Error())
		return nil, ErrArticleNotFound
	}

	r.enrich(ctx, &article)
	return &article, nil
}

// ResolveSearch returns the result of the first provider that answers the
// query, even when that answer is empty. A blank query returns an empty
// list without calling any provider. There is no static fallback.
func (r *Resolver) ResolveSearch(ctx context.Context, query string) []entity.Article {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Article{}
	}

	ctx, span := r.cfg.Tracer.Start(ctx, "resolve.search", trace.WithAttributes(
		attribute.String("resolve.query", query),
	))
	defer span.End()

	req := Request{Mode: ModeSearch, Query: query, Now: r.cfg.Now()}
	articles, served, ok := r.firstAvailable(ctx, req)
	if !ok {
		logging.WithRequestID(ctx, slog.Default()).Info("no provider answered search",
			slog.String("query", query))
		return []entity.Article{}
	}

	span.SetAttributes(attribute.String("resolve.served_by", served), attribute.Int("resolve.count", len(articles)))
	metrics.RecordArticlesResolved("search", len(articles))
	return articles
}

// ResolveRelated returns up to n other articles sharing the category of
// article, taken from the current headlines.
func (r *Resolver) ResolveRelated(ctx context.Context, article entity.Article, n int) []entity.Article {
	if n <= 0 {
		return []entity.Article{}
	}
	related := lo.Filter(r.ResolveArticles(ctx, RelatedPoolSize, "", ""), func(a entity.Article, _ int) bool {
		return a.ID != article.ID && a.Category == article.Category
	})
	if len(related) > n {
		related = related[:n]
	}
	return related
}

// firstAvailable walks the chain. For headlines an empty result counts as
// unavailable; for search the first well-formed answer is final.
func (r *Resolver) firstAvailable(ctx context.Context, req Request) ([]entity.Article, string, bool) {
	logger := logging.WithRequestID(ctx, slog.Default())

	for _, p := range r.providers {
		name := p.Name()
		if !p.Enabled() {
			metrics.RecordProviderAttempt(name, metrics.OutcomeSkipped, 0)
			continue
		}

		articles, err := r.attempt(ctx, p, req)
		if err != nil {
			logger.Warn("provider unavailable",
				slog.String("provider", name),
				slog.String("mode", req.Mode.String()),
				slog.String("reason", failureReason(err)),
				slog.Any("error", err))
			continue
		}

		if len(articles) == 0 && req.Mode == ModeHeadlines {
			logger.Warn("provider unavailable",
				slog.String("provider", name),
				slog.String("mode", req.Mode.String()),
				slog.String("reason", "empty result"))
			continue
		}

		return articles, name, true
	}

	return nil, "", false
}

// attempt runs one provider inside a child span and records its outcome.
func (r *Resolver) attempt(ctx context.Context, p Provider, req Request) ([]entity.Article, error) {
	name := p.Name()
	ctx, span := r.cfg.Tracer.Start(ctx, "provider."+name, trace.WithAttributes(
		attribute.String("provider.name", name),
		attribute.String("provider.mode", req.Mode.String()),
	))
	defer span.End()

	start := time.Now()
	articles, err := p.Attempt(ctx, req)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider unavailable")
		metrics.RecordProviderAttempt(name, metrics.OutcomeError, duration)
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	articles = lo.UniqBy(articles, func(a entity.Article) string { return a.ID })
	span.SetAttributes(attribute.Int("provider.count", len(articles)))

	outcome := metrics.OutcomeSuccess
	if len(articles) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordProviderAttempt(name, outcome, duration)

	if articles == nil {
		articles = []entity.Article{}
	}
	return articles, nil
}

// enrich replaces truncated content with the full text of the source page.
// Failures leave the article untouched.
func (r *Resolver) enrich(ctx context.Context, article *entity.Article) {
	if r.fetcher == nil || !strings.HasPrefix(article.URL, "http") {
		return
	}
	if !needsEnrichment(article.Content, r.cfg.EnrichThreshold) {
		metrics.RecordContentFetchSkipped()
		return
	}

	start := time.Now()
	content, err := r.fetcher.FetchContent(ctx, article.URL)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		logging.WithRequestID(ctx, slog.Default()).Warn("content enrichment failed",
			slog.String("article_id", article.ID),
			slog.Any("error", err))
		return
	}

	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= utf8.RuneCountInString(article.Content) {
		metrics.RecordContentFetchSkipped()
		return
	}

	metrics.RecordContentFetchSuccess(time.Since(start), len(content))
	article.Content = content
}

func needsEnrichment(content string, threshold int) bool {
	if truncatedMarker.MatchString(content) {
		return true
	}
	return utf8.RuneCountInString(content) < threshold
}

func (r *Resolver) country(country string) string {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return r.cfg.DefaultCountry
	}
	return country
}

// failureReason classifies a provider error for logs.
func failureReason(err error) string {
	var reasoner interface{ Reason() string }
	if errors.As(err, &reasoner) {
		return reasoner.Reason()
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrModeUnsupported):
		return "unsupported"
	case errors.Is(err, ErrQuotaExhausted):
		return "rate limited"
	case circuitbreaker.IsRejection(err):
		return "circuit open"
	default:
		return "error"
	}
}
