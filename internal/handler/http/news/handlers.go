package news

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/usecase/resolve"
)

const (
	// 一覧APIの既定件数
	DefaultListLimit = 6
	// カテゴリ・トップページで取得する件数
	PageLimit    = 20
	RelatedCount = 3
	FeaturedSize = 3
	TrendingSize = 8
)

// Resolver is the subset of resolve.Resolver the handlers need.
type Resolver interface {
	ResolveArticles(ctx context.Context, limit int, category, country string) []entity.Article
	ResolveArticleByID(ctx context.Context, id string) (*entity.Article, error)
	ResolveSearch(ctx context.Context, query string) []entity.Article
	ResolveRelated(ctx context.Context, article entity.Article, n int) []entity.Article
}

var errNotFound = errors.New("article not found")

// ListHandler serves GET /api/news?limit&category&country.
type ListHandler struct{ Svc Resolver }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseLimit(q.Get("limit"), DefaultListLimit)
	articles := h.Svc.ResolveArticles(r.Context(), limit, q.Get("category"), q.Get("country"))
	respond.JSON(w, http.StatusOK, listResponse{Articles: toDTOs(articles)})
}

// GetHandler serves GET /api/articles/{id}.
type GetHandler struct{ Svc Resolver }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(*article))
}

func (h GetHandler) lookup(w http.ResponseWriter, r *http.Request) (*entity.Article, bool) {
	id, err := pathutil.ArticleID(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, errNotFound.Error())
		return nil, false
	}
	article, err := h.Svc.ResolveArticleByID(r.Context(), id)
	if errors.Is(err, resolve.ErrArticleNotFound) {
		respond.Error(w, http.StatusNotFound, errNotFound.Error())
		return nil, false
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return article, true
}

// RelatedHandler serves GET /api/articles/{id}/related.
type RelatedHandler struct{ Svc Resolver }

func (h RelatedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, ok := GetHandler(h).lookup(w, r)
	if !ok {
		return
	}
	related := h.Svc.ResolveRelated(r.Context(), *article, RelatedCount)
	respond.JSON(w, http.StatusOK, listResponse{Articles: toDTOs(related)})
}

// CategoryHandler serves GET /api/categories/{slug}.
type CategoryHandler struct{ Svc Resolver }

func (h CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cat := resolve.LookupCategory(r.PathValue("slug"))
	articles := h.Svc.ResolveArticles(r.Context(), PageLimit, cat.Upstream, "")
	respond.JSON(w, http.StatusOK, categoryResponse{
		Category: cat.Slug,
		Title:    cat.Title,
		Articles: toDTOs(articles),
	})
}

// SearchHandler serves GET /api/search?q=.
type SearchHandler struct{ Svc Resolver }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	articles := h.Svc.ResolveSearch(r.Context(), query)
	respond.JSON(w, http.StatusOK, searchResponse{
		Query:    query,
		Count:    len(articles),
		Articles: toDTOs(articles),
	})
}

// HomeHandler serves GET /api/home: featured is the first three headlines,
// latest the rest, trending the first eight.
type HomeHandler struct{ Svc Resolver }

func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	all := toDTOs(h.Svc.ResolveArticles(r.Context(), PageLimit, "", ""))
	split := min(FeaturedSize, len(all))
	respond.JSON(w, http.StatusOK, homeResponse{
		Featured: all[:split],
		Latest:   all[split:],
		Trending: all[:min(TrendingSize, len(all))],
	})
}

// parseLimit returns def for a missing or malformed value. Range handling
// is left to the resolver.
func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}
