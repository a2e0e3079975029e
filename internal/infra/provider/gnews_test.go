package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gnewsHeadlinesBody = `{
  "totalArticles": 2,
  "articles": [
    {
      "title": "Monsoon arrives early",
      "description": "Rains reach the coast.",
      "content": "Heavy rains reached the coast on Monday... [1432 chars]",
      "url": "https://example.com/monsoon",
      "image": "https://example.com/monsoon.jpg",
      "publishedAt": "2026-06-01T08:30:00Z",
      "source": {"name": "Daily Weather", "url": "https://example.com"}
    },
    {
      "title": "",
      "description": "",
      "content": "",
      "url": "https://example.com/untitled",
      "image": "",
      "publishedAt": "not a date",
      "source": {"name": "", "url": ""}
    }
  ]
}`

var gnewsNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newJSONServer(t *testing.T, status int, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGNews(t *testing.T, baseURL, key string) *GNews {
	t.Helper()
	return NewGNews(NewClient(GNewsName+"-"+t.Name(), ClientOptions{Timeout: time.Second}), baseURL, key, "en")
}

func TestGNews_Headlines(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, gnewsHeadlinesBody, func(r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "technology", q.Get("category"))
		assert.Equal(t, "en", q.Get("lang"))
		assert.Equal(t, "in", q.Get("country"))
		assert.Equal(t, "5", q.Get("max"))
		assert.Equal(t, "test-key", q.Get("apikey"))
	})
	g := newTestGNews(t, srv.URL+"/", "test-key")

	got, err := g.Attempt(context.Background(), resolve.Request{
		Mode: resolve.ModeHeadlines, Limit: 5, Category: "technology", Country: "in", Now: gnewsNow,
	})

	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, entity.DeriveID("https://example.com/monsoon"), first.ID)
	assert.Equal(t, "Monsoon arrives early", first.Title)
	assert.Equal(t, "Rains reach the coast.", first.Summary)
	assert.Equal(t, "Daily Weather", first.Author)
	assert.Equal(t, "technology", first.Category)
	assert.Equal(t, &entity.Source{ID: "gnews", Name: "Daily Weather"}, first.Source)
	require.NotNil(t, first.ImageURL)
	assert.Equal(t, "https://example.com/monsoon.jpg", *first.ImageURL)
	assert.Equal(t, time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC), first.PublishedAt)

	second := got[1]
	assert.Equal(t, entity.DefaultTitle, second.Title)
	assert.Equal(t, entity.DefaultSummary, second.Summary)
	assert.Equal(t, entity.DefaultContent, second.Content)
	assert.Equal(t, "GNews Source", second.Author)
	assert.Nil(t, second.ImageURL)
	assert.Equal(t, gnewsNow, second.PublishedAt)
	assert.True(t, second.Complete())
}

func TestGNews_HeadlinesWithoutCategory(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, `{"totalArticles":0,"articles":[]}`, func(r *http.Request) {
		_, ok := r.URL.Query()["category"]
		assert.False(t, ok)
	})
	g := newTestGNews(t, srv.URL, "k")

	got, err := g.Attempt(context.Background(), resolve.Request{Mode: resolve.ModeHeadlines, Limit: 10, Country: "in"})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGNews_Search(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, gnewsHeadlinesBody, func(r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "climate & energy", q.Get("q"))
		assert.Equal(t, "10", q.Get("max"))
		assert.Empty(t, q.Get("country"))
	})
	g := newTestGNews(t, srv.URL, "k")

	got, err := g.Attempt(context.Background(), resolve.Request{Mode: resolve.ModeSearch, Query: "climate & energy", Now: gnewsNow})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, entity.DefaultCategory, got[0].Category)
}

func TestGNews_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "quota exceeded", status: http.StatusForbidden, body: `{"errors":["request limit reached"]}`},
		{name: "server error", status: http.StatusInternalServerError, body: ``},
		{name: "malformed json", status: http.StatusOK, body: `{"articles": [{"title": }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newJSONServer(t, tt.status, tt.body, nil)
			g := newTestGNews(t, srv.URL, "k")

			got, err := g.Attempt(context.Background(), resolve.Request{Mode: resolve.ModeHeadlines, Limit: 10, Country: "in"})

			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestGNews_Enabled(t *testing.T) {
	assert.False(t, newTestGNews(t, "https://gnews.io/api/v4", "").Enabled())
	assert.True(t, newTestGNews(t, "https://gnews.io/api/v4", "k").Enabled())
	assert.Equal(t, GNewsName, newTestGNews(t, "https://gnews.io/api/v4", "k").Name())
}
