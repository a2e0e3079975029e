package provider

import (
	"testing"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Fallbacks(t *testing.T) {
	now := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)
	req := resolve.Request{Now: now}

	got := normalize(rawItem{}, req, entity.Source{ID: "p", Name: ""})

	want := entity.Article{
		ID:          entity.DeriveID(entity.DefaultTitle),
		Title:       entity.DefaultTitle,
		Summary:     entity.DefaultSummary,
		Content:     entity.DefaultContent,
		Author:      defaultSourceName,
		PublishedAt: now,
		Category:    entity.DefaultCategory,
		Slug:        "untitled-article",
		Source:      &entity.Source{ID: "p", Name: defaultSourceName},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_IDFromURL(t *testing.T) {
	a := normalize(rawItem{Title: "Same", URL: " https://example.com/a "}, resolve.Request{}, entity.Source{})
	b := normalize(rawItem{Title: "Other", URL: "https://example.com/a"}, resolve.Request{}, entity.Source{})

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, entity.DeriveID("https://example.com/a"), a.ID)
	assert.Equal(t, "https://example.com/a", a.URL)
}

func TestNormalize_ContentFallsBackToDescription(t *testing.T) {
	got := normalize(rawItem{Title: "T", Description: "desc"}, resolve.Request{Category: "Health"}, entity.Source{})

	assert.Equal(t, "desc", got.Summary)
	assert.Equal(t, "desc", got.Content)
	assert.Equal(t, "health", got.Category)
}

func TestNormalize_PublishedAt(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	parsed := time.Date(2025, 12, 31, 23, 0, 0, 0, time.FixedZone("IST", 19800))

	tests := []struct {
		name string
		item rawItem
		want time.Time
	}{
		{name: "rfc3339", item: rawItem{PublishedAt: "2025-12-31T10:00:00Z"}, want: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)},
		{name: "parsed wins", item: rawItem{PublishedAt: "garbage", Published: &parsed}, want: parsed.UTC()},
		{name: "unparseable", item: rawItem{PublishedAt: "yesterday"}, want: now},
		{name: "missing", item: rawItem{}, want: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publishedAt(tt.item, now))
		})
	}
}

func TestNormalizeItems_DropsRemoved(t *testing.T) {
	items := []rawItem{
		{Title: "[Removed]", URL: "https://example.com/x"},
		{Title: "Kept", URL: "https://example.com/kept"},
		{Title: "Gone", URL: "https://removed.com"},
	}

	got := normalizeItems(items, resolve.Request{}, entity.Source{})

	assert.Len(t, got, 1)
	assert.Equal(t, "Kept", got[0].Title)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  plain  ", want: "plain"},
		{in: "<p>Hello <em>world</em></p>\n<p>again</p>", want: "Hello world again"},
		{in: "Fish &amp; chips", want: "Fish & chips"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.in))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "markets-rally-3-percent", slugify("Markets rally 3 percent!"))
	assert.Equal(t, "hello-world", slugify("  Hello,   World  "))
	assert.Equal(t, "", slugify("日本語"))
}
