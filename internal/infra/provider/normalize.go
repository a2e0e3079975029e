package provider

import (
	"strings"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

const (
	// removedTitle marks items withdrawn upstream (NewsAPI).
	removedTitle = "[Removed]"
	// removedURL is the NewsAPI placeholder URL for withdrawn items.
	removedURL = "https://removed.com"

	defaultSourceName = "Unknown Source"
)

// rawItem is the provider-neutral shape every payload is mapped into
// before normalization.
type rawItem struct {
	Title       string
	Description string
	Content     string
	URL         string
	Image       string
	Author      string
	PublishedAt string
	Published   *time.Time
	SourceID    string
	SourceName  string
}

// isRemoved reports whether upstream flagged the item as withdrawn.
func isRemoved(it rawItem) bool {
	return strings.TrimSpace(it.Title) == removedTitle ||
		strings.TrimRight(strings.TrimSpace(it.URL), "/") == removedURL
}

// normalizeItems drops withdrawn items and maps the rest to complete
// articles. fallback supplies the source when upstream has none.
func normalizeItems(items []rawItem, req resolve.Request, fallback entity.Source) []entity.Article {
	kept := lo.Reject(items, func(it rawItem, _ int) bool { return isRemoved(it) })
	return lo.Map(kept, func(it rawItem, _ int) entity.Article {
		return normalize(it, req, fallback)
	})
}

func normalize(it rawItem, req resolve.Request, fallback entity.Source) entity.Article {
	title := firstNonEmpty(plainText(it.Title), entity.DefaultTitle)
	description := plainText(it.Description)

	source := &entity.Source{
		ID:   firstNonEmpty(strings.TrimSpace(it.SourceID), fallback.ID),
		Name: firstNonEmpty(strings.TrimSpace(it.SourceName), fallback.Name, defaultSourceName),
	}

	link := strings.TrimSpace(it.URL)
	id := entity.DeriveID(link)
	if link == "" {
		id = entity.DeriveID(title)
	}

	var image *string
	if img := strings.TrimSpace(it.Image); img != "" {
		image = &img
	}

	return entity.Article{
		ID:          id,
		Title:       title,
		Summary:     firstNonEmpty(description, entity.DefaultSummary),
		Content:     firstNonEmpty(plainText(it.Content), description, entity.DefaultContent),
		ImageURL:    image,
		Author:      firstNonEmpty(strings.TrimSpace(it.Author), source.Name, entity.DefaultAuthor),
		PublishedAt: publishedAt(it, req.Now),
		Category:    firstNonEmpty(strings.ToLower(strings.TrimSpace(req.Category)), entity.DefaultCategory),
		Slug:        slugify(title),
		URL:         link,
		Source:      source,
	}
}

func publishedAt(it rawItem, now time.Time) time.Time {
	if it.Published != nil && !it.Published.IsZero() {
		return it.Published.UTC()
	}
	if s := strings.TrimSpace(it.PublishedAt); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC()
		}
	}
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC()
}

// plainText reduces an HTML fragment to its text. Input without markup is
// returned trimmed.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// slugify builds a URL slug from a title: lowercase ASCII letters and
// digits separated by single dashes.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func firstNonEmpty(values ...string) string {
	v, _ := lo.Find(values, func(s string) bool { return s != "" })
	return v
}
