// Package news serves resolved articles as JSON for the portal pages.
package news

import (
	"time"

	"github.com/samber/lo"

	"news-portal/internal/domain/entity"
)

// ArticleDTO is the JSON shape consumed by the portal front end.
type ArticleDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"imageUrl"`
	Author      string     `json:"author"`
	PublishedAt time.Time  `json:"publishedAt"`
	Category    string     `json:"category"`
	Slug        string     `json:"slug,omitempty"`
	URL         string     `json:"url,omitempty"`
	Source      *SourceDTO `json:"source,omitempty"`
}

// SourceDTO.ID is null when the upstream does not identify the source.
type SourceDTO struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

func toDTO(a entity.Article) ArticleDTO {
	dto := ArticleDTO{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		Author:      a.Author,
		PublishedAt: a.PublishedAt.UTC(),
		Category:    a.Category,
		Slug:        a.Slug,
		URL:         a.URL,
	}
	if a.Source != nil {
		dto.Source = &SourceDTO{Name: a.Source.Name}
		if a.Source.ID != "" {
			dto.Source.ID = lo.ToPtr(a.Source.ID)
		}
	}
	return dto
}

// toDTOs never returns nil so empty lists encode as [].
func toDTOs(articles []entity.Article) []ArticleDTO {
	return lo.Map(articles, func(a entity.Article, _ int) ArticleDTO { return toDTO(a) })
}

type listResponse struct {
	Articles []ArticleDTO `json:"articles"`
}

type categoryResponse struct {
	Category string       `json:"category"`
	Title    string       `json:"title"`
	Articles []ArticleDTO `json:"articles"`
}

type searchResponse struct {
	Query    string       `json:"query"`
	Count    int          `json:"count"`
	Articles []ArticleDTO `json:"articles"`
}

type homeResponse struct {
	Featured []ArticleDTO `json:"featured"`
	Latest   []ArticleDTO `json:"latest"`
	Trending []ArticleDTO `json:"trending"`
}
