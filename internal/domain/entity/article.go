// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and User, along with
// their normalization rules and domain-specific errors.
package entity

import "time"

// Fallback values applied when an upstream provider omits a field.
const (
	DefaultTitle    = "Untitled Article"
	DefaultSummary  = "No description available."
	DefaultContent  = "Read more at the source."
	DefaultAuthor   = "Unknown Author"
	DefaultCategory = "general"
)

// Article represents a news article resolved from a provider or the static dataset.
// Articles are never persisted; every request recomputes them.
type Article struct {
	ID          string
	Title       string
	Summary     string
	Content     string
	ImageURL    *string
	Author      string
	PublishedAt time.Time
	Category    string
	Slug        string
	URL         string
	Source      *Source
}

// Complete reports whether the article satisfies the display invariants:
// non-empty id, title, summary, content, author and a publication time.
func (a *Article) Complete() bool {
	return a.ID != "" &&
		a.Title != "" &&
		a.Summary != "" &&
		a.Content != "" &&
		a.Author != "" &&
		!a.PublishedAt.IsZero()
}
