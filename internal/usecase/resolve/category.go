package resolve

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// categoryBySlug maps site section slugs to upstream category names.
var categoryBySlug = map[string]string{
	"tech":          "technology",
	"politics":      "politics",
	"sports":        "sports",
	"business":      "business",
	"entertainment": "entertainment",
	"health":        "health",
	"science":       "science",
}

// Category describes a site section.
type Category struct {
	Slug     string
	Upstream string
	Title    string
}

// LookupCategory maps a slug to its upstream category. Unknown slugs map
// to "general" but keep their own title.
func LookupCategory(slug string) Category {
	slug = strings.ToLower(strings.TrimSpace(slug))
	upstream, ok := categoryBySlug[slug]
	if !ok {
		upstream = "general"
	}
	return Category{Slug: slug, Upstream: upstream, Title: capitalize(slug)}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
