package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its metrics label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// より具体的なパターンを先に評価する
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+/related$`), Template: "/api/articles/:id/related"},
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+$`), Template: "/api/articles/:id"},
	{Pattern: regexp.MustCompile(`^/api/categories/[^/]+$`), Template: "/api/categories/:slug"},
}

// staticPaths are labelled as-is. Anything else collapses to "other".
var staticPaths = map[string]struct{}{
	"/":            {},
	"/api/news":    {},
	"/api/search":  {},
	"/api/home":    {},
	"/auth/signup": {},
	"/auth/token":  {},
	"/auth/me":     {},
	"/health":      {},
	"/ready":       {},
	"/live":        {},
	"/metrics":     {},
}

// OtherPath is the label for paths that match no route.
const OtherPath = "other"

// NormalizePath turns a request path into a bounded metrics label.
//
//	NormalizePath("/api/articles/1234")          // "/api/articles/:id"
//	NormalizePath("/api/articles/1234/related/") // "/api/articles/:id/related"
//	NormalizePath("/api/categories/tech")        // "/api/categories/:slug"
//	NormalizePath("/api/news?limit=3")           // "/api/news"
//	NormalizePath("/wp-admin.php")               // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return OtherPath
}

// GetExpectedCardinality returns the upper bound of distinct path labels.
func GetExpectedCardinality() int {
	return len(pathPatterns) + len(staticPaths) + 1
}
