package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	pkgconfig "news-portal/pkg/config"
)

// CORSConfig is the cross-origin policy for browser clients of the API.
type CORSConfig struct {
	// AllowedOrigins are compared exactly against the Origin header.
	// Empty disables CORS handling.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE.
func LoadCORSConfig() CORSConfig {
	origins := pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	return CORSConfig{
		AllowedOrigins: lo.Map(origins, func(o string, _ int) string { return strings.TrimRight(o, "/") }),
		AllowedMethods: pkgconfig.GetEnvStringList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pkgconfig.GetEnvStringList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		MaxAge:         pkgconfig.GetEnvInt("CORS_MAX_AGE", 86400),
	}
}

// Enabled reports whether any origin is allowed.
func (c CORSConfig) Enabled() bool { return len(c.AllowedOrigins) > 0 }

// CORS echoes allowed origins and answers their preflight requests with 204.
// Disallowed origins get no CORS headers and the browser blocks the response.
func CORS(cfg CORSConfig, logger *slog.Logger) Middleware {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Origin")

			if !lo.Contains(cfg.AllowedOrigins, origin) {
				logger.Debug("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			// プリフライトは次のハンドラに渡さない
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
