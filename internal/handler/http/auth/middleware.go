package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	authuc "news-portal/internal/usecase/auth"
)

type ctxKey struct{}

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	ParseToken(raw string) (*authuc.Claims, error)
}

// Authz rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func Authz(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				RecordAuthzCheckDuration(time.Since(start).Seconds())
				RecordUnauthorized("missing_token")
				w.Header().Set("WWW-Authenticate", `Bearer realm="news-portal"`)
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := parser.ParseToken(raw)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if err != nil {
				RecordUnauthorized("invalid_token")
				logging.FromContext(r.Context()).Warn("bearer token rejected",
					slog.String("error", respond.SanitizeError(err)))
				w.Header().Set("WWW-Authenticate", `Bearer realm="news-portal", error="invalid_token"`)
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *authuc.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// ClaimsFromContext returns the claims stored by Authz.
func ClaimsFromContext(ctx context.Context) (*authuc.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*authuc.Claims)
	return c, ok && c != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
