package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-portal/internal/config"
	hhttp "news-portal/internal/handler/http"
	hauth "news-portal/internal/handler/http/auth"
	hnews "news-portal/internal/handler/http/news"
	"news-portal/internal/handler/http/requestid"
	"news-portal/internal/infra/fetcher"
	"news-portal/internal/infra/provider"
	"news-portal/internal/observability/tracing"
	"news-portal/internal/repository"
	authuc "news-portal/internal/usecase/auth"
	"news-portal/internal/usecase/fetch"
	"news-portal/internal/usecase/resolve"
	pkgconfig "news-portal/pkg/config"
)

const maxRequestBody = 1 << 20 // 1MB

type serverDeps struct {
	News     *config.NewsConfig
	Security *config.SecurityConfig
	Secret   []byte
	DB       *sql.DB
	Users    repository.UserRepository
	Version  string
}

// ServerComponents holds what runServer needs.
type ServerComponents struct {
	Handler http.Handler
	Addr    string
}

// setupServer wires providers, services, routes and middleware.
func setupServer(logger *slog.Logger, deps serverDeps) *ServerComponents {
	providers, reporters := setupProviders(logger, deps.News)

	var contentFetcher fetch.ContentFetcher
	if deps.News.ContentFetch.Enabled {
		fcfg := fetcher.DefaultConfig()
		fcfg.Timeout = deps.News.ContentFetch.Timeout
		fcfg.MaxBodySize = deps.News.ContentFetch.MaxBodySize
		fcfg.DenyPrivateIPs = deps.News.ContentFetch.DenyPrivateIPs
		if err := fcfg.Validate(); err != nil {
			logger.Error("invalid content fetch configuration", slog.Any("error", err))
			os.Exit(1)
		}
		contentFetcher = fetcher.NewReadabilityFetcher(fcfg)
		logger.Info("content enrichment enabled",
			slog.Int("threshold", deps.News.ContentFetch.Threshold),
			slog.Duration("timeout", fcfg.Timeout))
	}

	resolver := resolve.NewResolver(providers, provider.NewStatic(time.Now()), contentFetcher, resolve.Config{
		DefaultCountry:  deps.News.DefaultCountry,
		EnrichThreshold: deps.News.ContentFetch.Threshold,
	})

	authSvc := authuc.NewService(deps.Users, authuc.Config{
		Secret:            deps.Secret,
		Issuer:            deps.Security.GetIssuer(),
		Expiry:            time.Duration(deps.Security.GetSessionExpiryHours()) * time.Hour,
		MinPasswordLength: deps.Security.GetMinPasswordLength(),
		WeakPasswords:     deps.Security.GetWeakPasswords(),
	})

	mux := setupRoutes(deps, resolver, authSvc, reporters)
	return &ServerComponents{
		Handler: applyMiddleware(logger, mux, hhttp.LoadCORSConfig()),
		Addr:    pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
	}
}

// setupProviders builds the remote tiers in chain order. Tiers without a
// credential stay in the chain and are skipped by the resolver.
func setupProviders(logger *slog.Logger, cfg *config.NewsConfig) ([]resolve.Provider, []hhttp.StatusReporter) {
	clientOpts := provider.ClientOptions{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}
	gnews := provider.NewGNews(provider.NewClient(provider.GNewsName, clientOpts), cfg.GNewsBaseURL, cfg.GNewsAPIKey, cfg.Language)
	newsAPI := provider.NewNewsAPI(provider.NewClient(provider.NewsAPIName, clientOpts), cfg.NewsAPIBaseURL, cfg.NewsAPIKey)
	rss := provider.NewRSS(provider.NewClient(provider.RSSName, clientOpts), cfg.RSSFeedURL)

	if !cfg.HasProvider() {
		logger.Warn("no news provider configured, serving the static dataset only")
	}
	logger.Info("news providers configured",
		slog.Bool(provider.GNewsName, gnews.Enabled()),
		slog.Bool(provider.NewsAPIName, newsAPI.Enabled()),
		slog.Bool(provider.RSSName, rss.Enabled()),
		slog.String("default_country", cfg.DefaultCountry))

	return []resolve.Provider{gnews, newsAPI, rss},
		[]hhttp.StatusReporter{gnews, newsAPI, rss}
}

// setupRoutes registers news, auth and operational routes.
func setupRoutes(deps serverDeps, resolver *resolve.Resolver, authSvc *authuc.Service, reporters []hhttp.StatusReporter) *http.ServeMux {
	trustProxy := pkgconfig.GetEnvBool("TRUST_PROXY", false)
	rl := deps.Security.Security.RateLimit
	// レート制限: 認証エンドポイントは IP ごとに1分間 N リクエストまで
	tokenLimiter := hhttp.NewRateLimiter(rl.TokenPerMinute, time.Minute, trustProxy)
	signupLimiter := hhttp.NewRateLimiter(rl.SignupPerMinute, time.Minute, trustProxy)

	mux := http.NewServeMux()
	hnews.Register(mux, resolver)
	hauth.Register(mux, authSvc, hauth.Routes{
		TokenLimit:  tokenLimiter.Limit,
		SignupLimit: signupLimiter.Limit,
	})

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: deps.DB, Providers: reporters, Version: deps.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: deps.DB})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	return mux
}

// applyMiddleware wraps the handler with middleware chain.
// Order: CORS → Request ID → Recovery → Logging → Tracing → Body Limit → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler, cors hhttp.CORSConfig) http.Handler {
	chain := []hhttp.Middleware{
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		tracing.Middleware,
		hhttp.LimitRequestBody(maxRequestBody),
		hhttp.MetricsMiddleware,
	}
	if cors.Enabled() {
		// プリフライトを最初に処理する
		chain = append([]hhttp.Middleware{hhttp.CORS(cors, logger)}, chain...)
		logger.Info("CORS enabled", slog.Any("allowed_origins", cors.AllowedOrigins))
	}
	return hhttp.Chain(handler, chain...)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              components.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", components.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
