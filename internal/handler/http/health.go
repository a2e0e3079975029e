// Package http holds the news portal's HTTP handlers and middleware: health
// probes, request metrics, access logging and rate limiting.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"news-portal/internal/handler/http/respond"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ProviderInfo is what /health reports about one upstream news provider.
type ProviderInfo struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Breaker string `json:"circuit_breaker,omitempty"`
}

// StatusReporter is implemented by news providers.
type StatusReporter interface {
	Name() string
	Enabled() bool
}

type breakerReporter interface {
	BreakerState() string
}

// HealthHandler reports database and provider status.
// DB is nil when the in-memory user store is used.
type HealthHandler struct {
	DB        *sql.DB
	Providers []StatusReporter
	Version   string
	Now       func() time.Time
}

// ServeHTTP returns 503 only when a configured database is unreachable.
// Providers never make the service unhealthy because the static dataset
// always answers.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"providers": h.checkProviders(),
	}
	code := http.StatusOK
	status := statusHealthy

	if h.DB != nil {
		db := h.checkDatabase(ctx)
		checks["database"] = db
		if db.Status == statusUnhealthy {
			code = http.StatusServiceUnavailable
			status = statusUnhealthy
		}
	} else {
		checks["database"] = CheckStatus{Status: statusHealthy, Message: "in-memory user store"}
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkProviders() CheckStatus {
	infos := make([]ProviderInfo, 0, len(h.Providers))
	enabled := 0
	for _, p := range h.Providers {
		info := ProviderInfo{Name: p.Name(), Enabled: p.Enabled()}
		if b, ok := p.(breakerReporter); ok {
			info.Breaker = b.BreakerState()
		}
		if info.Enabled {
			enabled++
		}
		infos = append(infos, info)
	}

	cs := CheckStatus{Status: statusHealthy, Details: map[string]any{"chain": infos}}
	if enabled == 0 {
		cs.Status = statusDegraded
		cs.Message = "no provider configured, serving static dataset"
	}
	return cs
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections > 0 {
		util := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = util
		if util >= 80 {
			return CheckStatus{Status: statusDegraded, Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// ReadyHandler is the readiness probe. Without a database it is always ready.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			respond.Error(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
	}
	writeText(w, "ready")
}

// LiveHandler is the liveness probe.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
