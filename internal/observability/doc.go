// Package observability provides structured logging, Prometheus metrics,
// and OpenTelemetry tracing for the news portal.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for the provider chain and user store
//   - tracing: OpenTelemetry tracer and HTTP middleware
//
// Example usage:
//
//	import (
//	    "news-portal/internal/observability/logging"
//	    "news-portal/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordStaticFallback("articles")
//	}
package observability
