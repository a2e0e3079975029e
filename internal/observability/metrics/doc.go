// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the domain metrics of the news resolver:
//   - provider attempts by outcome and their latency
//   - static dataset fallbacks
//   - full-text content enrichment
//   - user store query latency
//
// HTTP request metrics live next to the middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	articles, err := p.Attempt(ctx, req)
//	metrics.RecordProviderAttempt(p.Name(), metrics.OutcomeSuccess, time.Since(start))
package metrics
