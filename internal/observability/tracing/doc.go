// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware starts a server span per request and the resolver
// creates "resolve.*" spans with one child span per provider attempt.
// Exporter setup is left to the process; without one, spans are no-ops.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "resolve.articles")
//	defer span.End()
package tracing
