package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for every span in the service.
const TracerName = "news-portal"

// GetTracer returns the service tracer from the current global provider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "resolve.articles")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
