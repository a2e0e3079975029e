package metrics

import "time"

// Provider attempt outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// RecordProviderAttempt records one provider attempt and its latency.
// Skipped attempts carry no latency.
func RecordProviderAttempt(provider, outcome string, duration time.Duration) {
	ProviderAttemptsTotal.WithLabelValues(provider, outcome).Inc()
	if outcome != OutcomeSkipped {
		ProviderDuration.WithLabelValues(provider).Observe(duration.Seconds())
	}
}

// RecordStaticFallback records that operation was served from the static dataset.
func RecordStaticFallback(operation string) {
	StaticFallbackTotal.WithLabelValues(operation).Inc()
}

// RecordArticlesResolved records how many articles an operation returned.
func RecordArticlesResolved(operation string, count int) {
	ArticlesResolvedTotal.WithLabelValues(operation).Add(float64(count))
}

// RecordContentFetchSuccess records a successful content fetch operation.
// This tracks both the duration and size of fetched content.
//
// Example:
//
//	start := time.Now()
//	content, err := fetcher.FetchContent(ctx, url)
//	if err == nil {
//	    RecordContentFetchSuccess(time.Since(start), len(content))
//	}
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a skipped content fetch operation.
// This occurs when provider content is already long enough.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "find_user_by_email").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
