// Package resilience provides fault tolerance patterns for outbound calls.
//
// The circuitbreaker subpackage wraps github.com/sony/gobreaker. Each news
// provider owns its own breaker, so a provider that keeps failing is skipped
// quickly and the resolver moves on to the next tier instead of waiting on
// the network.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsProviderConfig("gnews"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callProvider()
//	})
//
// Retries are intentionally absent: every provider gets exactly one attempt
// per resolution.
package resilience
