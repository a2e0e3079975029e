// Package fetch defines the full-text content fetching contract used to
// enrich articles whose provider content is truncated.
package fetch

import "context"

// ContentFetcher fetches full article content from URLs.
// Implementations extract clean article text from web pages.
//
// Example usage:
//
//	content, err := fetcher.FetchContent(ctx, "https://example.com/article")
//	if err != nil {
//	    // keep the provider content
//	}
//
// Implementations MUST prevent SSRF, enforce size limits and timeouts, and
// validate redirect targets.
type ContentFetcher interface {
	// FetchContent fetches and extracts article content from the given URL.
	//
	// Errors:
	//   - ErrInvalidURL: URL format is invalid or uses unsupported scheme
	//   - ErrPrivateIP: URL resolves to a private IP address (SSRF prevention)
	//   - ErrTooManyRedirects: Redirect chain exceeds configured maximum
	//   - ErrBodyTooLarge: Response body exceeds size limit
	//   - ErrTimeout: Request timed out
	//   - ErrReadabilityFailed: Content extraction failed
	//   - gobreaker.ErrOpenState: Circuit breaker is open (too many failures)
	FetchContent(ctx context.Context, url string) (string, error)
}
