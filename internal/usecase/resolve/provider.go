package resolve

import (
	"context"
	"errors"
	"time"

	"news-portal/internal/domain/entity"
)

// Mode selects which upstream endpoint a provider calls.
type Mode int

const (
	// ModeHeadlines requests top headlines, optionally by category and country.
	ModeHeadlines Mode = iota
	// ModeSearch requests a keyword search.
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "headlines"
}

// Request is a single provider call. Limit and Country are already
// normalized by the Resolver.
type Request struct {
	Mode     Mode
	Limit    int
	Category string
	Country  string
	Query    string
	// Now is the resolution time, used as publishedAt when upstream omits it.
	Now time.Time
}

// Provider is one tier of the fallback chain.
//
// Attempt returns normalized articles. Any error means the provider is
// unavailable for this request and the chain moves on. An empty slice with
// a nil error means the provider answered but had nothing to offer.
type Provider interface {
	Name() string
	// Enabled reports whether the provider's credential or feed is configured.
	Enabled() bool
	Attempt(ctx context.Context, req Request) ([]entity.Article, error)
}

var (
	// ErrArticleNotFound is returned when no tier knows the requested id.
	ErrArticleNotFound = errors.New("article not found")

	// ErrProviderUnavailable marks a failed provider attempt.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrModeUnsupported is returned by providers that cannot serve a mode,
	// e.g. search against a single RSS feed.
	ErrModeUnsupported = errors.New("mode not supported by provider")

	// ErrQuotaExhausted is returned when the local outbound budget for a
	// provider is spent.
	ErrQuotaExhausted = errors.New("provider quota exhausted")
)
