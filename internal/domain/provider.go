package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// SearchRow is a single raw result from a web search provider.
// Fields may be empty or malformed; normalization decides what survives.
type SearchRow struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchOptions are optional parameters for one provider call.
type SearchOptions struct {
	// Count is the maximum number of rows to return. Providers may
	// return fewer. Zero means provider default.
	Count int
}

// SearchProvider is the capability the pipeline consumes for web search.
type SearchProvider interface {
	// Name returns the provider identifier (e.g. "brave", "serper").
	Name() string

	// SearchWeb executes a query and returns raw rows. A failed call
	// returns a *ProviderError carrying the upstream status code.
	SearchWeb(ctx context.Context, query string, opts SearchOptions) ([]SearchRow, error)
}

// ProviderError is returned when a provider call fails. StatusCode
// carries the upstream HTTP status (0 for transport-level failures).
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IsQueryRejected reports whether err is a provider rejection of a
// too-complex query (HTTP 422). Call sites treat this as "retry
// smaller or continue empty", never as a fatal pipeline error.
func IsQueryRejected(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.StatusCode == http.StatusUnprocessableEntity
}
