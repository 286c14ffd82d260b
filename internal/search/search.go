// Package search executes keyword queries against a web-search provider and
// normalizes the results into core.Article records.
package search

import (
	"context"

	"newsdigest/internal/core"
)

// Provider is the interface for search providers.
type Provider interface {
	// Search performs a search and returns up to config.MaxResults articles.
	// A provider missing its credentials returns an empty result, not an
	// error; transport failures surface as errors and are absorbed by the
	// orchestrator's fallback chain.
	Search(ctx context.Context, query string, config Config) ([]core.Article, error)

	// GetName returns the name of the search provider.
	GetName() string
}

// Config holds configuration for search requests.
type Config struct {
	MaxResults int    // Maximum number of results to return (1..20)
	SinceDays  int    // Only prefer results newer than this many days (provider-side)
	Language   string // Language preference (e.g., "en")
}
