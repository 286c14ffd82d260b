package search

import (
	"context"

	"newsdigest/internal/core"
)

// MockProvider implements Provider for testing and local development.
type MockProvider struct {
	name    string
	results map[string][]core.Article // per-query results; "" is the default
	err     error
	Queries []string // queries seen, in order
}

// NewMockProvider creates a new mock search provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name:    "Mock",
		results: make(map[string][]core.Article),
	}
}

// GetName returns the name of this provider.
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the configured results for the query, falling back to the
// default result set.
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]core.Article, error) {
	m.Queries = append(m.Queries, query)

	if m.err != nil {
		return nil, m.err
	}

	results, ok := m.results[query]
	if !ok {
		results = m.results[""]
	}

	if config.MaxResults > 0 && len(results) > config.MaxResults {
		results = results[:config.MaxResults]
	}
	return results, nil
}

// SetResults sets the default result set returned for any query.
func (m *MockProvider) SetResults(results []core.Article) {
	m.results[""] = results
}

// SetResultsFor sets the result set returned for a specific query.
func (m *MockProvider) SetResultsFor(query string, results []core.Article) {
	m.results[query] = results
}

// SetError makes every search fail with the given error.
func (m *MockProvider) SetError(err error) {
	m.err = err
}
