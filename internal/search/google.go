package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdigest/internal/core"
	"newsdigest/internal/logger"
	"newsdigest/internal/retry"
)

const (
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

	// pageSize is the provider limit for results per request.
	pageSize = 10

	// maxDesired caps a single search call regardless of configuration.
	maxDesired = 20
)

// GoogleProvider implements Provider using the Google Custom Search JSON API.
type GoogleProvider struct {
	apiKey   string
	searchID string
	baseURL  string
	client   *http.Client
	retry    retry.Config
}

// NewGoogleProvider creates a new Google Custom Search provider. Empty
// credentials are allowed; searches then degrade to empty results so the
// orchestrator's fallback chain can take over.
func NewGoogleProvider(apiKey, searchID string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:   apiKey,
		searchID: searchID,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		retry:    retry.DefaultConfig(),
	}
}

// GetName returns the name of this provider.
func (g *GoogleProvider) GetName() string {
	return "Google Custom Search"
}

// Search collects up to config.MaxResults articles for the query, paging
// through the API in batches of 10. Each page request is retried on server
// errors; a page returning fewer than 10 raw items signals end-of-results.
func (g *GoogleProvider) Search(ctx context.Context, query string, config Config) ([]core.Article, error) {
	if g.apiKey == "" || g.searchID == "" {
		logger.Warn("Google Custom Search credentials not configured, returning empty result", "query", query)
		return nil, nil
	}

	desired := config.MaxResults
	if desired <= 0 {
		desired = pageSize
	}
	if desired > maxDesired {
		desired = maxDesired
	}

	var articles []core.Article
	start := 1

	for len(articles) < desired {
		var page googleResponse
		err := retry.Do(ctx, g.retry, func(ctx context.Context) error {
			var err error
			page, err = g.fetchPage(ctx, query, start, config)
			return err
		})
		if err != nil {
			if len(articles) > 0 {
				logger.Warn("Search page request failed, returning partial results", "query", query, "collected", len(articles), "error", err.Error())
				return articles, nil
			}
			return nil, err
		}

		for _, item := range page.Items {
			// Items missing a title or link are dropped silently
			if item.Title == "" || item.Link == "" {
				continue
			}
			articles = append(articles, core.Article{
				Title:     item.Title,
				Link:      item.Link,
				Snippet:   item.Snippet,
				Source:    itemSource(item),
				Published: item.publishedTime(),
			})
			if len(articles) == desired {
				break
			}
		}

		// Fewer than a full page means the provider ran out of results
		if len(page.Items) < pageSize {
			break
		}
		start += pageSize
	}

	logger.Info("Google Custom Search completed", "query", query, "results_found", len(articles))

	return articles, nil
}

// googleResponse mirrors the Custom Search JSON API response shape.
type googleResponse struct {
	Items []googleItem `json:"items"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type googleItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	Pagemap     struct {
		Metatags []map[string]string `json:"metatags"`
	} `json:"pagemap"`
}

// publishedTime extracts a publication timestamp from structured page
// metadata when present; downstream normalization handles the rest.
func (i googleItem) publishedTime() string {
	for _, tags := range i.Pagemap.Metatags {
		for _, key := range []string{"article:published_time", "og:published_time", "datepublished", "date"} {
			if value := tags[key]; value != "" {
				return value
			}
		}
	}
	return ""
}

// fetchPage issues a single page request starting at the given 1-based offset.
func (g *GoogleProvider) fetchPage(ctx context.Context, query string, start int, config Config) (googleResponse, error) {
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.searchID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(pageSize))
	params.Set("start", strconv.Itoa(start))

	if config.Language != "" {
		params.Set("lr", "lang_"+config.Language)
	}
	if config.SinceDays > 0 {
		params.Set("sort", "date:r:"+formatDateFilter(time.Now().AddDate(0, 0, -config.SinceDays)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return googleResponse{}, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return googleResponse{}, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return googleResponse{}, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	var apiResponse googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return googleResponse{}, fmt.Errorf("failed to parse search response: %w", err)
	}

	if apiResponse.Error.Code != 0 {
		return googleResponse{}, fmt.Errorf("search API error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)
	}

	return apiResponse, nil
}

// itemSource picks a human-readable origin for the result.
func itemSource(item googleItem) string {
	if item.DisplayLink != "" {
		return item.DisplayLink
	}
	return extractDomain(item.Link)
}

// extractDomain extracts the domain name from a URL.
func extractDomain(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// formatDateFilter formats a time for Google CSE date filtering.
func formatDateFilter(t time.Time) string {
	return t.Format("20060102")
}
