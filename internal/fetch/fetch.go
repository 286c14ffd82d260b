// Package fetch retrieves article pages and extracts readable text from them.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsdigest/internal/core"
	"newsdigest/internal/logger"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second
	// DefaultConcurrency is the worker pool size for batch enrichment.
	DefaultConcurrency = 5
	// DefaultMaxContent caps extracted text length per article.
	DefaultMaxContent = 10000

	// TruncationMarker is appended when extracted text exceeds the cap.
	TruncationMarker = "... [content truncated]"

	// minExtractedLen is the threshold for accepting a content container.
	minExtractedLen = 200

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// contentSelectors are tried in order against the cleaned document. The first
// one yielding more than minExtractedLen characters wins; otherwise the whole
// body is used.
var contentSelectors = []string{
	"article", ".article", ".post", ".content", ".post-content",
	`[itemprop="articleBody"]`, ".story", ".entry-content",
	".page-content", ".main-content", "main",
}

// placeholderDomains are fabricated or unreachable-looking hosts; articles
// pointing at them synthesize content from title and snippet instead of
// fetching.
var placeholderDomains = []string{"example.com"}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Fetcher retrieves and extracts readable text for batches of articles.
type Fetcher struct {
	client      *http.Client
	concurrency int
	maxContent  int
}

// New creates a Fetcher. Zero values select the defaults.
func New(timeout time.Duration, concurrency, maxContent int) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if maxContent <= 0 {
		maxContent = DefaultMaxContent
	}
	return &Fetcher{
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
		maxContent:  maxContent,
	}
}

// EnrichAll populates Content for every article, fetching concurrently with a
// bounded worker pool. The returned slice has the same length and order as the
// input; a failed fetch yields an error placeholder in that article's Content
// and never affects siblings.
func (f *Fetcher) EnrichAll(ctx context.Context, articles []core.Article) []core.Article {
	enriched := make([]core.Article, len(articles))

	var wg sync.WaitGroup
	sem := make(chan struct{}, f.concurrency)

	for i, article := range articles {
		wg.Add(1)
		go func(i int, article core.Article) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			enriched[i] = f.enrich(ctx, article)
		}(i, article)
	}

	wg.Wait()
	return enriched
}

// enrich populates Content and normalizes Published for a single article.
func (f *Fetcher) enrich(ctx context.Context, article core.Article) core.Article {
	article.Published = NormalizePublished(article.Published)

	// Placeholder articles arrive with content already set
	if article.Content != "" {
		return article
	}

	if article.Link == "" {
		article.Content = "No URL available for this article"
		return article
	}

	if isPlaceholderDomain(article.Link) {
		article.Content = fmt.Sprintf("%s. %s", article.Title, article.Snippet)
		return article
	}

	content, err := f.fetchContent(ctx, article.Link)
	if err != nil {
		logger.Warn("Failed to fetch article content", "url", article.Link, "error", err.Error())
		article.Content = fmt.Sprintf("Error processing article: %s", err.Error())
		return article
	}

	article.Content = content
	return article
}

// fetchContent fetches the page and extracts its readable text.
func (f *Fetcher) fetchContent(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch %s: status code %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	return extractText(doc, f.maxContent), nil
}

// extractText strips non-content markup, picks the most likely content
// container and returns its collapsed text, truncated to maxContent.
func extractText(doc *goquery.Document, maxContent int) string {
	doc.Find("script, style, header, footer, nav, aside").Remove()

	var container *goquery.Selection
	for _, selector := range contentSelectors {
		candidate := doc.Find(selector).First()
		if candidate.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(candidate.Text())) > minExtractedLen {
			container = candidate
			break
		}
	}
	if container == nil {
		container = doc.Find("body")
	}

	text := strings.TrimSpace(whitespaceRegex.ReplaceAllString(container.Text(), " "))

	if len(text) > maxContent {
		text = text[:maxContent] + TruncationMarker
	}
	return text
}

// isPlaceholderDomain reports whether the URL points at a known non-article
// placeholder host.
func isPlaceholderDomain(link string) bool {
	for _, domain := range placeholderDomains {
		if strings.Contains(link, domain) {
			return true
		}
	}
	return false
}

// NormalizePublished normalizes a publication timestamp so it always carries
// a timezone marker. Absent or malformed values are replaced with the current
// time in UTC.
func NormalizePublished(published string) string {
	now := time.Now().UTC().Format("2006-01-02T15:04:05") + "Z"

	published = strings.TrimSpace(published)
	if published == "" {
		return now
	}

	// A timezone offset without a time portion means a malformed combined
	// date+offset string like "Apr 3, 2025+06:00"; replace with now.
	if strings.Contains(published, "+") && !strings.Contains(published, "T") {
		return now
	}

	if hasTimezone(published) {
		return published
	}
	return published + "Z"
}

// hasTimezone reports whether the timestamp carries a timezone marker.
func hasTimezone(published string) bool {
	if strings.Contains(published, "Z") || strings.Contains(published, "+") {
		return true
	}
	// A '-' in the final 6 characters indicates a negative UTC offset
	tail := published
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return strings.Contains(tail, "-") && strings.Contains(published, "T")
}
