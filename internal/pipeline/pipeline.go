// Package pipeline wires the planner, search, fetch and digest stages into
// the end-to-end topic digest flow.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"newsdigest/internal/core"
	"newsdigest/internal/digest"
	"newsdigest/internal/fetch"
	"newsdigest/internal/logger"
	"newsdigest/internal/planner"
	"newsdigest/internal/search"
)

// Pipeline runs the full topic digest flow.
type Pipeline struct {
	planner     *planner.Planner
	provider    search.Provider
	fetcher     *fetch.Fetcher
	synthesizer *digest.Synthesizer
	searchCfg   search.Config
}

// Result is the outcome of a digest run.
type Result struct {
	Topic    string
	Digest   string
	Articles []core.Article
	AI       *core.DigestResult
}

// New creates a Pipeline from its stages.
func New(p *planner.Planner, provider search.Provider, fetcher *fetch.Fetcher, synthesizer *digest.Synthesizer, searchCfg search.Config) *Pipeline {
	return &Pipeline{
		planner:     p,
		provider:    provider,
		fetcher:     fetcher,
		synthesizer: synthesizer,
		searchCfg:   searchCfg,
	}
}

// CollectArticles gathers deduplicated articles for the topic. It is total:
// every search failure degrades to the next fallback tier, and when all tiers
// come up empty a synthesized placeholder article is returned, so the result
// is never empty and never an error.
func (p *Pipeline) CollectArticles(ctx context.Context, topic string) []core.Article {
	topic = strings.TrimSpace(topic)

	queries := p.planner.Plan(ctx, topic)
	articles := p.searchAll(ctx, queries)

	if len(articles) == 0 {
		logger.Warn("No results from planned queries, retrying with raw topic", "topic", topic)
		articles = p.searchAll(ctx, []string{topic})
	}

	if len(articles) == 0 {
		broadened := fmt.Sprintf("%s news", topic)
		logger.Warn("No results from raw topic, retrying broadened", "query", broadened)
		articles = p.searchAll(ctx, []string{broadened})
	}

	if len(articles) == 0 {
		logger.Warn("All search tiers empty, synthesizing placeholder article", "topic", topic)
		articles = []core.Article{placeholderArticle(topic)}
	}

	return articles
}

// GenerateDigest runs the whole pipeline for the topic. aiDigest selects the
// model-synthesized digest; otherwise a plain enumerated digest is built.
func (p *Pipeline) GenerateDigest(ctx context.Context, topic string, aiDigest bool) Result {
	topic = strings.TrimSpace(topic)

	articles := p.CollectArticles(ctx, topic)
	articles = p.fetcher.EnrichAll(ctx, articles)

	result := Result{Topic: topic, Articles: articles}

	if aiDigest {
		digestResult := p.synthesizer.Synthesize(ctx, topic, articles)
		result.AI = &digestResult
		result.Digest = digest.FormatAIDigest(topic, digestResult)
	} else {
		result.Digest = digest.FormatSimple(topic, articles)
	}

	logger.Info("Digest generated",
		"topic", topic,
		"articles", len(articles),
		"ai", aiDigest)
	return result
}

// searchAll runs every query against the provider and merges the results,
// dropping duplicate links. First-seen order is preserved. Query failures are
// logged and skipped.
func (p *Pipeline) searchAll(ctx context.Context, queries []string) []core.Article {
	seen := make(map[string]bool)
	var merged []core.Article

	for _, query := range queries {
		results, err := p.provider.Search(ctx, query, p.searchCfg)
		if err != nil {
			logger.Warn("Search query failed",
				"provider", p.provider.GetName(),
				"query", query,
				"error", err.Error())
			continue
		}

		for _, article := range results {
			if seen[article.Link] {
				continue
			}
			seen[article.Link] = true
			merged = append(merged, article)
		}
	}

	return merged
}

// placeholderArticle builds the last-resort article pointing at the topic's
// Wikipedia page. Content is pre-set so the fetch stage leaves it alone.
func placeholderArticle(topic string) core.Article {
	link := fmt.Sprintf("https://en.wikipedia.org/wiki/%s",
		url.PathEscape(strings.ReplaceAll(topic, " ", "_")))

	return core.Article{
		Title:   fmt.Sprintf("About %s", topic),
		Link:    link,
		Snippet: fmt.Sprintf("No recent news articles were found for %q. This background reference may still be useful.", topic),
		Source:  "en.wikipedia.org",
		Content: fmt.Sprintf("No recent news articles were found for %q. The linked Wikipedia page provides background on the topic.", topic),
	}
}
