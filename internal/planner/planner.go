package planner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"newsdigest/internal/llm"
	"newsdigest/internal/logger"
)

// MaxQueries caps how many search queries a single plan can produce.
const MaxQueries = 5

// fallbackQualifiers are appended to the topic when the model is unavailable
// or returns nothing parseable.
var fallbackQualifiers = []string{"latest news", "analysis", "developments", "trends", "impact"}

// enumeratedLine matches a leading enumeration marker such as "1." or "2)".
var enumeratedLine = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)

// Planner turns a free-text topic into search queries optimized for freshness
// and diversity. It uses the model when available and falls back to
// deterministic template queries otherwise.
type Planner struct {
	gen          llm.TextGenerator
	directTopics map[string]bool
}

// New creates a Planner. gen may be nil, in which case Plan always uses the
// template fallback. directTopics lists keywords that are already
// search-engine-friendly; a topic containing one is used verbatim as the
// single query.
func New(gen llm.TextGenerator, directTopics []string) *Planner {
	direct := make(map[string]bool, len(directTopics))
	for _, t := range directTopics {
		direct[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &Planner{gen: gen, directTopics: direct}
}

// Plan returns between 1 and MaxQueries non-empty search queries for the
// topic. It never fails: any model error degrades to the template fallback.
func (p *Planner) Plan(ctx context.Context, topic string) []string {
	topic = strings.TrimSpace(topic)

	if p.isDirectTopic(topic) {
		return []string{topic}
	}

	if p.gen == nil {
		return p.fallbackQueries(topic)
	}

	reply, err := p.gen.Generate(ctx, buildQueryPrompt(topic))
	if err != nil {
		logger.Warn("Query generation failed, using template queries", "topic", topic, "error", err.Error())
		return p.fallbackQueries(topic)
	}

	queries := parseQueries(reply)
	if len(queries) == 0 {
		logger.Warn("No parseable queries in model reply, using template queries", "topic", topic)
		return p.fallbackQueries(topic)
	}

	return queries
}

// isDirectTopic reports whether the topic contains a keyword configured as
// already search-engine-friendly.
func (p *Planner) isDirectTopic(topic string) bool {
	lowered := strings.ToLower(topic)
	for keyword := range p.directTopics {
		if keyword != "" && strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// buildQueryPrompt creates the query-generation prompt for the model.
func buildQueryPrompt(topic string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf(`Generate up to %d search queries for finding recent news about: "%s"

Requirements:
- Do NOT use temporal qualifiers like "recent", "latest" or "today"; they degrade search recall
- Each query targets a different facet of the topic (breaking news, analysis, alternate angles)
- Favor English-language content
- Keep each query concise, at most 8 words
- Return the queries as a numbered list (1. First query 2. Second query etc.)

Queries:`, MaxQueries, topic))

	return builder.String()
}

// parseQueries extracts enumerated queries from the model reply. Lines without
// a leading enumeration marker are ignored.
func parseQueries(text string) []string {
	var queries []string
	for _, line := range strings.Split(text, "\n") {
		match := enumeratedLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		query := strings.TrimSpace(strings.Trim(match[1], "`*"))
		if query == "" {
			continue
		}

		queries = append(queries, query)
		if len(queries) == MaxQueries {
			break
		}
	}
	return queries
}

// fallbackQueries builds the deterministic template queries. This path is
// total: it always returns a non-empty set.
func (p *Planner) fallbackQueries(topic string) []string {
	queries := make([]string, 0, len(fallbackQualifiers))
	for _, qualifier := range fallbackQualifiers {
		queries = append(queries, fmt.Sprintf("%s %s", topic, qualifier))
	}
	return queries
}
