// Package digest turns enriched articles into a structured news digest,
// either through the language model or a deterministic fallback.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsdigest/internal/core"
	"newsdigest/internal/fetch"
	"newsdigest/internal/llm"
	"newsdigest/internal/logger"
)

// maxPromptContent caps per-article content embedded in the prompt.
const maxPromptContent = 5000

// maxSelected is the number of articles the digest highlights.
const maxSelected = 5

// Synthesizer produces a DigestResult for a topic and its articles.
type Synthesizer struct {
	gen llm.TextGenerator
}

// NewSynthesizer creates a Synthesizer. gen may be nil, in which case every
// call returns the deterministic mock digest.
func NewSynthesizer(gen llm.TextGenerator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Synthesize asks the model to select and summarize the most relevant
// articles. It is total: any model failure degrades to the mock digest.
func (s *Synthesizer) Synthesize(ctx context.Context, topic string, articles []core.Article) core.DigestResult {
	if s.gen == nil {
		return MockDigest(topic, articles)
	}

	reply, err := s.gen.Generate(ctx, buildPrompt(topic, articles))
	if err != nil {
		logger.Warn("Digest synthesis failed, using mock digest", "topic", topic, "error", err.Error())
		return MockDigest(topic, articles)
	}

	return ParseResponse(reply)
}

// buildPrompt embeds every article (1-indexed) plus the selection and
// formatting instructions into a single prompt.
func buildPrompt(topic string, articles []core.Article) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf(`You are a professional news digest writer. Analyze the articles below, identify the most relevant ones for the topic %q, and create a concise, informative digest.

Rules:
1. Only select articles in English
2. Select up to %d most relevant articles, ranked by relevance
3. Check publication dates and prefer more recent articles when relevant
4. Make each article summary informative enough to understand the main points without reading the full article

I'm providing you with %d news articles related to %s.

## Articles:
`, topic, maxSelected, len(articles), topic))

	for i, article := range articles {
		content := article.Content
		if len(content) > maxPromptContent {
			content = content[:maxPromptContent]
		}

		builder.WriteString(fmt.Sprintf(`
----- Article %d -----
Title: %s
Source: %s
URL: %s
`, i+1, article.Title, article.Source, article.Link))
		if article.Published != "" {
			builder.WriteString(fmt.Sprintf("Published: %s\n", article.Published))
		}
		builder.WriteString(fmt.Sprintf(`Snippet: %s

Content:
%s

----------------------
`, article.Snippet, content))
	}

	builder.WriteString(`
## Response Format:
Provide your response in the following structured format:

<selected_articles>
List the IDs of the relevant articles you selected, in order of relevance.
Example: [3, 7, 2, 9, 1]
</selected_articles>

<overall_summary>
A 3-4 sentence high-level summary explaining the latest news on this topic, synthesizing the information from all selected articles.
</overall_summary>

<article_highlights>
For each of the selected articles, provide:
1. The article title
2. The source
3. The URL
4. A 4-5 sentence detailed summary of the article's key points

Do not include any "Key Insight" section.
Format this as a numbered list with clear headings for each article.
</article_highlights>
`)

	return builder.String()
}

// MockDigest builds a deterministic digest without the model: the first
// min(5, N) articles in input order are selected and their snippets stand in
// for summaries. It never fails.
func MockDigest(topic string, articles []core.Article) core.DigestResult {
	selected := make([]int, 0, maxSelected)
	for i := 1; i <= len(articles) && i <= maxSelected; i++ {
		selected = append(selected, i)
	}

	currentDate := time.Now().Format("January 2, 2006")

	var sources []string
	for _, article := range articles {
		if article.Source == "" || containsString(sources, article.Source) {
			continue
		}
		sources = append(sources, article.Source)
		if len(sources) == 3 {
			break
		}
	}
	sourceList := strings.Join(sources, ", ")
	if sourceList == "" {
		sourceList = "various sources"
	}

	overallSummary := fmt.Sprintf(
		"As of %s, the latest news on %s indicates significant developments across several areas. "+
			"Recent reports from %s highlight important trends and updates that are shaping this field. "+
			"The most relevant information comes from articles covering different aspects of %s, "+
			"providing a comprehensive overview of the current situation.",
		currentDate, topic, sourceList, topic)

	var highlights strings.Builder
	highlights.WriteString(fmt.Sprintf("# Top Articles on %s\n\n", strings.ToUpper(topic)))

	for i, id := range selected {
		article := articles[id-1]

		title := article.Title
		if title == "" {
			title = fmt.Sprintf("Article %d", id)
		}
		source := article.Source
		if source == "" {
			source = "Unknown source"
		}
		snippet := article.Snippet
		if snippet == "" {
			snippet = "No preview available"
		}

		highlights.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, title))
		highlights.WriteString(fmt.Sprintf("**Source:** %s\n\n", source))
		highlights.WriteString(fmt.Sprintf("**Published:** %s\n\n", fetch.NormalizePublished(article.Published)))
		highlights.WriteString(fmt.Sprintf("**URL:** [%s](%s)\n\n", article.Link, article.Link))
		highlights.WriteString(fmt.Sprintf("**Summary:** %s\n\n", snippet))

		if i < len(selected)-1 {
			highlights.WriteString("---\n\n")
		}
	}

	return core.DigestResult{
		SelectedArticles:  selected,
		OverallSummary:    overallSummary,
		ArticleHighlights: highlights.String(),
		IsMock:            true,
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
