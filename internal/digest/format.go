package digest

import (
	"fmt"
	"strings"
	"time"

	"newsdigest/internal/core"
)

// maxSimpleArticles limits the simple (SMS-oriented) digest length.
const maxSimpleArticles = 5

// maxSimpleSnippet is the snippet truncation length in simple mode.
const maxSimpleSnippet = 100

// FormatAIDigest renders a synthesizer result as the final digest text. It
// always returns non-empty text, even when both sections are empty.
func FormatAIDigest(topic string, result core.DigestResult) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("# News Digest: %s\n\n", topic))

	if result.OverallSummary == "" && result.ArticleHighlights == "" {
		builder.WriteString("No recent news found for this topic.\n\n")
	}

	if result.OverallSummary != "" {
		builder.WriteString("## Latest Developments\n\n")
		builder.WriteString(result.OverallSummary)
		builder.WriteString("\n\n")
	}

	if result.ArticleHighlights != "" {
		builder.WriteString("## Top Articles\n\n")
		builder.WriteString(result.ArticleHighlights)
		builder.WriteString("\n\n")
	}

	builder.WriteString(attribution())
	return builder.String()
}

// FormatSimple renders a plain enumerated digest for when AI synthesis is not
// requested. It always returns non-empty text.
func FormatSimple(topic string, articles []core.Article) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("# News Digest: %s\n\n", topic))

	if len(articles) == 0 {
		builder.WriteString(fmt.Sprintf("No recent news found for %q.\n\n", topic))
		builder.WriteString(attribution())
		return builder.String()
	}

	count := len(articles)
	if count > maxSimpleArticles {
		count = maxSimpleArticles
	}

	for i := 0; i < count; i++ {
		article := articles[i]
		snippet := article.Snippet
		if len(snippet) > maxSimpleSnippet {
			snippet = snippet[:maxSimpleSnippet] + "..."
		}
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, article.Title))
		if snippet != "" {
			builder.WriteString(fmt.Sprintf("   %s\n", snippet))
		}
		builder.WriteString(fmt.Sprintf("   %s\n\n", article.Link))
	}

	builder.WriteString(attribution())
	return builder.String()
}

func attribution() string {
	return fmt.Sprintf("_Generated by newsdigest on %s_\n", time.Now().Format("January 2, 2006"))
}
