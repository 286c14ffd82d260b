package core

// Article is the unit flowing through every pipeline stage, from search
// results to the final digest. Instances are request-local and are discarded
// once the response is returned.
type Article struct {
	Title     string `json:"title"`               // Article headline (required)
	Link      string `json:"link"`                // Canonical URL; dedup key (required)
	Snippet   string `json:"snippet"`             // Provider-supplied preview text
	Source    string `json:"source,omitempty"`    // Human-readable origin, e.g. display domain
	Published string `json:"published,omitempty"` // ISO-8601 timestamp, normalized to carry a timezone marker
	Content   string `json:"content,omitempty"`   // Extracted page text, populated by the fetch stage
}

// DigestResult is the structured output of the digest synthesizer.
type DigestResult struct {
	SelectedArticles  []int  `json:"selected_articles"`  // 1-indexed positions in the input list, ordered by relevance
	OverallSummary    string `json:"overall_summary"`    // 3-4 sentence synthesis across the selected articles
	ArticleHighlights string `json:"article_highlights"` // Pre-formatted per-article highlight text
	IsMock            bool   `json:"is_mock"`            // True when produced by the deterministic fallback
}
