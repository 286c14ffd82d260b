package digest

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"newsdigest/internal/core"
)

// Section markers the model is instructed to emit. Each section is parsed
// independently so one malformed section never spoils the others.
var (
	selectedArticlesRegex  = regexp.MustCompile(`(?s)<selected_articles>(.*?)</selected_articles>`)
	overallSummaryRegex    = regexp.MustCompile(`(?s)<overall_summary>(.*?)</overall_summary>`)
	articleHighlightsRegex = regexp.MustCompile(`(?s)<article_highlights>(.*?)</article_highlights>`)
)

// ParseResponse parses the model's semi-structured reply into a DigestResult.
// It is total: a missing section yields that field's zero value and an
// unparseable ID list yields an empty list, never an error.
func ParseResponse(reply string) core.DigestResult {
	result := core.DigestResult{SelectedArticles: []int{}}

	if match := selectedArticlesRegex.FindStringSubmatch(reply); match != nil {
		result.SelectedArticles = parseIDList(strings.TrimSpace(match[1]))
	}

	if match := overallSummaryRegex.FindStringSubmatch(reply); match != nil {
		result.OverallSummary = strings.TrimSpace(match[1])
	}

	if match := articleHighlightsRegex.FindStringSubmatch(reply); match != nil {
		result.ArticleHighlights = strings.TrimSpace(match[1])
	}

	return result
}

// parseIDList accepts either a JSON-array-like bracketed form ("[3, 1, 7]")
// or a bare comma-separated list of digits ("3, 1, 7"). Order is preserved.
func parseIDList(text string) []int {
	open := strings.Index(text, "[")
	closing := strings.LastIndex(text, "]")
	if open >= 0 && closing > open {
		var ids []int
		if err := json.Unmarshal([]byte(text[open:closing+1]), &ids); err == nil {
			return ids
		}
		return []int{}
	}

	ids := []int{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" || !isDigits(part) {
			continue
		}
		if id, err := strconv.Atoi(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
