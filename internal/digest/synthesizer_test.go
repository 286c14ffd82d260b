package digest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"newsdigest/internal/core"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func sampleArticles(n int) []core.Article {
	articles := make([]core.Article, 0, n)
	for i := 1; i <= n; i++ {
		articles = append(articles, core.Article{
			Title:   fmt.Sprintf("Title %d", i),
			Link:    fmt.Sprintf("https://news.example.org/%d", i),
			Snippet: fmt.Sprintf("Snippet %d", i),
			Source:  fmt.Sprintf("source-%d.org", i),
			Content: fmt.Sprintf("Content %d", i),
		})
	}
	return articles
}

func TestSynthesizeParsesModelReply(t *testing.T) {
	gen := &fakeGenerator{reply: `<selected_articles>[2, 1]</selected_articles>
<overall_summary>Two things happened.</overall_summary>
<article_highlights>## 1. Title 2</article_highlights>`}

	s := NewSynthesizer(gen)
	result := s.Synthesize(context.Background(), "testing", sampleArticles(3))

	if !reflect.DeepEqual(result.SelectedArticles, []int{2, 1}) {
		t.Errorf("unexpected selection: %v", result.SelectedArticles)
	}
	if result.OverallSummary != "Two things happened." {
		t.Errorf("unexpected summary: %q", result.OverallSummary)
	}
	if result.IsMock {
		t.Error("model-produced digest marked as mock")
	}
}

func TestSynthesizePromptEmbedsArticles(t *testing.T) {
	gen := &fakeGenerator{reply: "<selected_articles>[1]</selected_articles>"}

	s := NewSynthesizer(gen)
	s.Synthesize(context.Background(), "testing", sampleArticles(2))

	for _, want := range []string{"----- Article 1 -----", "----- Article 2 -----", "Title 1", "https://news.example.org/2", "<selected_articles>"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSynthesizePromptCapsContent(t *testing.T) {
	gen := &fakeGenerator{reply: "<selected_articles>[1]</selected_articles>"}
	articles := []core.Article{{
		Title:   "Long",
		Link:    "https://news.example.org/long",
		Content: strings.Repeat("a", maxPromptContent+1000),
	}}

	s := NewSynthesizer(gen)
	s.Synthesize(context.Background(), "testing", articles)

	if strings.Contains(gen.prompt, strings.Repeat("a", maxPromptContent+1)) {
		t.Error("prompt content not capped")
	}
	if !strings.Contains(gen.prompt, strings.Repeat("a", maxPromptContent)) {
		t.Error("capped content missing from prompt")
	}
}

func TestSynthesizeFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}

	s := NewSynthesizer(gen)
	result := s.Synthesize(context.Background(), "testing", sampleArticles(3))

	if !result.IsMock {
		t.Fatal("expected mock digest on model failure")
	}
}

func TestSynthesizeWithoutGenerator(t *testing.T) {
	s := NewSynthesizer(nil)
	result := s.Synthesize(context.Background(), "testing", sampleArticles(2))

	if !result.IsMock {
		t.Fatal("expected mock digest without generator")
	}
}

func TestMockDigestSelection(t *testing.T) {
	cases := []struct {
		articles int
		want     []int
	}{
		{0, []int{}},
		{3, []int{1, 2, 3}},
		{8, []int{1, 2, 3, 4, 5}},
	}

	for _, c := range cases {
		result := MockDigest("testing", sampleArticles(c.articles))
		if len(result.SelectedArticles) != len(c.want) {
			t.Errorf("MockDigest with %d articles selected %v, want %v", c.articles, result.SelectedArticles, c.want)
			continue
		}
		for i, id := range c.want {
			if result.SelectedArticles[i] != id {
				t.Errorf("MockDigest with %d articles selected %v, want %v", c.articles, result.SelectedArticles, c.want)
				break
			}
		}
	}
}

func TestMockDigestContent(t *testing.T) {
	result := MockDigest("quantum computing", sampleArticles(2))

	if !result.IsMock {
		t.Error("mock digest not marked as mock")
	}
	if !strings.Contains(result.OverallSummary, "quantum computing") {
		t.Errorf("summary missing topic: %q", result.OverallSummary)
	}
	if !strings.Contains(result.OverallSummary, "source-1.org") {
		t.Errorf("summary missing sources: %q", result.OverallSummary)
	}
	if !strings.Contains(result.ArticleHighlights, "QUANTUM COMPUTING") {
		t.Errorf("highlights missing upper-cased topic: %q", result.ArticleHighlights)
	}
	if !strings.Contains(result.ArticleHighlights, "## 1. Title 1") {
		t.Errorf("highlights missing first article heading: %q", result.ArticleHighlights)
	}
	if !strings.Contains(result.ArticleHighlights, "**Summary:** Snippet 2") {
		t.Errorf("highlights missing second article snippet: %q", result.ArticleHighlights)
	}
}

func TestMockDigestWithoutSources(t *testing.T) {
	articles := []core.Article{{Title: "Untitled source", Link: "https://a.example.org/1"}}
	result := MockDigest("testing", articles)

	if !strings.Contains(result.OverallSummary, "various sources") {
		t.Errorf("expected generic source attribution, got %q", result.OverallSummary)
	}
}
